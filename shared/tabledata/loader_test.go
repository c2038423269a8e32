package tabledata

import (
	"math"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
)

const tmxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="5" height="10" tilewidth="250" tileheight="250" infinite="0">
 <objectgroup id="1" name="Table">
`

const tmxFooter = ` </objectgroup>
</map>
`

func tmx(objects string) []byte {
	return []byte(tmxHeader + objects + tmxFooter)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearVec(a, b gamemath.Vec2) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func assertTablesMatch(t *testing.T, got, want tablephysics.Table) {
	t.Helper()
	if !near(got.Width, want.Width) || !near(got.Length, want.Length) {
		t.Errorf("size: got %.4fx%.4f, want %.4fx%.4f", got.Width, got.Length, want.Width, want.Length)
	}
	if !near(got.GoalWidth, want.GoalWidth) {
		t.Errorf("goal width: got %.4f, want %.4f", got.GoalWidth, want.GoalWidth)
	}
	if !near(got.PuckRadius, want.PuckRadius) || !near(got.PaddleRadius, want.PaddleRadius) {
		t.Errorf("radii: got %.4f/%.4f", got.PuckRadius, got.PaddleRadius)
	}
	if !nearVec(got.PuckSpawn, want.PuckSpawn) {
		t.Errorf("puck spawn: got %+v, want %+v", got.PuckSpawn, want.PuckSpawn)
	}
	for i := range want.PaddleSpawn {
		if !nearVec(got.PaddleSpawn[i], want.PaddleSpawn[i]) {
			t.Errorf("paddle %d spawn: got %+v, want %+v", i+1, got.PaddleSpawn[i], want.PaddleSpawn[i])
		}
	}
}

func TestLoadStandardTable(t *testing.T) {
	fsys := os.DirFS("../../assets")
	table, err := LoadTable(fsys, "tables/standard.tmx")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertTablesMatch(t, table, tablephysics.StandardTable())
}

func TestLoadTableOffsetSurface(t *testing.T) {
	fsys := fstest.MapFS{
		"small.tmx": {Data: tmx(`
  <object id="1" name="surface" x="100" y="50" width="1000" height="2000"/>
  <object id="2" name="goal" x="400" y="50" width="400" height="20"/>
  <object id="3" name="puck" x="560" y="1010" width="80" height="80"/>
  <object id="4" name="paddle" x="550" y="250" width="100" height="100">
   <properties><property name="player" value="p1"/></properties>
  </object>
  <object id="5" name="paddle" x="550" y="1750" width="100" height="100">
   <properties><property name="player" value="p2"/></properties>
  </object>
`)},
	}

	table, err := LoadTable(fsys, "small.tmx")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := tablephysics.Table{
		Width:        1.0,
		Length:       2.0,
		GoalWidth:    0.4,
		PuckRadius:   0.04,
		PaddleRadius: 0.05,
		PuckSpawn:    gamemath.Vec2{X: 0.5, Y: 0},
		PaddleSpawn: [2]gamemath.Vec2{
			{X: 0.5, Y: -0.75},
			{X: 0.5, Y: 0.75},
		},
	}
	assertTablesMatch(t, table, want)
}

func TestLoadTableErrors(t *testing.T) {
	tests := map[string]string{
		"no surface": `
  <object id="1" name="puck" x="0" y="0" width="80" height="80"/>
`,
		"bad player": `
  <object id="1" name="surface" x="0" y="0" width="1250" height="2500"/>
  <object id="2" name="puck" x="585" y="1210" width="80" height="80"/>
  <object id="3" name="paddle" x="565" y="290" width="120" height="120">
   <properties><property name="player" value="p3"/></properties>
  </object>
`,
		"missing paddle": `
  <object id="1" name="surface" x="0" y="0" width="1250" height="2500"/>
  <object id="2" name="puck" x="585" y="1210" width="80" height="80"/>
  <object id="3" name="paddle" x="565" y="290" width="120" height="120">
   <properties><property name="player" value="p1"/></properties>
  </object>
`,
	}

	for name, objects := range tests {
		fsys := fstest.MapFS{"t.tmx": {Data: tmx(objects)}}
		if _, err := LoadTable(fsys, "t.tmx"); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadAllTables(t *testing.T) {
	std, err := os.ReadFile("../../assets/tables/standard.tmx")
	if err != nil {
		t.Fatalf("read standard table: %v", err)
	}
	fsys := fstest.MapFS{
		"tables/wide.tmx":     {Data: std},
		"tables/standard.tmx": {Data: std},
		"tables/notes.txt":    {Data: []byte("ignored")},
	}

	tables, names, err := LoadAllTables(fsys, "tables")
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if strings.Join(names, ",") != "standard,wide" {
		t.Errorf("names: got %v", names)
	}
	if len(tables) != 2 {
		t.Errorf("expected 2 tables, got %d", len(tables))
	}

	if _, _, err := LoadAllTables(fstest.MapFS{}, "tables"); err == nil {
		t.Error("expected an error for an empty directory")
	}
}
