// Package tabledata reads table geometry from Tiled maps. One map pixel is
// one thousandth of a table unit.
package tabledata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/airhockey-mp/shared/gamemath"
	"github.com/automoto/airhockey-mp/shared/statevec"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
	"github.com/lafriks/go-tiled"
)

const (
	PixelsPerUnit = 1000.0

	tableGroup = "Table"

	objSurface = "surface"
	objGoal    = "goal"
	objPuck    = "puck"
	objPaddle  = "paddle"
)

// LoadTable parses a TMX file into table geometry. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadTable(fsys fs.FS, tmxPath string) (tablephysics.Table, error) {
	var table tablephysics.Table

	tableMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return table, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	var objects []*tiled.Object
	for _, og := range tableMap.ObjectGroups {
		if og.Name == tableGroup {
			objects = og.Objects
			break
		}
	}

	var surface *tiled.Object
	for _, o := range objects {
		if o.Name == objSurface {
			surface = o
			break
		}
	}
	if surface == nil {
		return table, fmt.Errorf("%s: no %q object in %q group", tmxPath, objSurface, tableGroup)
	}

	table.Width = surface.Width / PixelsPerUnit
	table.Length = surface.Height / PixelsPerUnit

	// Map y grows downward from the surface's top edge, which is paddle 1's end.
	toTable := func(px, py float64) gamemath.Vec2 {
		return gamemath.Vec2{
			X: (px - surface.X) / PixelsPerUnit,
			Y: (py-surface.Y)/PixelsPerUnit - table.HalfLength(),
		}
	}
	center := func(o *tiled.Object) gamemath.Vec2 {
		return toTable(o.X+o.Width/2, o.Y+o.Height/2)
	}

	var sawPuck bool
	var sawPaddle [2]bool
	for _, o := range objects {
		switch o.Name {
		case objGoal:
			table.GoalWidth = max(table.GoalWidth, o.Width/PixelsPerUnit)
		case objPuck:
			table.PuckRadius = o.Width / 2 / PixelsPerUnit
			table.PuckSpawn = center(o)
			sawPuck = true
		case objPaddle:
			player := o.Properties.GetString("player")
			var p statevec.Paddle
			switch player {
			case "p1":
				p = statevec.Paddle1
			case "p2":
				p = statevec.Paddle2
			default:
				return table, fmt.Errorf("%s: paddle object %d has player %q", tmxPath, o.ID, player)
			}
			table.PaddleRadius = o.Width / 2 / PixelsPerUnit
			table.PaddleSpawn[p-1] = center(o)
			sawPaddle[p-1] = true
		}
	}

	if !sawPuck || !sawPaddle[0] || !sawPaddle[1] {
		return table, fmt.Errorf("%s: need a puck and both paddles", tmxPath)
	}
	if err := table.Validate(); err != nil {
		return table, fmt.Errorf("%s: %w", tmxPath, err)
	}
	return table, nil
}

// LoadAllTables discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllTables(fsys fs.FS, dir string) (map[string]tablephysics.Table, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	tables := make(map[string]tablephysics.Table, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		t, err := LoadTable(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		tables[stem] = t
		names = append(names, stem)
	}

	sort.Strings(names)
	return tables, names, nil
}
