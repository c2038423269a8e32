package assets

import (
	"embed"
	"fmt"
	"path"

	"github.com/automoto/airhockey-mp/shared/tabledata"
	"github.com/automoto/airhockey-mp/shared/tablephysics"
)

var (
	//go:embed all:tables
	tableFS embed.FS
)

const tableDir = "tables"

// LoadTable reads the embedded Tiled table with the given name.
func LoadTable(name string) (tablephysics.Table, error) {
	t, err := tabledata.LoadTable(tableFS, path.Join(tableDir, name+".tmx"))
	if err != nil {
		return tablephysics.Table{}, fmt.Errorf("table %q: %w", name, err)
	}
	return t, nil
}

// ListTableNames returns the embedded table names in sorted order.
func ListTableNames() ([]string, error) {
	_, names, err := tabledata.LoadAllTables(tableFS, tableDir)
	return names, err
}
