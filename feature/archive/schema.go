package archive

import (
	"gorm.io/gorm"

	"github.com/darrenhoch/DualogOutlook/core/database"
)

// dbColumns returns the lowercased column set of a table.
func dbColumns(db *gorm.DB, table string) (map[string]struct{}, error) {
	cols, err := database.GetTableColumns(db, table)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		set[col.Field] = struct{}{}
	}
	return set, nil
}
