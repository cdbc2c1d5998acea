package database

import (
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm"
)

// Column describes one column of an existing table.
type Column struct {
	Field string
	Type  string
}

// TableColumns returns the columns of a table with lower-cased names and types.
// A missing table yields no columns and no error.
func TableColumns(db *gorm.DB, table string) ([]Column, error) {
	var columns []Column

	if db.Dialector.Name() == DriverSQLite {
		var rows []struct {
			Name string
			Type string
		}
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", table)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
		for _, r := range rows {
			columns = append(columns, Column{Field: r.Name, Type: r.Type})
		}
	} else {
		// SHOW COLUMNS keeps the exact MySQL type strings (varchar(255), datetime(3)).
		if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", table)).Scan(&columns).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
		}
	}

	for i := range columns {
		columns[i].Field = strings.ToLower(columns[i].Field)
		columns[i].Type = strings.ToLower(columns[i].Type)
	}
	return columns, nil
}

// MissingColumns returns the expected columns absent from the table, in the given order.
func MissingColumns(db *gorm.DB, table string, expected []string) ([]string, error) {
	columns, err := TableColumns(db, table)
	if err != nil {
		return nil, err
	}

	present := make([]string, 0, len(columns))
	for _, c := range columns {
		present = append(present, c.Field)
	}

	var missing []string
	for _, name := range expected {
		if !slices.Contains(present, strings.ToLower(name)) {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
