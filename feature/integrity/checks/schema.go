package checks

import (
	"fmt"
	"reflect"
	"strings"

	"sitemap-manager/core/database"

	"gorm.io/gorm"
)

// SchemaReport compares a table with the GORM model it is expected to hold.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
}

// CheckSchema verifies a table using the GORM model as the source of truth.
// The model must implement TableName.
func CheckSchema(db *gorm.DB, model any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	tabler, ok := model.(interface{ TableName() string })
	if !ok {
		return nil, fmt.Errorf("model %T does not implement TableName", model)
	}

	report := &SchemaReport{
		Table:          tabler.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}

	columns, err := database.TableColumns(db, report.Table)
	if err != nil {
		return nil, err
	}
	actual := make(map[string]string, len(columns))
	for _, c := range columns {
		actual[c.Field] = c.Type
	}

	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		column := gormTagValue(tag, "column")
		if column == "" {
			continue
		}

		actualType, exists := actual[column]
		if !exists {
			report.MissingColumns = append(report.MissingColumns, column)
			report.Matched = false
			continue
		}

		// Only columns with an explicit type are compared, loosely: sqlite
		// reports declared types verbatim and mysql adds lengths and flags.
		expected := strings.ToLower(gormTagValue(tag, "type"))
		if expected != "" && !strings.Contains(actualType, expected) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", column, expected, actualType))
			report.Matched = false
		}
	}

	return report, nil
}

// gormTagValue returns the value of key in a GORM struct tag ("column:id;type:text").
func gormTagValue(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
