package checks

import (
	"testing"

	"sitemap-manager/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type testRevision struct {
	ID      string `gorm:"column:id;primaryKey;type:varchar(36)"`
	Sitemap string `gorm:"column:sitemap;type:varchar(255)"`
	Entries int    `gorm:"column:entries"`
	Ignored string `gorm:"-"`
}

func (testRevision) TableName() string { return "revisions" }

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, testRevision{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_NoTableName(t *testing.T) {
	db, _ := setupMockDB(t)
	_, err := CheckSchema(db, struct{ ID int }{})
	assert.ErrorContains(t, err, "does not implement TableName")
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "varchar(36)", "NO", "PRI", nil, "").
		AddRow("sitemap", "text", "NO", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `revisions`").WillReturnRows(rows)

	report, err := CheckSchema(db, testRevision{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"entries"}, report.MissingColumns)
	assert.Equal(t, []string{"sitemap: expected varchar(255), got text"}, report.TypeMismatches)
}

func TestCheckSchema_SQLiteMigrated(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testRevision{}))

	report, err := CheckSchema(db, testRevision{})
	require.NoError(t, err)
	assert.True(t, report.Matched, "mismatches: %v missing: %v", report.TypeMismatches, report.MissingColumns)
}

func TestGormTagValue(t *testing.T) {
	assert.Equal(t, "id", gormTagValue("column:id;primaryKey", "column"))
	assert.Equal(t, "item_name", gormTagValue("primaryKey;column:item_name;type:varchar(100)", "column"))
	assert.Equal(t, "int(11)", gormTagValue("column:id;type:int(11)", "type"))
	assert.Equal(t, "", gormTagValue("column:id", "type"))
}
