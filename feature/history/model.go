package history

import "time"

// Revision is one recorded sitemap operation.
type Revision struct {
	ID        string    `json:"id" gorm:"column:id;primaryKey;type:varchar(36)"`
	Sitemap   string    `json:"sitemap" gorm:"column:sitemap;type:varchar(255);index"`
	Operation string    `json:"operation" gorm:"column:operation;type:varchar(32)"`
	Source    string    `json:"source" gorm:"column:source;type:varchar(32)"`
	URL       string    `json:"url,omitempty" gorm:"column:url;type:text"`
	OldURL    string    `json:"old_url,omitempty" gorm:"column:old_url;type:text"`
	Entries   int       `json:"entries" gorm:"column:entries"`
	Changed   bool      `json:"changed" gorm:"column:changed"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;index"`
}

// TableName pins the table name used by migrations and schema checks.
func (Revision) TableName() string {
	return "sitemap_revisions"
}
