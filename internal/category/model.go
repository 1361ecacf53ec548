package category

import (
	"time"
)

// Category is a tag attachable to many events (many-to-many through
// categories_events). Category management itself happens elsewhere; events
// only reference existing categories by id.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}
