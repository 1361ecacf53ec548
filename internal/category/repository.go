package category

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// FindByIDs resolves a list of category ids to records. Unknown ids are
// silently dropped, so attaching categories never fails on a stale id.
func (r *Repository) FindByIDs(ids []uint) ([]Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []Category
	if err := r.DB.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
