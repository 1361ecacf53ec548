package event

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/internal/category"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 📄 List Events
//
// With a zero filter this returns the full collection, inactive included.
func (r *Repository) List(filter ListFilter) ([]Event, error) {
	query := r.DB.Preload("Categories")

	if filter.Published {
		query = query.Scopes(Published)
	}
	if filter.OnDate != nil {
		query = query.Scopes(OnDate(*filter.OnDate))
	}
	if filter.StartsOn != nil {
		query = query.Scopes(StartsOn(*filter.StartsOn))
	}

	switch filter.Sort {
	case "price":
		query = query.Scopes(OrderByPrice)
	case "name":
		query = query.Scopes(ByName)
	default:
		query = query.Order("id")
	}

	var events []Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ===========================
// 🔍 Find Event By ID (global collection, no ownership check)
func (r *Repository) FindByID(id uint) (*Event, error) {
	var e Event
	if err := r.DB.Preload("Categories").First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 🔍 Find Event within the acting user's own events
func (r *Repository) FindOwnedByID(id uint, userID uint) (*Event, error) {
	var e Event
	err := r.DB.Preload("Categories").
		Where("id = ? AND user_id = ?", id, userID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ===========================
// 🎯 Create Event (inserts the category join rows along with the event)
func (r *Repository) Create(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🛠 Save Event (associations are replaced explicitly, not implicitly)
func (r *Repository) Save(e *Event) error {
	return r.DB.Omit(clause.Associations).Save(e).Error
}

// ReplaceCategories swaps the event's category set for the given one.
func (r *Repository) ReplaceCategories(e *Event, categories []category.Category) error {
	return r.DB.Model(e).Association("Categories").Replace(categories)
}

// ===========================
// ❌ Delete Event with explicit cascade
//
// Photos, registrations and the category join rows go down with the event in
// one transaction. Guests themselves are untouched.
func (r *Repository) Delete(e *Event) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", e.ID).Delete(&Photo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", e.ID).Delete(&Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Model(e).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(e).Error
	})
}

// ===========================
// 👥 Guests reachable through the event's registrations
func (r *Repository) Guests(eventID uint) ([]auth.User, error) {
	var guests []auth.User
	err := r.DB.
		Joins("JOIN registrations ON registrations.user_id = users.id").
		Where("registrations.event_id = ?", eventID).
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

// CountRegistrations is used by the audit trail when an event is destroyed.
func (r *Repository) CountRegistrations(eventID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
