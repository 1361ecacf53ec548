package event

import (
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/internal/category"
)

// MaxDescriptionLength is inclusive: a description of exactly 500 runes is valid.
const MaxDescriptionLength = 500

// BargainThreshold is the price below which an event counts as a bargain.
const BargainThreshold = 30.0

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	Name           string              `gorm:"type:varchar(255)" json:"name"`
	Description    string              `gorm:"type:text" json:"description"`
	Location       string              `gorm:"type:varchar(255)" json:"location"`
	IncludesFood   bool                `json:"includes_food"`
	IncludesDrinks bool                `json:"includes_drinks"`
	Price          float64             `json:"price"`
	StartsAt       time.Time           `gorm:"index" json:"starts_at"`
	EndsAt         time.Time           `json:"ends_at"`
	Capacity       int                 `json:"capacity"`
	Active         bool                `json:"active"`
	UserID         uint                `gorm:"not null;index" json:"user_id"`
	User           *auth.User          `gorm:"foreignKey:UserID" json:"-"`
	Categories     []category.Category `gorm:"many2many:categories_events" json:"categories"`
	Registrations  []Registration      `gorm:"foreignKey:EventID" json:"-"`
	Photos         []Photo             `gorm:"foreignKey:EventID" json:"-"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name for Event
func (Event) TableName() string {
	return "events"
}

// Registration links a guest user to an event they attend. The registration
// workflow (signup, cancellation) runs elsewhere; these rows are read for the
// guest list and removed when their event is destroyed.
type Registration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Registration) TableName() string {
	return "registrations"
}

// Photo belongs to an event and goes down with it. Upload and storage are
// handled by a separate service.
type Photo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;index" json:"event_id"`
	URL       string    `gorm:"type:text" json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Photo) TableName() string {
	return "photos"
}

// ===========================
// ✅ Validation
//
// Validate returns nil when the event can be persisted, otherwise a
// field -> messages map ready for the 422 response body.
func (e *Event) Validate() map[string][]string {
	errs := map[string][]string{}

	if strings.TrimSpace(e.Name) == "" {
		errs["name"] = append(errs["name"], "can't be blank")
	}
	if strings.TrimSpace(e.Description) == "" {
		errs["description"] = append(errs["description"], "can't be blank")
	} else if utf8.RuneCountInString(e.Description) > MaxDescriptionLength {
		errs["description"] = append(errs["description"], "is too long (maximum is 500 characters)")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Bargain reports whether the event costs strictly less than the threshold.
// A price of exactly 30 is not a bargain.
func (e *Event) Bargain() bool {
	return e.Price < BargainThreshold
}

// ===========================
// 🔍 Query scopes
//
// Each scope is a plain gorm scope, chainable via db.Scopes(...), so filters
// compose: db.Scopes(Published, OnDate(d)).Find(&events).

// Published keeps only active events.
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// OnDate keeps events whose [starts_at, ends_at] interval contains the given
// moment, inclusive on both ends.
func OnDate(date time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("? BETWEEN starts_at AND ends_at", date)
	}
}

// StartsOn keeps events starting within the calendar day of the given moment.
// A full timestamp is collapsed to its own day boundaries, so 11:45:59 on a
// day matches every event starting anywhere on that day.
func StartsOn(date time.Time) func(*gorm.DB) *gorm.DB {
	from := beginningOfDay(date)
	to := endOfDay(date)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("starts_at BETWEEN ? AND ?", from, to)
	}
}

// OrderByPrice sorts ascending by price; ties keep storage order.
func OrderByPrice(db *gorm.DB) *gorm.DB {
	return db.Order("price")
}

// ByName sorts ascending by name.
func ByName(db *gorm.DB) *gorm.DB {
	return db.Order("name")
}

func beginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
