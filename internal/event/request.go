package event

import (
	"fmt"
	"time"
)

// The request structs are the field allow-list: anything not named here is
// dropped during binding and never reaches the store.

// 🟡 Create Event Request
type CreateEventRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	IncludesFood   bool    `json:"includes_food"`
	IncludesDrinks bool    `json:"includes_drinks"`
	Price          float64 `json:"price"`
	StartsAt       string  `json:"starts_at"` // "2006-01-02" or full timestamp
	EndsAt         string  `json:"ends_at"`
	Capacity       int     `json:"capacity"`
	Active         *bool   `json:"active,omitempty"`
	CategoryIDs    []uint  `json:"category_ids"`
}

// 🟠 Update Event Request (partial; nil fields keep their stored value)
type UpdateEventRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Location       *string  `json:"location"`
	IncludesFood   *bool    `json:"includes_food"`
	IncludesDrinks *bool    `json:"includes_drinks"`
	Price          *float64 `json:"price"`
	StartsAt       *string  `json:"starts_at"`
	EndsAt         *string  `json:"ends_at"`
	Capacity       *int     `json:"capacity"`
	Active         *bool    `json:"active"`
	CategoryIDs    *[]uint  `json:"category_ids"`
}

// ListFilter mirrors the composable model scopes on the list endpoint.
type ListFilter struct {
	Published bool
	OnDate    *time.Time
	StartsOn  *time.Time
	Sort      string // "", "price" or "name"
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the formats clients actually send: RFC3339, a bare
// datetime, or a plain date (midnight UTC).
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, use YYYY-MM-DD or RFC3339", s)
}
