package event

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/codaisseur/eventup-backend/internal/auditlog"
	"github.com/codaisseur/eventup-backend/internal/auth"
	"github.com/codaisseur/eventup-backend/internal/category"
)

// newTestDB opens an isolated in-memory database per test. The shared cache
// keeps the database alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&auth.User{},
		&category.Category{},
		&Event{},
		&Registration{},
		&Photo{},
		&auditlog.AuditLog{},
	))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, email string) *auth.User {
	t.Helper()
	user := &auth.User{Name: "Test User", Email: email}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func validEvent(userID uint) *Event {
	return &Event{
		Name:        "Weekly football match",
		Description: "Casual five-a-side, all levels welcome",
		Location:    "Amsterdam",
		Price:       10,
		StartsAt:    time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:      time.Date(2017, 6, 4, 0, 0, 0, 0, time.UTC),
		Capacity:    22,
		Active:      true,
		UserID:      userID,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Event)
		wantField   string
		wantMessage string
	}{
		{
			name:      "valid event passes",
			mutate:    func(e *Event) {},
			wantField: "",
		},
		{
			name:        "empty name",
			mutate:      func(e *Event) { e.Name = "" },
			wantField:   "name",
			wantMessage: "can't be blank",
		},
		{
			name:        "whitespace-only name",
			mutate:      func(e *Event) { e.Name = "   " },
			wantField:   "name",
			wantMessage: "can't be blank",
		},
		{
			name:        "empty description",
			mutate:      func(e *Event) { e.Description = "" },
			wantField:   "description",
			wantMessage: "can't be blank",
		},
		{
			name:      "description of exactly 500 characters is valid",
			mutate:    func(e *Event) { e.Description = strings.Repeat("a", 500) },
			wantField: "",
		},
		{
			name:        "description of 501 characters is too long",
			mutate:      func(e *Event) { e.Description = strings.Repeat("a", 501) },
			wantField:   "description",
			wantMessage: "is too long (maximum is 500 characters)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent(1)
			tt.mutate(e)

			errs := e.Validate()
			if tt.wantField == "" {
				assert.Nil(t, errs)
				return
			}
			require.Contains(t, errs, tt.wantField)
			assert.Contains(t, errs[tt.wantField], tt.wantMessage)
		})
	}
}

func TestBargain(t *testing.T) {
	bargain := &Event{Price: 20}
	nonBargain := &Event{Price: 200}
	boundary := &Event{Price: 30}

	assert.True(t, bargain.Bargain())
	assert.False(t, nonBargain.Bargain())
	assert.False(t, boundary.Bargain(), "price of exactly 30 is not a bargain")
}

func TestOrderByPrice(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "host@example.com")

	// Insert out of order on purpose
	for _, price := range []float64{200, 300, 100} {
		e := validEvent(user.ID)
		e.Price = price
		require.NoError(t, db.Create(e).Error)
	}

	var events []Event
	require.NoError(t, db.Scopes(OrderByPrice).Find(&events).Error)

	require.Len(t, events, 3)
	assert.Equal(t, []float64{100, 200, 300}, []float64{events[0].Price, events[1].Price, events[2].Price})
}

func TestByName(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "host@example.com")

	for _, name := range []string{"Bs", "Cmon", "Aha"} {
		e := validEvent(user.ID)
		e.Name = name
		require.NoError(t, db.Create(e).Error)
	}

	var events []Event
	require.NoError(t, db.Scopes(ByName).Find(&events).Error)

	require.Len(t, events, 3)
	assert.Equal(t, "Aha", events[0].Name)
	assert.Equal(t, "Bs", events[1].Name)
	assert.Equal(t, "Cmon", events[2].Name)
}

func TestPublished(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "host@example.com")

	for i := 0; i < 3; i++ {
		e := validEvent(user.ID)
		require.NoError(t, db.Create(e).Error)
	}
	for i := 0; i < 2; i++ {
		e := validEvent(user.ID)
		e.Active = false
		require.NoError(t, db.Create(e).Error)
	}

	var events []Event
	require.NoError(t, db.Scopes(Published).Find(&events).Error)

	require.Len(t, events, 3)
	for _, e := range events {
		assert.True(t, e.Active)
	}
}

func seedDateEvents(t *testing.T, db *gorm.DB) (longEvent, shortEvent *Event) {
	t.Helper()
	user := newTestUser(t, db, "host@example.com")

	longEvent = validEvent(user.ID)
	longEvent.Name = "Long event"
	longEvent.StartsAt = time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	longEvent.EndsAt = time.Date(2017, 6, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(longEvent).Error)

	shortEvent = validEvent(user.ID)
	shortEvent.Name = "Short event"
	shortEvent.StartsAt = time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC)
	shortEvent.EndsAt = time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(shortEvent).Error)

	return longEvent, shortEvent
}

func eventNamesOn(t *testing.T, db *gorm.DB, scope func(*gorm.DB) *gorm.DB) []string {
	t.Helper()
	var events []Event
	require.NoError(t, db.Scopes(scope).Find(&events).Error)
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	return names
}

func TestOnDate(t *testing.T) {
	db := newTestDB(t)
	seedDateEvents(t, db)

	day := func(d int) time.Time { return time.Date(2017, 6, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		date time.Time
		want []string
	}{
		{day(1), []string{"Long event"}},
		{day(2), []string{"Long event", "Short event"}},
		{day(3), []string{"Long event"}},
		{day(4), []string{"Long event"}},
		{day(5), []string{}},
		{time.Date(2016, 6, 3, 0, 0, 0, 0, time.UTC), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01-02"), func(t *testing.T) {
			names := eventNamesOn(t, db, OnDate(tt.date))
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}

func TestStartsOn(t *testing.T) {
	db := newTestDB(t)
	seedDateEvents(t, db)

	june1 := time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC)
	names := eventNamesOn(t, db, StartsOn(june1))
	assert.ElementsMatch(t, []string{"Long event"}, names)

	// A full timestamp is collapsed to its own day boundaries
	crazyTime := time.Date(2017, 6, 2, 11, 45, 59, 0, time.UTC)
	names = eventNamesOn(t, db, StartsOn(crazyTime))
	assert.ElementsMatch(t, []string{"Short event"}, names)
}

func TestScopesCompose(t *testing.T) {
	db := newTestDB(t)
	longEvent, _ := seedDateEvents(t, db)

	// Unpublish the long event; published + on_date(june3) must then be empty
	longEvent.Active = false
	require.NoError(t, db.Save(longEvent).Error)

	june3 := time.Date(2017, 6, 3, 0, 0, 0, 0, time.UTC)

	var events []Event
	require.NoError(t, db.Scopes(Published, OnDate(june3)).Find(&events).Error)
	assert.Empty(t, events)

	june2 := time.Date(2017, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Scopes(Published, OnDate(june2)).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "Short event", events[0].Name)
}

func TestAssociations(t *testing.T) {
	db := newTestDB(t)
	host := newTestUser(t, db, "host@example.com")
	guest := newTestUser(t, db, "guest@example.com")

	bright := &category.Category{Name: "Bright"}
	cleanLines := &category.Category{Name: "Clean lines"}
	require.NoError(t, db.Create(bright).Error)
	require.NoError(t, db.Create(cleanLines).Error)

	e := validEvent(host.ID)
	e.Categories = []category.Category{*bright, *cleanLines}
	require.NoError(t, db.Create(e).Error)

	require.NoError(t, db.Create(&Registration{EventID: e.ID, UserID: guest.ID}).Error)

	repo := NewRepository(db)

	fetched, err := repo.FindByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, host.ID, fetched.UserID)
	assert.Len(t, fetched.Categories, 2)

	guests, err := repo.Guests(e.ID)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, guest.Email, guests[0].Email)
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2017-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 6, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTimestamp("2017-06-02 11:45:59")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 6, 2, 11, 45, 59, 0, time.UTC), got)

	got, err = ParseTimestamp("2017-06-02T11:45:59Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 6, 2, 11, 45, 59, 0, time.UTC), got)

	_, err = ParseTimestamp("next tuesday")
	assert.Error(t, err)
}
