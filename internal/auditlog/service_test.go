package auditlog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AuditLog{}))
	return db
}

func TestLogAction(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	userID := uint(7)
	eventID := uint(3)
	err := svc.LogAction(context.Background(), &userID, &eventID, "EVENT_CREATED", map[string]interface{}{
		"name": "Beach cleanup",
	}, "192.0.2.1", "success")
	require.NoError(t, err)

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "EVENT_CREATED", entry.Action)
	assert.Equal(t, "192.0.2.1", entry.IPAddress)
	assert.Equal(t, "success", entry.Status)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, "Beach cleanup", details["name"])
}

func TestLogActionAnonymousActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))

	eventID := uint(3)
	err := svc.LogAction(context.Background(), nil, &eventID, "EVENT_DELETED", nil, "192.0.2.1", "success")
	require.NoError(t, err)

	var entry AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Nil(t, entry.UserID)
	assert.JSONEq(t, "{}", string(entry.Details))
}

func TestGetAuditLogs(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(NewRepository(db))
	ctx := context.Background()

	userA := uint(1)
	userB := uint(2)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.LogAction(ctx, &userA, nil, "EVENT_CREATED", nil, "192.0.2.1", "success"))
	}
	require.NoError(t, svc.LogAction(ctx, &userB, nil, "EVENT_DELETED", nil, "192.0.2.2", "failure"))

	page, err := svc.GetAuditLogs(ctx, AuditLogFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 1, page.TotalPages)

	page, err = svc.GetAuditLogs(ctx, AuditLogFilter{UserID: &userA, Action: "EVENT_CREATED"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	require.Len(t, page.Data, 3)

	page, err = svc.GetAuditLogs(ctx, AuditLogFilter{Status: "failure"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
	assert.Equal(t, "EVENT_DELETED", page.Data[0].Action)

	page, err = svc.GetAuditLogs(ctx, AuditLogFilter{Limit: 3, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, page.Total)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.TotalPages)
}
