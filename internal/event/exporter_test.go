package event

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codaisseur/eventup-backend/internal/category"
)

func exportFixtures() []Event {
	return []Event{
		{
			Name:        "Beach cleanup",
			Description: "Bring gloves",
			Location:    "Zandvoort",
			Price:       12.5,
			StartsAt:    time.Date(2017, 6, 1, 9, 0, 0, 0, time.UTC),
			EndsAt:      time.Date(2017, 6, 1, 17, 0, 0, 0, time.UTC),
			Capacity:    50,
			Active:      true,
			Categories: []category.Category{
				{Name: "Bright"},
				{Name: "Clean lines"},
			},
		},
		{
			Name:        "Night market, with commas",
			Description: "Food stalls",
			Location:    "Amsterdam",
			Price:       0,
			Capacity:    200,
			Active:      false,
		},
	}
}

func TestExportEventsCSV(t *testing.T) {
	data, filename, contentType, err := ExportEvents(FormatCSV, exportFixtures())
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.True(t, strings.HasPrefix(filename, "events_"))
	assert.True(t, strings.HasSuffix(filename, ".csv"))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per event")

	assert.Equal(t, exportHeaders, records[0])
	assert.Equal(t, "Beach cleanup", records[1][0])
	assert.Equal(t, "12.50", records[1][3])
	assert.Equal(t, "Bright, Clean lines", records[1][8])
	assert.Equal(t, "Night market, with commas", records[2][0])
	assert.Equal(t, "false", records[2][7])
}

func TestExportEventsExcel(t *testing.T) {
	data, filename, contentType, err := ExportEvents(FormatExcel, exportFixtures())
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType)
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestExportEventsPDF(t *testing.T) {
	data, _, contentType, err := ExportEvents(FormatPDF, exportFixtures())
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestExportEventsUnsupportedFormat(t *testing.T) {
	_, _, _, err := ExportEvents("docx", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
