package event

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	FormatExcel = "xlsx"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

// ExportEvents renders the collection in the requested format and returns the
// raw bytes plus a filename and content type for the download headers.
func ExportEvents(format string, events []Event) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatExcel:
		data, err := exportEventsExcel(events)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_%s.xlsx", timestamp)
		return data, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatCSV:
		data, err := exportEventsCSV(events)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_%s.csv", timestamp)
		return data, filename, "text/csv", nil

	case FormatPDF:
		data, err := exportEventsPDF(events)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("events_%s.pdf", timestamp)
		return data, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

var exportHeaders = []string{"Name", "Description", "Location", "Price", "Starts At", "Ends At", "Capacity", "Active", "Categories"}

func categoryNames(e Event) string {
	names := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func exportEventsExcel(events []Event) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Events"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, e := range events {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Location)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.StartsAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.EndsAt.Format("2006-01-02 15:04"))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), e.Capacity)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), e.Active)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), categoryNames(e))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportEventsCSV(events []Event) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}

	for _, e := range events {
		record := []string{
			e.Name,
			e.Description,
			e.Location,
			strconv.FormatFloat(e.Price, 'f', 2, 64),
			e.StartsAt.Format("2006-01-02 15:04"),
			e.EndsAt.Format("2006-01-02 15:04"),
			strconv.Itoa(e.Capacity),
			strconv.FormatBool(e.Active),
			categoryNames(e),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	// Important: Flush before getting bytes
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func exportEventsPDF(events []Event) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Events")
	pdf.Ln(20)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{50, 40, 20, 30, 30, 20, 15, 50}
	headers := []string{"Name", "Location", "Price", "Starts At", "Ends At", "Capacity", "Active", "Categories"}

	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, e := range events {
		pdf.CellFormat(widths[0], 6, e.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, e.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, strconv.FormatFloat(e.Price, 'f', 2, 64), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, e.StartsAt.Format("02-01-06"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[4], 6, e.EndsAt.Format("02-01-06"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[5], 6, strconv.Itoa(e.Capacity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, strconv.FormatBool(e.Active), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[7], 6, categoryNames(e), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
