package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"fishplant-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ExportService renders a month's records as CSV or PDF for the office.
type ExportService struct {
	listing *ListingService
}

func NewExportService(listing *ListingService) *ExportService {
	return &ExportService{listing: listing}
}

// MonthCSV writes one row per ticket. The CSV carries every column including
// the Japanese text fields; Excel opens it directly.
func (s *ExportService) MonthCSV(ctx context.Context, month string) ([]byte, error) {
	rows, err := s.listing.ListMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	// BOM so Excel detects UTF-8 and renders the Japanese columns.
	buf.WriteString("\xEF\xBB\xBF")
	w := csv.NewWriter(&buf)

	header := []string{"ticketId", "purchaseDate", "species", "person", "factory", "supplier", "status", "reportDate", "reportKg"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		kg := ""
		if r.Status != "" && r.ReportDate != "" {
			kg = strconv.FormatFloat(r.ReportKg, 'f', -1, 64)
		}
		record := []string{r.TicketID, r.PurchaseDate, r.Species, r.Person, r.Factory, r.Supplier, r.Status, r.ReportDate, kg}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MonthPDF renders a printable summary. The built-in fonts have no CJK
// glyphs, so the PDF sticks to ids, dates and numbers; the full text columns
// are in the CSV export.
func (s *ExportService) MonthPDF(ctx context.Context, month string) ([]byte, error) {
	rows, err := s.listing.ListMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	if month == "" {
		month = timeutil.ThisMonth()
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, fmt.Sprintf("Monthly Records - %s", month), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(90, 7, "Ticket ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Purchase Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Report Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Kg", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	var reported, closed int
	for _, r := range rows {
		kg := ""
		if r.ReportDate != "" {
			kg = strconv.FormatFloat(r.ReportKg, 'f', 1, 64)
		}
		switch r.Status {
		case "reported":
			reported++
		case "closed":
			closed++
		}
		pdf.CellFormat(90, 6, r.TicketID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, r.PurchaseDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, r.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, r.ReportDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, kg, "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(277, 7, fmt.Sprintf("Tickets: %d    Reported: %d    Closed: %d    Open: %d",
		len(rows), reported, closed, len(rows)-reported-closed), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
