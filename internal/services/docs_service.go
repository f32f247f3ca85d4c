package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"opticrm/internal/domain/models"
	"opticrm/internal/utils"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

// DocsService renders printable invoice documents.
type DocsService struct {
	Invoices  InvoiceStore
	Log       *zap.Logger
	RequestID string
	Loader    func(ctx context.Context, orgID, id int64) (models.InvoiceWithItems, error)
}

// GenerateInvoice returns the PDF bytes and a download filename.
func (s DocsService) GenerateInvoice(ctx context.Context, orgID, id int64) ([]byte, string, error) {
	inv, err := s.load(ctx, orgID, id)
	if err != nil {
		return nil, "", err
	}
	pdf, err := buildInvoicePDF(inv)
	if err != nil {
		return nil, "", storeError(s.Log, invoiceResource, "render_pdf", id, err)
	}
	utils.LogEvent(s.Log, s.RequestID, "docs", "generate_invoice", zap.Int64("invoice_id", id))
	return pdf, invoiceFilename(inv), nil
}

func (s DocsService) load(ctx context.Context, orgID, id int64) (models.InvoiceWithItems, error) {
	if s.Loader != nil {
		return s.Loader(ctx, orgID, id)
	}
	return InvoiceService{Invoices: s.Invoices, Log: s.Log, RequestID: s.RequestID}.Get(ctx, orgID, id)
}

func invoiceFilename(inv models.InvoiceWithItems) string {
	number := inv.InvoiceNumber
	if number == "" {
		number = fmt.Sprintf("%d", inv.ID)
	}
	return "invoice-" + utils.SafeFilenamePart(number) + ".pdf"
}

func buildInvoicePDF(inv models.InvoiceWithItems) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Rechnung "+inv.InvoiceNumber, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RECHNUNG")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	header := []string{
		"Rechnungsnummer : " + safe(inv.InvoiceNumber, "-"),
		"Rechnungsdatum  : " + inv.InvoiceDate.String(),
		"Status          : " + string(inv.Status),
	}
	if inv.DueDate != nil {
		header = append(header, "Fällig am       : "+inv.DueDate.String())
	}
	for _, line := range header {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if c := inv.Customer; c != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr("Rechnungsempfänger"))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, tr(safe(strings.TrimSpace(deref(c.FirstName)+" "+deref(c.LastName)), "-")))
		pdf.Ln(6)
		if email := deref(c.Email); email != "" {
			pdf.Cell(0, 6, tr(email))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	widths := []float64{80, 20, 30, 25, 35}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Artikel", "Menge", "Einzelpreis", "Rabatt", "Gesamt"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, it := range inv.Items {
		cols := []string{
			itemDescription(it),
			fmt.Sprintf("%d", it.Quantity),
			utils.FormatEuro(it.UnitPrice),
			utils.FormatEuro(it.DiscountAmount),
			utils.FormatEuro(it.LineTotal),
		}
		for i, v := range cols {
			pdf.CellFormat(widths[i], 6, tr(v), "", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	totals := [][2]string{
		{"Zwischensumme", utils.FormatEuro(inv.Subtotal)},
		{"MwSt.", utils.FormatEuro(inv.VATAmount)},
	}
	for _, row := range totals {
		pdf.CellFormat(155, 6, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, row[1], "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(155, 8, "Gesamtbetrag", "", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, utils.FormatEuro(inv.Total), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range insuranceLines(inv.Invoice) {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	if notes := deref(inv.Notes); notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, tr(notes), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func insuranceLines(inv models.Invoice) []string {
	var out []string
	if v := deref(inv.InsuranceProvider); v != "" {
		out = append(out, "Krankenkasse       : "+v)
	}
	if v := deref(inv.InsuranceClaimNumber); v != "" {
		out = append(out, "Vorgangsnummer     : "+v)
	}
	if inv.InsuranceCoverageAmount != nil {
		out = append(out, "Kassenanteil       : "+utils.FormatEuro(*inv.InsuranceCoverageAmount))
	}
	if inv.PatientCopayAmount != nil {
		out = append(out, "Eigenanteil        : "+utils.FormatEuro(*inv.PatientCopayAmount))
	}
	return out
}

// itemDescription prefers the name frozen into the product snapshot.
func itemDescription(it models.InvoiceItem) string {
	var snap struct {
		Name string `json:"name"`
	}
	if len(it.ProductSnapshot) > 0 && json.Unmarshal(it.ProductSnapshot, &snap) == nil && strings.TrimSpace(snap.Name) != "" {
		return truncate(snap.Name, 45)
	}
	if it.ProductID != nil {
		return fmt.Sprintf("Artikel #%d", *it.ProductID)
	}
	return "Artikel"
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
