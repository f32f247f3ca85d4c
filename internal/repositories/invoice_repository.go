package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"

	"github.com/shopspring/decimal"
)

const invoiceFrom = "invoices i LEFT JOIN customers c ON c.id = i.customer_id"

const invoiceColumns = `i.id, i.organization_id, i.customer_id, i.invoice_number, i.invoice_date, i.due_date,
	i.prescription_snapshot, i.insurance_provider, i.insurance_claim_number,
	i.insurance_coverage_amount, i.patient_copay_amount, i.subtotal, i.vat_amount, i.total,
	i.status, i.payment_method, i.notes, i.created_at, i.updated_at,
	c.first_name, c.last_name, c.email`

var InvoiceSorts = query.NewSortFields("created_at",
	"created_at", "invoice_date", "total", "invoice_number")

var invoiceSearchFields = []string{"i.invoice_number", "c.first_name", "c.last_name"}

// InvoiceNumber formats the store-assigned invoice number.
func InvoiceNumber(year int, id int64) string {
	return fmt.Sprintf("RE-%d-%06d", year, id)
}

type InvoiceRepository struct {
	DB *sql.DB
}

func InvoiceListSpec(orgID int64, f models.InvoiceFilter, p models.ListParams) query.Spec {
	filters := query.NewBuilder().
		Eq("i.organization_id", orgID).
		Search(f.Search, invoiceSearchFields...).
		Eq("i.status", f.Status).
		Eq("i.customer_id", f.CustomerID).
		Gte("i.invoice_date", f.DateFrom).
		Lte("i.invoice_date", f.DateTo).
		Build()
	return listSpec(filters, InvoiceSorts, p.SortBy, p.SortOrder, p.Page, p.PerPage)
}

func (r InvoiceRepository) List(ctx context.Context, orgID int64, f models.InvoiceFilter, p models.ListParams) (query.PageResult[models.Invoice], error) {
	src := listSource[models.Invoice]{
		from:    invoiceFrom,
		columns: invoiceColumns,
		prefix:  "i.",
		scan:    scanInvoice,
	}
	return runList(ctx, r.DB, src, InvoiceListSpec(orgID, f, p))
}

// Get loads the invoice with its customer summary and items.
func (r InvoiceRepository) Get(ctx context.Context, orgID, id int64) (models.InvoiceWithItems, error) {
	return getInvoice(ctx, r.DB, orgID, id)
}

func (r InvoiceRepository) Exists(ctx context.Context, orgID, id int64) (bool, error) {
	return rowExists(ctx, r.DB, "SELECT 1 FROM invoices WHERE id = ? AND organization_id = ? LIMIT 1", id, orgID)
}

// Create inserts the invoice, assigns its number and inserts the items in
// one transaction.
func (r InvoiceRepository) Create(ctx context.Context, orgID int64, year int, inv intdb.Changes, items []intdb.Changes) (models.InvoiceWithItems, error) {
	var id int64
	err := intdb.WithTx(ctx, r.DB, func(tx *sql.Tx) error {
		inv.Set("organization_id", orgID)
		var err error
		id, err = insertRow(ctx, tx, "invoices", inv)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "UPDATE invoices SET invoice_number = ? WHERE id = ?", InvoiceNumber(year, id), id); err != nil {
			return err
		}
		for _, item := range items {
			if _, err := insertItem(ctx, tx, id, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.InvoiceWithItems{}, err
	}
	return r.Get(ctx, orgID, id)
}

func (r InvoiceRepository) Update(ctx context.Context, orgID, id int64, ch intdb.Changes) (models.InvoiceWithItems, error) {
	if err := updateRow(ctx, r.DB, "invoices", ch, true, "id = ? AND organization_id = ?", id, orgID); err != nil {
		return models.InvoiceWithItems{}, err
	}
	return r.Get(ctx, orgID, id)
}

// Delete removes the invoice; items go with it through ON DELETE CASCADE.
func (r InvoiceRepository) Delete(ctx context.Context, orgID, id int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM invoices WHERE id = ? AND organization_id = ?", id, orgID)
	return err
}

func getInvoice(ctx context.Context, conn intdb.DBTX, orgID, id int64) (models.InvoiceWithItems, error) {
	row := conn.QueryRowContext(ctx,
		"SELECT "+invoiceColumns+" FROM "+invoiceFrom+" WHERE i.id = ? AND i.organization_id = ?", id, orgID)
	inv, err := scanInvoice(row)
	if err != nil {
		return models.InvoiceWithItems{}, err
	}
	items, err := listItems(ctx, conn, id)
	if err != nil {
		return models.InvoiceWithItems{}, err
	}
	return models.InvoiceWithItems{Invoice: inv, Items: items}, nil
}

func scanInvoice(rs intdb.RowScanner) (models.Invoice, error) {
	var (
		inv                             models.Invoice
		number                          sql.NullString
		dueDate                         sql.Null[domain.Date]
		snapshot                        []byte
		provider, claim, payment, notes sql.NullString
		coverage, copay                 decimal.NullDecimal
		status                          string
		first, last, email              sql.NullString
	)
	err := rs.Scan(
		&inv.ID, &inv.OrganizationID, &inv.CustomerID, &number, &inv.InvoiceDate, &dueDate,
		&snapshot, &provider, &claim,
		&coverage, &copay, &inv.Subtotal, &inv.VATAmount, &inv.Total,
		&status, &payment, &notes, &inv.CreatedAt, &inv.UpdatedAt,
		&first, &last, &email,
	)
	if err != nil {
		return models.Invoice{}, err
	}
	inv.InvoiceNumber = number.String
	inv.DueDate = intdb.NullPtr(dueDate)
	inv.PrescriptionSnapshot = intdb.JSON(snapshot)
	inv.InsuranceProvider = intdb.StringPtr(provider)
	inv.InsuranceClaimNumber = intdb.StringPtr(claim)
	inv.InsuranceCoverageAmount = nullDecimal(coverage)
	inv.PatientCopayAmount = nullDecimal(copay)
	inv.Status = models.InvoiceStatus(status)
	inv.PaymentMethod = intdb.StringPtr(payment)
	inv.Notes = intdb.StringPtr(notes)
	if first.Valid || last.Valid || email.Valid {
		inv.Customer = &models.InvoiceCustomer{
			FirstName: intdb.StringPtr(first),
			LastName:  intdb.StringPtr(last),
			Email:     intdb.StringPtr(email),
		}
	}
	return inv, nil
}

func nullDecimal(v decimal.NullDecimal) *decimal.Decimal {
	if !v.Valid {
		return nil
	}
	d := v.Decimal
	return &d
}
