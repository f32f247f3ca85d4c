package repositories

import (
	"context"
	"database/sql"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain/models"
)

const invoiceItemColumns = `id, invoice_id, product_id, product_snapshot, prescription_values,
	quantity, unit_price, discount_amount, vat_rate, line_total, insurance_covered, created_at`

// InvoiceItemRepository works below an invoice whose tenant has already
// been checked by the caller.
type InvoiceItemRepository struct {
	DB *sql.DB
}

func (r InvoiceItemRepository) Get(ctx context.Context, invoiceID, itemID int64) (models.InvoiceItem, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+invoiceItemColumns+" FROM invoice_items WHERE id = ? AND invoice_id = ?", itemID, invoiceID)
	return scanInvoiceItem(row)
}

func (r InvoiceItemRepository) Exists(ctx context.Context, invoiceID, itemID int64) (bool, error) {
	return rowExists(ctx, r.DB, "SELECT 1 FROM invoice_items WHERE id = ? AND invoice_id = ? LIMIT 1", itemID, invoiceID)
}

func (r InvoiceItemRepository) Create(ctx context.Context, invoiceID int64, ch intdb.Changes) (models.InvoiceItem, error) {
	id, err := insertItem(ctx, r.DB, invoiceID, ch)
	if err != nil {
		return models.InvoiceItem{}, err
	}
	return r.Get(ctx, invoiceID, id)
}

func (r InvoiceItemRepository) Update(ctx context.Context, invoiceID, itemID int64, ch intdb.Changes) (models.InvoiceItem, error) {
	if err := updateRow(ctx, r.DB, "invoice_items", ch, false, "id = ? AND invoice_id = ?", itemID, invoiceID); err != nil {
		return models.InvoiceItem{}, err
	}
	return r.Get(ctx, invoiceID, itemID)
}

func (r InvoiceItemRepository) Delete(ctx context.Context, invoiceID, itemID int64) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM invoice_items WHERE id = ? AND invoice_id = ?", itemID, invoiceID)
	return err
}

func insertItem(ctx context.Context, conn intdb.DBTX, invoiceID int64, ch intdb.Changes) (int64, error) {
	ch.Set("invoice_id", invoiceID)
	return insertRow(ctx, conn, "invoice_items", ch)
}

func listItems(ctx context.Context, conn intdb.DBTX, invoiceID int64) ([]models.InvoiceItem, error) {
	rows, err := conn.QueryContext(ctx,
		"SELECT "+invoiceItemColumns+" FROM invoice_items WHERE invoice_id = ? ORDER BY id", invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		item, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanInvoiceItem(rs intdb.RowScanner) (models.InvoiceItem, error) {
	var (
		it                 models.InvoiceItem
		productID          sql.NullInt64
		snapshot, rxValues []byte
	)
	err := rs.Scan(
		&it.ID, &it.InvoiceID, &productID, &snapshot, &rxValues,
		&it.Quantity, &it.UnitPrice, &it.DiscountAmount, &it.VATRate, &it.LineTotal, &it.InsuranceCovered, &it.CreatedAt,
	)
	if err != nil {
		return models.InvoiceItem{}, err
	}
	it.ProductID = intdb.Int64Ptr(productID)
	it.ProductSnapshot = intdb.JSON(snapshot)
	it.PrescriptionValues = intdb.JSON(rxValues)
	return it, nil
}
