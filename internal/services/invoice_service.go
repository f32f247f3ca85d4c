package services

import (
	"context"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
	"opticrm/internal/utils"

	"go.uber.org/zap"
)

type InvoiceStore interface {
	List(ctx context.Context, orgID int64, f models.InvoiceFilter, p models.ListParams) (query.PageResult[models.Invoice], error)
	Get(ctx context.Context, orgID, id int64) (models.InvoiceWithItems, error)
	Exists(ctx context.Context, orgID, id int64) (bool, error)
	Create(ctx context.Context, orgID int64, year int, inv intdb.Changes, items []intdb.Changes) (models.InvoiceWithItems, error)
	Update(ctx context.Context, orgID, id int64, ch intdb.Changes) (models.InvoiceWithItems, error)
	Delete(ctx context.Context, orgID, id int64) error
}

// InvoiceItemStore works on items already scoped to one invoice.
type InvoiceItemStore interface {
	Exists(ctx context.Context, invoiceID, itemID int64) (bool, error)
	Create(ctx context.Context, invoiceID int64, ch intdb.Changes) (models.InvoiceItem, error)
	Update(ctx context.Context, invoiceID, itemID int64, ch intdb.Changes) (models.InvoiceItem, error)
	Delete(ctx context.Context, invoiceID, itemID int64) error
}

// RecordChecker answers tenant-scoped existence questions for references.
type RecordChecker interface {
	Exists(ctx context.Context, orgID, id int64) (bool, error)
}

type InvoiceService struct {
	Invoices  InvoiceStore
	Items     InvoiceItemStore
	Customers RecordChecker
	Products  RecordChecker
	Log       *zap.Logger
	RequestID string
}

const (
	invoiceResource = "invoice"
	itemResource    = "invoice item"
)

func (s InvoiceService) List(ctx context.Context, orgID int64, f models.InvoiceFilter, p models.ListParams) (query.PageResult[models.Invoice], error) {
	res, err := s.Invoices.List(ctx, orgID, f, p)
	if err != nil {
		return res, storeError(s.Log, invoiceResource, "list", 0, err)
	}
	return res, nil
}

func (s InvoiceService) Get(ctx context.Context, orgID, id int64) (models.InvoiceWithItems, error) {
	inv, err := s.Invoices.Get(ctx, orgID, id)
	if err != nil {
		return inv, storeError(s.Log, invoiceResource, "get", id, err)
	}
	return inv, nil
}

// Create stores the invoice, its number and its items in one transaction.
func (s InvoiceService) Create(ctx context.Context, orgID int64, in models.InvoiceCreate) (models.InvoiceWithItems, error) {
	ch, items, date, err := invoiceCreateChanges(in)
	if err != nil {
		return models.InvoiceWithItems{}, err
	}
	if err := s.checkReference(ctx, s.Customers, customerResource, orgID, in.CustomerID); err != nil {
		return models.InvoiceWithItems{}, err
	}
	for _, it := range in.Items {
		if it.ProductID == nil {
			continue
		}
		if err := s.checkReference(ctx, s.Products, productResource, orgID, *it.ProductID); err != nil {
			return models.InvoiceWithItems{}, err
		}
	}

	inv, err := s.Invoices.Create(ctx, orgID, date.Year(), ch, items)
	if err != nil {
		return inv, storeError(s.Log, invoiceResource, "create", 0, err)
	}
	utils.LogEvent(s.Log, s.RequestID, invoiceResource, "create",
		zap.Int64("id", inv.ID), zap.String("number", inv.InvoiceNumber), zap.Int("items", len(inv.Items)))
	return inv, nil
}

func (s InvoiceService) Update(ctx context.Context, orgID, id int64, in models.InvoiceUpdate) (models.InvoiceWithItems, error) {
	ch, err := invoiceUpdateChanges(in)
	if err != nil {
		return models.InvoiceWithItems{}, err
	}
	if err := s.requireInvoice(ctx, orgID, id); err != nil {
		return models.InvoiceWithItems{}, err
	}
	if in.CustomerID.Present() {
		if err := s.checkReference(ctx, s.Customers, customerResource, orgID, in.CustomerID.Value); err != nil {
			return models.InvoiceWithItems{}, err
		}
	}
	inv, err := s.Invoices.Update(ctx, orgID, id, ch)
	if err != nil {
		return inv, storeError(s.Log, invoiceResource, "update", id, err)
	}
	utils.LogEvent(s.Log, s.RequestID, invoiceResource, "update", zap.Int64("id", id), zap.Strings("fields", ch.Columns()))
	return inv, nil
}

// Delete removes the invoice; its items go with it.
func (s InvoiceService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.requireInvoice(ctx, orgID, id); err != nil {
		return err
	}
	if err := s.Invoices.Delete(ctx, orgID, id); err != nil {
		return storeError(s.Log, invoiceResource, "delete", id, err)
	}
	utils.LogEvent(s.Log, s.RequestID, invoiceResource, "delete", zap.Int64("id", id))
	return nil
}

func (s InvoiceService) AddItem(ctx context.Context, orgID, invoiceID int64, in models.InvoiceItemCreate) (models.InvoiceItem, error) {
	ch, err := invoiceItemCreateChanges(in)
	if err != nil {
		return models.InvoiceItem{}, err
	}
	if err := s.requireInvoice(ctx, orgID, invoiceID); err != nil {
		return models.InvoiceItem{}, err
	}
	if in.ProductID != nil {
		if err := s.checkReference(ctx, s.Products, productResource, orgID, *in.ProductID); err != nil {
			return models.InvoiceItem{}, err
		}
	}
	item, err := s.Items.Create(ctx, invoiceID, ch)
	if err != nil {
		return item, storeError(s.Log, itemResource, "create", 0, err)
	}
	utils.LogEvent(s.Log, s.RequestID, "invoice_item", "create", zap.Int64("invoice_id", invoiceID), zap.Int64("id", item.ID))
	return item, nil
}

func (s InvoiceService) UpdateItem(ctx context.Context, orgID, invoiceID, itemID int64, in models.InvoiceItemUpdate) (models.InvoiceItem, error) {
	ch, err := invoiceItemUpdateChanges(in)
	if err != nil {
		return models.InvoiceItem{}, err
	}
	if err := s.requireItem(ctx, orgID, invoiceID, itemID); err != nil {
		return models.InvoiceItem{}, err
	}
	if in.ProductID.Present() {
		if err := s.checkReference(ctx, s.Products, productResource, orgID, in.ProductID.Value); err != nil {
			return models.InvoiceItem{}, err
		}
	}
	item, err := s.Items.Update(ctx, invoiceID, itemID, ch)
	if err != nil {
		return item, storeError(s.Log, itemResource, "update", itemID, err)
	}
	utils.LogEvent(s.Log, s.RequestID, "invoice_item", "update", zap.Int64("invoice_id", invoiceID), zap.Int64("id", itemID))
	return item, nil
}

func (s InvoiceService) DeleteItem(ctx context.Context, orgID, invoiceID, itemID int64) error {
	if err := s.requireItem(ctx, orgID, invoiceID, itemID); err != nil {
		return err
	}
	if err := s.Items.Delete(ctx, invoiceID, itemID); err != nil {
		return storeError(s.Log, itemResource, "delete", itemID, err)
	}
	utils.LogEvent(s.Log, s.RequestID, "invoice_item", "delete", zap.Int64("invoice_id", invoiceID), zap.Int64("id", itemID))
	return nil
}

func (s InvoiceService) requireInvoice(ctx context.Context, orgID, id int64) error {
	ok, err := s.Invoices.Exists(ctx, orgID, id)
	return mustExist(s.Log, invoiceResource, id, ok, err)
}

// requireItem checks the invoice first, then that the item belongs to it.
func (s InvoiceService) requireItem(ctx context.Context, orgID, invoiceID, itemID int64) error {
	if err := s.requireInvoice(ctx, orgID, invoiceID); err != nil {
		return err
	}
	ok, err := s.Items.Exists(ctx, invoiceID, itemID)
	return mustExist(s.Log, itemResource, itemID, ok, err)
}

// checkReference rejects ids that do not exist in the caller's organization.
// The store's foreign keys cannot see tenant boundaries.
func (s InvoiceService) checkReference(ctx context.Context, repo RecordChecker, resource string, orgID, id int64) error {
	if repo == nil {
		return nil
	}
	ok, err := repo.Exists(ctx, orgID, id)
	if err != nil {
		return storeError(s.Log, resource, "exists", id, err)
	}
	if !ok {
		return domain.ForeignKeyError{Resource: invoiceResource, Msg: resource + " does not exist"}
	}
	return nil
}
