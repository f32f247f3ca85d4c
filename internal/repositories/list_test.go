package repositories

import (
	"context"
	"database/sql/driver"
	"errors"
	"math"
	"regexp"
	"testing"

	"opticrm/internal/domain"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCustomerListCountAndPageShareFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	where := regexp.QuoteMeta(" WHERE organization_id = ? AND (LOWER(first_name) LIKE ? ESCAPE '!' OR LOWER(last_name) LIKE ? ESCAPE '!' OR LOWER(email) LIKE ? ESCAPE '!') AND status = ?")
	args := []driver.Value{int64(1), "%anna%", "%anna%", "%anna%", "aktiv"}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers` + where + `$`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(`SELECT id, organization_id, .* FROM customers` + where + regexp.QuoteMeta(" ORDER BY last_name ASC, id ASC LIMIT ? OFFSET ?") + `$`).
		WithArgs(append(args, 10, 10)...).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := CustomerRepository{DB: db}
	res, err := repo.List(context.Background(), 1,
		models.CustomerFilter{Search: " Anna ", Status: models.CustomerActive},
		models.ListParams{Page: 2, PerPage: 10, SortBy: "last_name", SortOrder: query.Asc})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if res.Total != 25 || res.TotalPages != 3 || !res.HasNext || !res.HasPrev || len(res.Items) != 0 {
		t.Fatalf("unexpected page result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInvoiceListCountAndPageShareFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	from := regexp.QuoteMeta("invoices i LEFT JOIN customers c ON c.id = i.customer_id")
	where := regexp.QuoteMeta(" WHERE i.organization_id = ? AND (LOWER(i.invoice_number) LIKE ? ESCAPE '!' OR LOWER(c.first_name) LIKE ? ESCAPE '!' OR LOWER(c.last_name) LIKE ? ESCAPE '!') AND i.status = ? AND i.customer_id = ? AND i.invoice_date >= ? AND i.invoice_date <= ?")
	args := []driver.Value{int64(3), "%re-2024%", "%re-2024%", "%re-2024%", "sent", int64(42), "2024-01-01", "2024-12-31"}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM ` + from + where + `$`).
		WithArgs(args...).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT i.id, .* FROM ` + from + where + regexp.QuoteMeta(" ORDER BY i.created_at DESC, i.id DESC LIMIT ? OFFSET ?") + `$`).
		WithArgs(append(args, 20, 0)...).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	customerID := int64(42)
	from1 := domain.NewDate(2024, 1, 1)
	to := domain.NewDate(2024, 12, 31)
	repo := InvoiceRepository{DB: db}
	res, err := repo.List(context.Background(), 3, models.InvoiceFilter{
		Search:     "RE-2024",
		Status:     models.InvoiceSent,
		CustomerID: &customerID,
		DateFrom:   &from1,
		DateTo:     &to,
	}, models.ListParams{Page: 1, PerPage: 20, SortBy: "amount; DROP TABLE invoices"})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if res.Total != 3 || res.TotalPages != 1 || res.HasNext || res.HasPrev {
		t.Fatalf("unexpected page result: %+v", res)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListSkipsRowQueryPastLastPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for _, page := range []int{3, math.MaxInt} {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM customers`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(45))

		res, err := CustomerRepository{DB: db}.List(context.Background(), 1, models.CustomerFilter{},
			models.ListParams{Page: page, PerPage: 100})
		if err != nil {
			t.Fatalf("page %d: list returned error: %v", page, err)
		}
		if len(res.Items) != 0 || res.Total != 45 || res.HasNext || !res.HasPrev {
			t.Fatalf("page %d: unexpected page result: %+v", page, res)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProductListActiveOnly(t *testing.T) {
	spec := ProductListSpec(1, models.ProductFilter{ActiveOnly: true, ProductType: models.ProductLens}, models.ListParams{Page: 1, PerPage: 20})
	where, args := spec.Filters.Where()
	if where != " WHERE organization_id = ? AND product_type = ? AND active = ?" {
		t.Fatalf("unexpected where: %s", where)
	}
	if len(args) != 3 || args[2] != true {
		t.Fatalf("unexpected args: %v", args)
	}

	spec = ProductListSpec(1, models.ProductFilter{}, models.ListParams{Page: 1, PerPage: 20, SortBy: "current_price", SortOrder: query.Asc})
	where, _ = spec.Filters.Where()
	if where != " WHERE organization_id = ?" {
		t.Fatalf("inactive products must not be filtered, got %s", where)
	}
	if spec.Sort.Field != "current_price" || spec.Sort.Direction != query.Asc {
		t.Fatalf("unexpected sort: %+v", spec.Sort)
	}
}

func TestListSpecClampsAndDefaults(t *testing.T) {
	spec := CustomerListSpec(1, models.CustomerFilter{}, models.ListParams{Page: 0, PerPage: 1000, SortBy: "email"})
	if spec.Page.Number != 1 || spec.Page.PerPage != query.MaxPerPage {
		t.Fatalf("page not clamped: %+v", spec.Page)
	}
	if spec.Sort.Field != "created_at" || spec.Sort.Direction != query.Desc {
		t.Fatalf("sort not defaulted: %+v", spec.Sort)
	}
}

func TestListSurfacesCountError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products`).WillReturnError(boom)

	_, err = ProductRepository{DB: db}.List(context.Background(), 1, models.ProductFilter{}, models.ListParams{Page: 1, PerPage: 20})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
