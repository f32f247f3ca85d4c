package repositories

import (
	"context"
	"database/sql"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
)

const productColumns = `id, organization_id, product_type, sku, name, brand, model,
	frame_size, frame_color, lens_material, lens_coating, details,
	current_price, vat_rate, insurance_eligible, active, created_at, updated_at`

var ProductSorts = query.NewSortFields("created_at",
	"created_at", "name", "brand", "current_price", "product_type")

var productSearchFields = []string{"name", "brand", "model", "sku"}

type ProductRepository struct {
	DB *sql.DB
}

func ProductListSpec(orgID int64, f models.ProductFilter, p models.ListParams) query.Spec {
	b := query.NewBuilder().
		Eq("organization_id", orgID).
		Search(f.Search, productSearchFields...).
		Eq("product_type", f.ProductType)
	if f.ActiveOnly {
		b.Eq("active", true)
	}
	return listSpec(b.Build(), ProductSorts, p.SortBy, p.SortOrder, p.Page, p.PerPage)
}

func (r ProductRepository) List(ctx context.Context, orgID int64, f models.ProductFilter, p models.ListParams) (query.PageResult[models.Product], error) {
	src := listSource[models.Product]{
		from:    "products",
		columns: productColumns,
		scan:    scanProduct,
	}
	return runList(ctx, r.DB, src, ProductListSpec(orgID, f, p))
}

func (r ProductRepository) Get(ctx context.Context, orgID, id int64) (models.Product, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ? AND organization_id = ?", id, orgID)
	return scanProduct(row)
}

func (r ProductRepository) Exists(ctx context.Context, orgID, id int64) (bool, error) {
	return rowExists(ctx, r.DB, "SELECT 1 FROM products WHERE id = ? AND organization_id = ? LIMIT 1", id, orgID)
}

func (r ProductRepository) Create(ctx context.Context, orgID int64, ch intdb.Changes) (models.Product, error) {
	ch.Set("organization_id", orgID)
	id, err := insertRow(ctx, r.DB, "products", ch)
	if err != nil {
		return models.Product{}, err
	}
	return r.Get(ctx, orgID, id)
}

func (r ProductRepository) Update(ctx context.Context, orgID, id int64, ch intdb.Changes) (models.Product, error) {
	if err := updateRow(ctx, r.DB, "products", ch, true, "id = ? AND organization_id = ?", id, orgID); err != nil {
		return models.Product{}, err
	}
	return r.Get(ctx, orgID, id)
}

func scanProduct(rs intdb.RowScanner) (models.Product, error) {
	var (
		p                                   models.Product
		sku, brand, model                   sql.NullString
		frameSize, frameColor, lensMaterial sql.NullString
		lensCoating, details                []byte
		productType                         string
	)
	err := rs.Scan(
		&p.ID, &p.OrganizationID, &productType, &sku, &p.Name, &brand, &model,
		&frameSize, &frameColor, &lensMaterial, &lensCoating, &details,
		&p.CurrentPrice, &p.VATRate, &p.InsuranceEligible, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}
	p.ProductType = models.ProductType(productType)
	p.SKU = intdb.StringPtr(sku)
	p.Brand = intdb.StringPtr(brand)
	p.Model = intdb.StringPtr(model)
	p.FrameSize = intdb.StringPtr(frameSize)
	p.FrameColor = intdb.StringPtr(frameColor)
	p.LensMaterial = intdb.StringPtr(lensMaterial)
	p.LensCoating = intdb.JSON(lensCoating)
	p.Details = intdb.JSON(details)
	return p, nil
}
