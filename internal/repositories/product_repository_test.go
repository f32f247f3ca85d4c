package repositories

import (
	"context"
	"testing"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
	"opticrm/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreateKeepsDecimalValues(t *testing.T) {
	conn := testutil.NewStore(t)
	repo := ProductRepository{DB: conn}
	ctx := context.Background()

	var ch intdb.Changes
	ch.Set("product_type", "lens")
	ch.Set("sku", "GL-100")
	ch.Set("name", "Gleitsichtglas")
	ch.Set("current_price", "349.90")
	ch.Set("vat_rate", "0.07")
	ch.Set("lens_coating", `{"antireflex":true}`)

	p, err := repo.Create(ctx, 1, ch)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("349.90").Equal(p.CurrentPrice), p.CurrentPrice.String())
	assert.True(t, decimal.RequireFromString("0.07").Equal(p.VATRate), p.VATRate.String())
	assert.True(t, p.Active)
	assert.False(t, p.InsuranceEligible)
	assert.JSONEq(t, `{"antireflex":true}`, string(p.LensCoating))
	assert.Nil(t, p.Details)
}

func TestProductDuplicateSKU(t *testing.T) {
	conn := testutil.NewStore(t)
	testutil.SeedProduct(t, conn, 1, "AB123", "Classic", "99.00")
	repo := ProductRepository{DB: conn}

	var ch intdb.Changes
	ch.Set("product_type", "frame")
	ch.Set("sku", "AB123")
	ch.Set("name", "Copy")
	ch.Set("current_price", "10")

	_, err := repo.Create(context.Background(), 1, ch)
	require.Error(t, err)
	assert.True(t, intdb.IsDuplicate(err))
	assert.Equal(t, 1, testutil.Count(t, conn, "products", "sku = ?", "AB123"))
}

func TestProductListSortsPriceNumerically(t *testing.T) {
	conn := testutil.NewStore(t)
	testutil.SeedProduct(t, conn, 1, "A", "Cheap", "9.50")
	testutil.SeedProduct(t, conn, 1, "B", "Premium", "120.00")
	testutil.SeedProduct(t, conn, 1, "C", "Mid", "45.00")
	_, err := conn.Exec(`UPDATE products SET active = 0 WHERE sku = 'C'`)
	require.NoError(t, err)

	repo := ProductRepository{DB: conn}
	ctx := context.Background()

	res, err := repo.List(ctx, 1, models.ProductFilter{ActiveOnly: true}, models.ListParams{Page: 1, PerPage: 20, SortBy: "current_price", SortOrder: query.Desc})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Premium", res.Items[0].Name)
	assert.Equal(t, "Cheap", res.Items[1].Name)

	all, err := repo.List(ctx, 1, models.ProductFilter{}, models.ListParams{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
}
