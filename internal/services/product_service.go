package services

import (
	"context"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
	"opticrm/internal/utils"

	"go.uber.org/zap"
)

type ProductStore interface {
	List(ctx context.Context, orgID int64, f models.ProductFilter, p models.ListParams) (query.PageResult[models.Product], error)
	Get(ctx context.Context, orgID, id int64) (models.Product, error)
	Exists(ctx context.Context, orgID, id int64) (bool, error)
	Create(ctx context.Context, orgID int64, ch intdb.Changes) (models.Product, error)
	Update(ctx context.Context, orgID, id int64, ch intdb.Changes) (models.Product, error)
}

type ProductService struct {
	Repo      ProductStore
	Log       *zap.Logger
	RequestID string
}

const productResource = "product"

func (s ProductService) List(ctx context.Context, orgID int64, f models.ProductFilter, p models.ListParams) (query.PageResult[models.Product], error) {
	res, err := s.Repo.List(ctx, orgID, f, p)
	if err != nil {
		return res, storeError(s.Log, productResource, "list", 0, err)
	}
	return res, nil
}

func (s ProductService) Get(ctx context.Context, orgID, id int64) (models.Product, error) {
	p, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return p, storeError(s.Log, productResource, "get", id, err)
	}
	return p, nil
}

func (s ProductService) Create(ctx context.Context, orgID int64, in models.ProductCreate) (models.Product, error) {
	ch, err := productCreateChanges(in)
	if err != nil {
		return models.Product{}, err
	}
	p, err := s.Repo.Create(ctx, orgID, ch)
	if err != nil {
		return p, storeError(s.Log, productResource, "create", 0, err)
	}
	utils.LogEvent(s.Log, s.RequestID, productResource, "create", zap.Int64("id", p.ID))
	return p, nil
}

func (s ProductService) Update(ctx context.Context, orgID, id int64, in models.ProductUpdate) (models.Product, error) {
	ch, err := productUpdateChanges(in)
	if err != nil {
		return models.Product{}, err
	}
	return s.apply(ctx, orgID, id, "update", ch)
}

// Deactivate is the soft delete for products.
func (s ProductService) Deactivate(ctx context.Context, orgID, id int64) (models.Product, error) {
	var ch intdb.Changes
	ch.Set("active", false)
	return s.apply(ctx, orgID, id, "deactivate", ch)
}

func (s ProductService) apply(ctx context.Context, orgID, id int64, op string, ch intdb.Changes) (models.Product, error) {
	ok, err := s.Repo.Exists(ctx, orgID, id)
	if err := mustExist(s.Log, productResource, id, ok, err); err != nil {
		return models.Product{}, err
	}
	p, err := s.Repo.Update(ctx, orgID, id, ch)
	if err != nil {
		return p, storeError(s.Log, productResource, op, id, err)
	}
	utils.LogEvent(s.Log, s.RequestID, productResource, op, zap.Int64("id", id), zap.Strings("fields", ch.Columns()))
	return p, nil
}
