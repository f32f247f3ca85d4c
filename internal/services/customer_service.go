package services

import (
	"context"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain/models"
	"opticrm/internal/query"
	"opticrm/internal/utils"

	"go.uber.org/zap"
)

// CustomerStore is the slice of the customer repository the service needs.
type CustomerStore interface {
	List(ctx context.Context, orgID int64, f models.CustomerFilter, p models.ListParams) (query.PageResult[models.Customer], error)
	Get(ctx context.Context, orgID, id int64) (models.Customer, error)
	Exists(ctx context.Context, orgID, id int64) (bool, error)
	Create(ctx context.Context, orgID int64, ch intdb.Changes) (models.Customer, error)
	Update(ctx context.Context, orgID, id int64, ch intdb.Changes) (models.Customer, error)
}

type CustomerService struct {
	Repo      CustomerStore
	Log       *zap.Logger
	RequestID string
}

const customerResource = "customer"

func (s CustomerService) List(ctx context.Context, orgID int64, f models.CustomerFilter, p models.ListParams) (query.PageResult[models.Customer], error) {
	res, err := s.Repo.List(ctx, orgID, f, p)
	if err != nil {
		return res, storeError(s.Log, customerResource, "list", 0, err)
	}
	return res, nil
}

func (s CustomerService) Get(ctx context.Context, orgID, id int64) (models.Customer, error) {
	c, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return c, storeError(s.Log, customerResource, "get", id, err)
	}
	return c, nil
}

func (s CustomerService) Create(ctx context.Context, orgID int64, in models.CustomerCreate) (models.Customer, error) {
	ch, err := customerCreateChanges(in)
	if err != nil {
		return models.Customer{}, err
	}
	c, err := s.Repo.Create(ctx, orgID, ch)
	if err != nil {
		return c, storeError(s.Log, customerResource, "create", 0, err)
	}
	utils.LogEvent(s.Log, s.RequestID, customerResource, "create", zap.Int64("id", c.ID))
	return c, nil
}

// Update applies only the fields present in the request.
func (s CustomerService) Update(ctx context.Context, orgID, id int64, in models.CustomerUpdate) (models.Customer, error) {
	ch, err := customerUpdateChanges(in)
	if err != nil {
		return models.Customer{}, err
	}
	return s.apply(ctx, orgID, id, "update", ch)
}

// Archive is the soft delete: the row stays, only status changes.
func (s CustomerService) Archive(ctx context.Context, orgID, id int64) (models.Customer, error) {
	var ch intdb.Changes
	ch.Set("status", string(models.CustomerArchived))
	return s.apply(ctx, orgID, id, "archive", ch)
}

func (s CustomerService) apply(ctx context.Context, orgID, id int64, op string, ch intdb.Changes) (models.Customer, error) {
	ok, err := s.Repo.Exists(ctx, orgID, id)
	if err := mustExist(s.Log, customerResource, id, ok, err); err != nil {
		return models.Customer{}, err
	}
	c, err := s.Repo.Update(ctx, orgID, id, ch)
	if err != nil {
		return c, storeError(s.Log, customerResource, op, id, err)
	}
	utils.LogEvent(s.Log, s.RequestID, customerResource, op, zap.Int64("id", id), zap.Strings("fields", ch.Columns()))
	return c, nil
}
