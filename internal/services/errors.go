package services

import (
	"database/sql"
	"errors"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain"

	"go.uber.org/zap"
)

const genericFailure = "internal error"

// storeError turns a repository failure into the domain taxonomy. Anything
// that is not a recognised constraint or a missing row is logged and hidden.
func storeError(log *zap.Logger, resource, op string, id int64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.NotFoundError{Resource: resource, ID: id, Err: err}
	case intdb.IsDuplicate(err):
		return domain.ConflictError{Resource: resource, Msg: resource + " already exists", Err: err}
	case intdb.IsForeignKey(err):
		return domain.ForeignKeyError{Resource: resource, Msg: "referenced record does not exist", Err: err}
	}
	if log != nil {
		log.Error("store failure",
			zap.String("resource", resource),
			zap.String("op", op),
			zap.Int64("id", id),
			zap.Error(err),
		)
	}
	return domain.InternalError{Msg: genericFailure, Err: err}
}

func notFound(resource string, id int64) error {
	return domain.NotFoundError{Resource: resource, ID: id}
}

// mustExist runs the explicit existence check that precedes every mutation.
func mustExist(log *zap.Logger, resource string, id int64, ok bool, err error) error {
	if err != nil {
		return storeError(log, resource, "exists", id, err)
	}
	if !ok {
		return notFound(resource, id)
	}
	return nil
}
