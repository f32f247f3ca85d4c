package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"sync"

	intconfig "opticrm/internal/config"
	"opticrm/internal/domain"
	"opticrm/internal/domain/models"
	"opticrm/internal/http/middleware"
	"opticrm/internal/query"
	"opticrm/internal/repositories"
	"opticrm/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries what every endpoint needs. Services are built per request
// so logs carry the request id.
type Handler struct {
	DB  *sql.DB
	Log *zap.Logger
	Env intconfig.Env

	mu     sync.RWMutex
	engine *gin.Engine
}

func New(conn *sql.DB, log *zap.Logger, env intconfig.Env) *Handler {
	return &Handler{DB: conn, Log: log, Env: env}
}

// SetRouter stores the active gin engine for the routes listing.
func (h *Handler) SetRouter(r *gin.Engine) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine = r
}

func (h *Handler) customerService(c *gin.Context) services.CustomerService {
	return services.CustomerService{
		Repo:      repositories.CustomerRepository{DB: h.DB},
		Log:       h.Log,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) productService(c *gin.Context) services.ProductService {
	return services.ProductService{
		Repo:      repositories.ProductRepository{DB: h.DB},
		Log:       h.Log,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) invoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{
		Invoices:  repositories.InvoiceRepository{DB: h.DB},
		Items:     repositories.InvoiceItemRepository{DB: h.DB},
		Customers: repositories.CustomerRepository{DB: h.DB},
		Products:  repositories.ProductRepository{DB: h.DB},
		Log:       h.Log,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Invoices:  repositories.InvoiceRepository{DB: h.DB},
		Log:       h.Log,
		RequestID: middleware.GetRequestID(c),
	}
}

// listQuery is the paging, ordering and tenant part shared by all lists.
type listQuery struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	PerPage   int    `form:"per_page,default=20" binding:"min=1,max=100"`
	Search    string `form:"search" binding:"max=200"`
	SortBy    string `form:"sort_by" binding:"max=50"`
	SortOrder string `form:"sort_order"`
	OrgID     int64  `form:"organization_id" binding:"omitempty,min=1"`
}

func (q listQuery) params() (models.ListParams, error) {
	dir, err := query.ParseDirection(q.SortOrder)
	if err != nil {
		return models.ListParams{}, domain.ValidationError{Field: "sort_order", Msg: "must be asc or desc"}
	}
	return models.ListParams{Page: q.Page, PerPage: q.PerPage, SortBy: q.SortBy, SortOrder: dir}, nil
}

// bindList binds the query string into dst and extracts the shared part.
func (h *Handler) bindList(c *gin.Context, dst any, lq *listQuery) (int64, models.ListParams, bool) {
	if err := c.ShouldBindQuery(dst); err != nil {
		respondBindError(c, err)
		return 0, models.ListParams{}, false
	}
	p, err := lq.params()
	if err != nil {
		RespondDomainError(c, err)
		return 0, models.ListParams{}, false
	}
	orgID := lq.OrgID
	if orgID == 0 {
		orgID = h.Env.DefaultOrgID
	}
	return orgID, p, true
}

type orgQuery struct {
	OrgID int64 `form:"organization_id" binding:"omitempty,min=1"`
}

// orgID resolves the tenant of a single-record request.
func (h *Handler) orgID(c *gin.Context) (int64, bool) {
	var q orgQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return 0, false
	}
	if q.OrgID == 0 {
		return h.Env.DefaultOrgID, true
	}
	return q.OrgID, true
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", name+" must be a positive integer",
			[]FieldError{{Field: name, Rule: "min", Param: "1"}})
		return 0, false
	}
	return id, true
}

// target resolves tenant and record id of a single-record request.
func (h *Handler) target(c *gin.Context) (int64, int64, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return 0, 0, false
	}
	orgID, ok := h.orgID(c)
	return orgID, id, ok
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}
