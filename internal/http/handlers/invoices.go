package handlers

import (
	"net/http"

	"opticrm/internal/domain"
	"opticrm/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type invoiceQuery struct {
	listQuery
	Status     string `form:"status" binding:"omitempty,oneof=draft sent paid partially_paid insurance_pending cancelled"`
	CustomerID *int64 `form:"customer_id" binding:"omitempty,min=1"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

func (q invoiceQuery) filter() (models.InvoiceFilter, error) {
	f := models.InvoiceFilter{
		Search:     q.Search,
		Status:     models.InvoiceStatus(q.Status),
		CustomerID: q.CustomerID,
	}
	for _, d := range []struct {
		field string
		raw   string
		dst   **domain.Date
	}{
		{"date_from", q.DateFrom, &f.DateFrom},
		{"date_to", q.DateTo, &f.DateTo},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := domain.ParseDate(d.raw)
		if err != nil {
			return f, domain.ValidationError{Field: d.field, Msg: "must be YYYY-MM-DD"}
		}
		*d.dst = &parsed
	}
	return f, nil
}

func (h *Handler) ListInvoices(c *gin.Context) {
	var q invoiceQuery
	orgID, p, ok := h.bindList(c, &q, &q.listQuery)
	if !ok {
		return
	}
	f, err := q.filter()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := h.invoiceService(c).List(c.Request.Context(), orgID, f, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.invoiceService(c).Get(c.Request.Context(), orgID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateInvoice(c *gin.Context) {
	orgID, ok := h.orgID(c)
	if !ok {
		return
	}
	var in models.InvoiceCreate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.invoiceService(c).Create(c.Request.Context(), orgID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateInvoice(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	var in models.InvoiceUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.invoiceService(c).Update(c.Request.Context(), orgID, id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.invoiceService(c).Delete(c.Request.Context(), orgID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetInvoicePDF renders the invoice inline.
func (h *Handler) GetInvoicePDF(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	pdf, filename, err := h.docsService(c).GenerateInvoice(c.Request.Context(), orgID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) CreateInvoiceItem(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	var in models.InvoiceItemCreate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.invoiceService(c).AddItem(c.Request.Context(), orgID, id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateInvoiceItem(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	var in models.InvoiceItemUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.invoiceService(c).UpdateItem(c.Request.Context(), orgID, id, itemID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteInvoiceItem(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	if err := h.invoiceService(c).DeleteItem(c.Request.Context(), orgID, id, itemID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
