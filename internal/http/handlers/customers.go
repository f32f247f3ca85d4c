package handlers

import (
	"net/http"

	"opticrm/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type customerQuery struct {
	listQuery
	Status        string `form:"status" binding:"omitempty,oneof=aktiv inaktiv interessent archiviert"`
	InsuranceType string `form:"insurance_type" binding:"omitempty,oneof=gesetzlich privat selbstzahler"`
}

func (h *Handler) ListCustomers(c *gin.Context) {
	var q customerQuery
	orgID, p, ok := h.bindList(c, &q, &q.listQuery)
	if !ok {
		return
	}
	f := models.CustomerFilter{
		Search:        q.Search,
		Status:        models.CustomerStatus(q.Status),
		InsuranceType: models.InsuranceType(q.InsuranceType),
	}
	res, err := h.customerService(c).List(c.Request.Context(), orgID, f, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.customerService(c).Get(c.Request.Context(), orgID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	orgID, ok := h.orgID(c)
	if !ok {
		return
	}
	var in models.CustomerCreate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.customerService(c).Create(c.Request.Context(), orgID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	var in models.CustomerUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.customerService(c).Update(c.Request.Context(), orgID, id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteCustomer archives; the record stays readable.
func (h *Handler) DeleteCustomer(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	if _, err := h.customerService(c).Archive(c.Request.Context(), orgID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
