package handlers

import (
	"net/http"

	"opticrm/internal/domain/models"

	"github.com/gin-gonic/gin"
)

type productQuery struct {
	listQuery
	ProductType string `form:"product_type" binding:"omitempty,oneof=frame lens contact_lens accessory"`
	ActiveOnly  *bool  `form:"active_only"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	var q productQuery
	orgID, p, ok := h.bindList(c, &q, &q.listQuery)
	if !ok {
		return
	}
	f := models.ProductFilter{
		Search:      q.Search,
		ProductType: models.ProductType(q.ProductType),
		ActiveOnly:  q.ActiveOnly == nil || *q.ActiveOnly,
	}
	res, err := h.productService(c).List(c.Request.Context(), orgID, f, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetProduct(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	out, err := h.productService(c).Get(c.Request.Context(), orgID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	orgID, ok := h.orgID(c)
	if !ok {
		return
	}
	var in models.ProductCreate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.productService(c).Create(c.Request.Context(), orgID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	var in models.ProductUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	out, err := h.productService(c).Update(c.Request.Context(), orgID, id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeleteProduct deactivates the product.
func (h *Handler) DeleteProduct(c *gin.Context) {
	orgID, id, ok := h.target(c)
	if !ok {
		return
	}
	if _, err := h.productService(c).Deactivate(c.Request.Context(), orgID, id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
