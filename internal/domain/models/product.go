package models

import (
	"encoding/json"
	"time"

	"opticrm/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductType string

const (
	ProductFrame       ProductType = "frame"
	ProductLens        ProductType = "lens"
	ProductContactLens ProductType = "contact_lens"
	ProductAccessory   ProductType = "accessory"
)

// DefaultVATRate is the German standard rate.
var DefaultVATRate = decimal.RequireFromString("0.19")

type Product struct {
	ID                int64           `json:"id"`
	OrganizationID    int64           `json:"organization_id"`
	ProductType       ProductType     `json:"product_type"`
	SKU               *string         `json:"sku"`
	Name              string          `json:"name"`
	Brand             *string         `json:"brand"`
	Model             *string         `json:"model"`
	FrameSize         *string         `json:"frame_size"`
	FrameColor        *string         `json:"frame_color"`
	LensMaterial      *string         `json:"lens_material"`
	LensCoating       json.RawMessage `json:"lens_coating"`
	Details           json.RawMessage `json:"details"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	VATRate           decimal.Decimal `json:"vat_rate"`
	InsuranceEligible bool            `json:"insurance_eligible"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type ProductCreate struct {
	ProductType       ProductType      `json:"product_type" binding:"required,oneof=frame lens contact_lens accessory"`
	SKU               *string          `json:"sku" binding:"omitempty,max=50"`
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Brand             *string          `json:"brand" binding:"omitempty,max=100"`
	Model             *string          `json:"model" binding:"omitempty,max=100"`
	FrameSize         *string          `json:"frame_size" binding:"omitempty,max=20"`
	FrameColor        *string          `json:"frame_color" binding:"omitempty,max=50"`
	LensMaterial      *string          `json:"lens_material" binding:"omitempty,max=100"`
	LensCoating       json.RawMessage  `json:"lens_coating"`
	Details           json.RawMessage  `json:"details"`
	CurrentPrice      *decimal.Decimal `json:"current_price" binding:"required,gte=0"`
	VATRate           *decimal.Decimal `json:"vat_rate" binding:"omitempty,gte=0,lte=1"`
	InsuranceEligible *bool            `json:"insurance_eligible"`
	Active            *bool            `json:"active"`
}

type ProductUpdate struct {
	ProductType       domain.Optional[ProductType]     `json:"product_type" binding:"omitempty,oneof=frame lens contact_lens accessory"`
	SKU               domain.Optional[string]          `json:"sku" binding:"omitempty,max=50"`
	Name              domain.Optional[string]          `json:"name" binding:"omitempty,min=1,max=200"`
	Brand             domain.Optional[string]          `json:"brand" binding:"omitempty,max=100"`
	Model             domain.Optional[string]          `json:"model" binding:"omitempty,max=100"`
	FrameSize         domain.Optional[string]          `json:"frame_size" binding:"omitempty,max=20"`
	FrameColor        domain.Optional[string]          `json:"frame_color" binding:"omitempty,max=50"`
	LensMaterial      domain.Optional[string]          `json:"lens_material" binding:"omitempty,max=100"`
	LensCoating       domain.Optional[json.RawMessage] `json:"lens_coating"`
	Details           domain.Optional[json.RawMessage] `json:"details"`
	CurrentPrice      domain.Optional[decimal.Decimal] `json:"current_price" binding:"omitempty,gte=0"`
	VATRate           domain.Optional[decimal.Decimal] `json:"vat_rate" binding:"omitempty,gte=0,lte=1"`
	InsuranceEligible domain.Optional[bool]            `json:"insurance_eligible"`
	Active            domain.Optional[bool]            `json:"active"`
}

type ProductFilter struct {
	Search      string
	ProductType ProductType
	ActiveOnly  bool
}
