package models

import (
	"encoding/json"
	"time"

	"opticrm/internal/domain"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceDraft            InvoiceStatus = "draft"
	InvoiceSent             InvoiceStatus = "sent"
	InvoicePaid             InvoiceStatus = "paid"
	InvoicePartiallyPaid    InvoiceStatus = "partially_paid"
	InvoiceInsurancePending InvoiceStatus = "insurance_pending"
	InvoiceCancelled        InvoiceStatus = "cancelled"
)

// InvoiceCustomer is the customer summary joined into invoice reads.
type InvoiceCustomer struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

type Invoice struct {
	ID                      int64            `json:"id"`
	OrganizationID          int64            `json:"organization_id"`
	CustomerID              int64            `json:"customer_id"`
	InvoiceNumber           string           `json:"invoice_number"`
	InvoiceDate             domain.Date      `json:"invoice_date"`
	DueDate                 *domain.Date     `json:"due_date"`
	PrescriptionSnapshot    json.RawMessage  `json:"prescription_snapshot"`
	InsuranceProvider       *string          `json:"insurance_provider"`
	InsuranceClaimNumber    *string          `json:"insurance_claim_number"`
	InsuranceCoverageAmount *decimal.Decimal `json:"insurance_coverage_amount"`
	PatientCopayAmount      *decimal.Decimal `json:"patient_copay_amount"`
	Subtotal                decimal.Decimal  `json:"subtotal"`
	VATAmount               decimal.Decimal  `json:"vat_amount"`
	Total                   decimal.Decimal  `json:"total"`
	Status                  InvoiceStatus    `json:"status"`
	PaymentMethod           *string          `json:"payment_method"`
	Notes                   *string          `json:"notes"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
	Customer                *InvoiceCustomer `json:"customer,omitempty"`
}

// InvoiceWithItems is the single-invoice read model.
type InvoiceWithItems struct {
	Invoice
	Items []InvoiceItem `json:"items"`
}

type InvoiceCreate struct {
	CustomerID              int64               `json:"customer_id" binding:"required,min=1"`
	InvoiceDate             *domain.Date        `json:"invoice_date"`
	DueDate                 *domain.Date        `json:"due_date"`
	PrescriptionSnapshot    json.RawMessage     `json:"prescription_snapshot"`
	InsuranceProvider       *string             `json:"insurance_provider" binding:"omitempty,max=100"`
	InsuranceClaimNumber    *string             `json:"insurance_claim_number" binding:"omitempty,max=50"`
	InsuranceCoverageAmount *decimal.Decimal    `json:"insurance_coverage_amount" binding:"omitempty,gte=0"`
	PatientCopayAmount      *decimal.Decimal    `json:"patient_copay_amount" binding:"omitempty,gte=0"`
	Subtotal                *decimal.Decimal    `json:"subtotal" binding:"required,gte=0"`
	VATAmount               *decimal.Decimal    `json:"vat_amount" binding:"required,gte=0"`
	Total                   *decimal.Decimal    `json:"total" binding:"required,gte=0"`
	Status                  InvoiceStatus       `json:"status" binding:"omitempty,oneof=draft sent paid partially_paid insurance_pending cancelled"`
	PaymentMethod           *string             `json:"payment_method" binding:"omitempty,max=50"`
	Notes                   *string             `json:"notes" binding:"omitempty,max=1000"`
	Items                   []InvoiceItemCreate `json:"items" binding:"omitempty,dive"`
}

type InvoiceUpdate struct {
	CustomerID              domain.Optional[int64]           `json:"customer_id" binding:"omitempty,min=1"`
	InvoiceDate             domain.Optional[domain.Date]     `json:"invoice_date"`
	DueDate                 domain.Optional[domain.Date]     `json:"due_date"`
	PrescriptionSnapshot    domain.Optional[json.RawMessage] `json:"prescription_snapshot"`
	InsuranceProvider       domain.Optional[string]          `json:"insurance_provider" binding:"omitempty,max=100"`
	InsuranceClaimNumber    domain.Optional[string]          `json:"insurance_claim_number" binding:"omitempty,max=50"`
	InsuranceCoverageAmount domain.Optional[decimal.Decimal] `json:"insurance_coverage_amount" binding:"omitempty,gte=0"`
	PatientCopayAmount      domain.Optional[decimal.Decimal] `json:"patient_copay_amount" binding:"omitempty,gte=0"`
	Subtotal                domain.Optional[decimal.Decimal] `json:"subtotal" binding:"omitempty,gte=0"`
	VATAmount               domain.Optional[decimal.Decimal] `json:"vat_amount" binding:"omitempty,gte=0"`
	Total                   domain.Optional[decimal.Decimal] `json:"total" binding:"omitempty,gte=0"`
	Status                  domain.Optional[InvoiceStatus]   `json:"status" binding:"omitempty,oneof=draft sent paid partially_paid insurance_pending cancelled"`
	PaymentMethod           domain.Optional[string]          `json:"payment_method" binding:"omitempty,max=50"`
	Notes                   domain.Optional[string]          `json:"notes" binding:"omitempty,max=1000"`
}

type InvoiceFilter struct {
	Search     string
	Status     InvoiceStatus
	CustomerID *int64
	DateFrom   *domain.Date
	DateTo     *domain.Date
}

type InvoiceItem struct {
	ID                 int64           `json:"id"`
	InvoiceID          int64           `json:"invoice_id"`
	ProductID          *int64          `json:"product_id"`
	ProductSnapshot    json.RawMessage `json:"product_snapshot"`
	PrescriptionValues json.RawMessage `json:"prescription_values"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	VATRate            decimal.Decimal `json:"vat_rate"`
	LineTotal          decimal.Decimal `json:"line_total"`
	InsuranceCovered   bool            `json:"insurance_covered"`
	CreatedAt          time.Time       `json:"created_at"`
}

type InvoiceItemCreate struct {
	ProductID          *int64           `json:"product_id" binding:"omitempty,min=1"`
	ProductSnapshot    json.RawMessage  `json:"product_snapshot" binding:"required"`
	PrescriptionValues json.RawMessage  `json:"prescription_values"`
	Quantity           *int             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice          *decimal.Decimal `json:"unit_price" binding:"required,gte=0"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount" binding:"omitempty,gte=0"`
	VATRate            *decimal.Decimal `json:"vat_rate" binding:"required,gte=0,lte=1"`
	LineTotal          *decimal.Decimal `json:"line_total" binding:"required,gte=0"`
	InsuranceCovered   *bool            `json:"insurance_covered"`
}

type InvoiceItemUpdate struct {
	ProductID          domain.Optional[int64]           `json:"product_id" binding:"omitempty,min=1"`
	ProductSnapshot    domain.Optional[json.RawMessage] `json:"product_snapshot"`
	PrescriptionValues domain.Optional[json.RawMessage] `json:"prescription_values"`
	Quantity           domain.Optional[int]             `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice          domain.Optional[decimal.Decimal] `json:"unit_price" binding:"omitempty,gte=0"`
	DiscountAmount     domain.Optional[decimal.Decimal] `json:"discount_amount" binding:"omitempty,gte=0"`
	VATRate            domain.Optional[decimal.Decimal] `json:"vat_rate" binding:"omitempty,gte=0,lte=1"`
	LineTotal          domain.Optional[decimal.Decimal] `json:"line_total" binding:"omitempty,gte=0"`
	InsuranceCovered   domain.Optional[bool]            `json:"insurance_covered"`
}
