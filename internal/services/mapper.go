package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	intdb "opticrm/internal/db"
	"opticrm/internal/domain"
	"opticrm/internal/domain/models"
	"opticrm/internal/utils"

	"github.com/shopspring/decimal"
)

var errNoFields = domain.ValidationError{Msg: "no fields to update"}

// patch collects column assignments for one statement and keeps the first
// mapping failure.
type patch struct {
	ch  intdb.Changes
	err error
}

func (p *patch) set(col string, v any) { p.ch.Set(col, v) }

func (p *patch) fail(col, msg string) {
	if p.err == nil {
		p.err = domain.ValidationError{Field: col, Msg: msg}
	}
}

func (p *patch) changes() (intdb.Changes, error) {
	return p.ch, p.err
}

func (p *patch) update() (intdb.Changes, error) {
	if p.err != nil {
		return intdb.Changes{}, p.err
	}
	if p.ch.Len() == 0 {
		return intdb.Changes{}, errNoFields
	}
	return p.ch, nil
}

func asIs[T any](v T) any { return v }

func enumValue[E ~string](v E) any { return string(v) }

func dateValue(d domain.Date) any { return d.String() }

func timeValue(t time.Time) any { return utils.FormatDateTime(t) }

// decimalScale is the fractional precision of a DECIMAL column: rates
// carry four places, amounts two.
func decimalScale(col string) int32 {
	if col == "vat_rate" {
		return 4
	}
	return 2
}

// setDecimal binds d as decimal text so neither store sees a float. Digits
// beyond the column's scale are rejected; the store would round them.
func setDecimal(p *patch, col string, d decimal.Decimal) {
	scale := decimalScale(col)
	if !d.Equal(d.Truncate(scale)) {
		p.fail(col, fmt.Sprintf("must have at most %d decimal places", scale))
		return
	}
	p.set(col, d.String())
}

func textValue(s string) any {
	s = utils.TrimOrEmpty(s)
	if s == "" {
		return nil
	}
	return s
}

func setPtr[T any](p *patch, col string, v *T, conv func(T) any) {
	if v != nil {
		p.set(col, conv(*v))
	}
}

func setText(p *patch, col string, v *string) {
	setPtr(p, col, v, textValue)
}

func setTextOr(p *patch, col string, v *string, def string) {
	if v == nil {
		p.set(col, def)
		return
	}
	setText(p, col, v)
}

func setName(p *patch, col, v string) {
	s := utils.NormalizeSpace(v)
	if s == "" {
		p.fail(col, "must not be blank")
		return
	}
	p.set(col, s)
}

func setMoney(p *patch, col string, v *decimal.Decimal) {
	if v == nil {
		p.fail(col, "is required")
		return
	}
	setDecimal(p, col, *v)
}

func setMoneyPtr(p *patch, col string, v *decimal.Decimal) {
	if v != nil {
		setDecimal(p, col, *v)
	}
}

func setMoneyOr(p *patch, col string, v *decimal.Decimal, def decimal.Decimal) {
	if v == nil {
		v = &def
	}
	setDecimal(p, col, *v)
}

func setBoolOr(p *patch, col string, v *bool, def bool) {
	if v != nil {
		def = *v
	}
	p.set(col, def)
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// objectValue accepts only a JSON object and stores it compacted.
func objectValue(p *patch, col string, raw json.RawMessage) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		p.fail(col, "must be a JSON object")
		return
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		p.fail(col, "must be a JSON object")
		return
	}
	p.set(col, buf.String())
}

func setObject(p *patch, col string, raw json.RawMessage) {
	if isJSONNull(raw) {
		return
	}
	objectValue(p, col, raw)
}

// patchField maps one partial-update field: absent is skipped, null clears a
// nullable column and is rejected for the others.
func patchField[T any](p *patch, col string, o domain.Optional[T], nullable bool, conv func(T) any) {
	switch {
	case !o.Set:
	case o.Null && !nullable:
		p.fail(col, "must not be null")
	case o.Null:
		p.set(col, nil)
	default:
		p.set(col, conv(o.Value))
	}
}

func patchText(p *patch, col string, o domain.Optional[string]) {
	patchField(p, col, o, true, textValue)
}

func patchName(p *patch, col string, o domain.Optional[string]) {
	switch {
	case !o.Set:
	case o.Null:
		p.fail(col, "must not be null")
	default:
		setName(p, col, o.Value)
	}
}

func patchMoney(p *patch, col string, o domain.Optional[decimal.Decimal], nullable bool) {
	switch {
	case !o.Set:
	case o.Null && !nullable:
		p.fail(col, "must not be null")
	case o.Null:
		p.set(col, nil)
	default:
		setDecimal(p, col, o.Value)
	}
}

func patchObject(p *patch, col string, o domain.Optional[json.RawMessage], nullable bool) {
	switch {
	case !o.Set:
	case o.Null && !nullable:
		p.fail(col, "must not be null")
	case o.Null:
		p.set(col, nil)
	default:
		objectValue(p, col, o.Value)
	}
}

func customerCreateChanges(in models.CustomerCreate) (intdb.Changes, error) {
	var p patch
	setName(&p, "first_name", in.FirstName)
	setName(&p, "last_name", in.LastName)
	setText(&p, "email", in.Email)
	setText(&p, "phone", in.Phone)
	setText(&p, "mobile", in.Mobile)
	setPtr(&p, "date_of_birth", in.DateOfBirth, dateValue)

	setText(&p, "address_street", in.AddressStreet)
	setText(&p, "address_city", in.AddressCity)
	setText(&p, "address_postal_code", in.AddressPostalCode)
	setTextOr(&p, "address_country", in.AddressCountry, models.DefaultCountry)

	setText(&p, "insurance_provider", in.InsuranceProvider)
	setPtr(&p, "insurance_type", in.InsuranceType, enumValue[models.InsuranceType])
	setText(&p, "insurance_number", in.InsuranceNumber)

	setPtr(&p, "last_exam_date", in.LastExamDate, dateValue)
	setPtr(&p, "next_appointment", in.NextAppointment, timeValue)
	setPtr(&p, "prescription_sphere_right", in.PrescriptionSphereRight, asIs[float64])
	setPtr(&p, "prescription_sphere_left", in.PrescriptionSphereLeft, asIs[float64])
	setPtr(&p, "prescription_cylinder_right", in.PrescriptionCylinderRight, asIs[float64])
	setPtr(&p, "prescription_cylinder_left", in.PrescriptionCylinderLeft, asIs[float64])
	setPtr(&p, "prescription_axis_right", in.PrescriptionAxisRight, asIs[int])
	setPtr(&p, "prescription_axis_left", in.PrescriptionAxisLeft, asIs[int])
	setPtr(&p, "prescription_addition", in.PrescriptionAddition, asIs[float64])
	setPtr(&p, "prescription_pd", in.PrescriptionPD, asIs[float64])

	setText(&p, "allergies", in.Allergies)
	setText(&p, "medical_notes", in.MedicalNotes)
	setText(&p, "frame_preferences", in.FramePreferences)
	setTextOr(&p, "contact_preference", in.ContactPreference, models.DefaultContactPreference)

	status := in.Status
	if status == "" {
		status = models.CustomerProspect
	}
	p.set("status", string(status))
	return p.changes()
}

func customerUpdateChanges(in models.CustomerUpdate) (intdb.Changes, error) {
	var p patch
	patchName(&p, "first_name", in.FirstName)
	patchName(&p, "last_name", in.LastName)
	patchText(&p, "email", in.Email)
	patchText(&p, "phone", in.Phone)
	patchText(&p, "mobile", in.Mobile)
	patchField(&p, "date_of_birth", in.DateOfBirth, true, dateValue)

	patchText(&p, "address_street", in.AddressStreet)
	patchText(&p, "address_city", in.AddressCity)
	patchText(&p, "address_postal_code", in.AddressPostalCode)
	patchText(&p, "address_country", in.AddressCountry)

	patchText(&p, "insurance_provider", in.InsuranceProvider)
	patchField(&p, "insurance_type", in.InsuranceType, true, enumValue[models.InsuranceType])
	patchText(&p, "insurance_number", in.InsuranceNumber)

	patchField(&p, "last_exam_date", in.LastExamDate, true, dateValue)
	patchField(&p, "next_appointment", in.NextAppointment, true, timeValue)
	patchField(&p, "prescription_sphere_right", in.PrescriptionSphereRight, true, asIs[float64])
	patchField(&p, "prescription_sphere_left", in.PrescriptionSphereLeft, true, asIs[float64])
	patchField(&p, "prescription_cylinder_right", in.PrescriptionCylinderRight, true, asIs[float64])
	patchField(&p, "prescription_cylinder_left", in.PrescriptionCylinderLeft, true, asIs[float64])
	patchField(&p, "prescription_axis_right", in.PrescriptionAxisRight, true, asIs[int])
	patchField(&p, "prescription_axis_left", in.PrescriptionAxisLeft, true, asIs[int])
	patchField(&p, "prescription_addition", in.PrescriptionAddition, true, asIs[float64])
	patchField(&p, "prescription_pd", in.PrescriptionPD, true, asIs[float64])

	patchText(&p, "allergies", in.Allergies)
	patchText(&p, "medical_notes", in.MedicalNotes)
	patchText(&p, "frame_preferences", in.FramePreferences)
	patchText(&p, "contact_preference", in.ContactPreference)

	patchField(&p, "status", in.Status, false, enumValue[models.CustomerStatus])
	return p.update()
}

func productCreateChanges(in models.ProductCreate) (intdb.Changes, error) {
	var p patch
	p.set("product_type", string(in.ProductType))
	setText(&p, "sku", in.SKU)
	setName(&p, "name", in.Name)
	setText(&p, "brand", in.Brand)
	setText(&p, "model", in.Model)
	setText(&p, "frame_size", in.FrameSize)
	setText(&p, "frame_color", in.FrameColor)
	setText(&p, "lens_material", in.LensMaterial)
	setObject(&p, "lens_coating", in.LensCoating)
	setObject(&p, "details", in.Details)
	setMoney(&p, "current_price", in.CurrentPrice)
	setMoneyOr(&p, "vat_rate", in.VATRate, models.DefaultVATRate)
	setBoolOr(&p, "insurance_eligible", in.InsuranceEligible, false)
	setBoolOr(&p, "active", in.Active, true)
	return p.changes()
}

func productUpdateChanges(in models.ProductUpdate) (intdb.Changes, error) {
	var p patch
	patchField(&p, "product_type", in.ProductType, false, enumValue[models.ProductType])
	patchText(&p, "sku", in.SKU)
	patchName(&p, "name", in.Name)
	patchText(&p, "brand", in.Brand)
	patchText(&p, "model", in.Model)
	patchText(&p, "frame_size", in.FrameSize)
	patchText(&p, "frame_color", in.FrameColor)
	patchText(&p, "lens_material", in.LensMaterial)
	patchObject(&p, "lens_coating", in.LensCoating, true)
	patchObject(&p, "details", in.Details, true)
	patchMoney(&p, "current_price", in.CurrentPrice, false)
	patchMoney(&p, "vat_rate", in.VATRate, false)
	patchField(&p, "insurance_eligible", in.InsuranceEligible, false, asIs[bool])
	patchField(&p, "active", in.Active, false, asIs[bool])
	return p.update()
}

// invoiceCreateChanges maps the invoice row and its items. The returned date
// is the effective invoice date, which also decides the number's year.
func invoiceCreateChanges(in models.InvoiceCreate) (intdb.Changes, []intdb.Changes, domain.Date, error) {
	var p patch
	p.set("customer_id", in.CustomerID)
	date := domain.Today()
	if in.InvoiceDate != nil {
		date = *in.InvoiceDate
	}
	p.set("invoice_date", dateValue(date))
	setPtr(&p, "due_date", in.DueDate, dateValue)
	setObject(&p, "prescription_snapshot", in.PrescriptionSnapshot)
	setText(&p, "insurance_provider", in.InsuranceProvider)
	setText(&p, "insurance_claim_number", in.InsuranceClaimNumber)
	setMoneyPtr(&p, "insurance_coverage_amount", in.InsuranceCoverageAmount)
	setMoneyPtr(&p, "patient_copay_amount", in.PatientCopayAmount)
	setMoney(&p, "subtotal", in.Subtotal)
	setMoney(&p, "vat_amount", in.VATAmount)
	setMoney(&p, "total", in.Total)

	status := in.Status
	if status == "" {
		status = models.InvoiceDraft
	}
	p.set("status", string(status))
	setText(&p, "payment_method", in.PaymentMethod)
	setText(&p, "notes", in.Notes)

	inv, err := p.changes()
	if err != nil {
		return intdb.Changes{}, nil, date, err
	}
	items := make([]intdb.Changes, 0, len(in.Items))
	for _, it := range in.Items {
		ch, err := invoiceItemCreateChanges(it)
		if err != nil {
			return intdb.Changes{}, nil, date, err
		}
		items = append(items, ch)
	}
	return inv, items, date, nil
}

func invoiceUpdateChanges(in models.InvoiceUpdate) (intdb.Changes, error) {
	var p patch
	patchField(&p, "customer_id", in.CustomerID, false, asIs[int64])
	patchField(&p, "invoice_date", in.InvoiceDate, false, dateValue)
	patchField(&p, "due_date", in.DueDate, true, dateValue)
	patchObject(&p, "prescription_snapshot", in.PrescriptionSnapshot, true)
	patchText(&p, "insurance_provider", in.InsuranceProvider)
	patchText(&p, "insurance_claim_number", in.InsuranceClaimNumber)
	patchMoney(&p, "insurance_coverage_amount", in.InsuranceCoverageAmount, true)
	patchMoney(&p, "patient_copay_amount", in.PatientCopayAmount, true)
	patchMoney(&p, "subtotal", in.Subtotal, false)
	patchMoney(&p, "vat_amount", in.VATAmount, false)
	patchMoney(&p, "total", in.Total, false)
	patchField(&p, "status", in.Status, false, enumValue[models.InvoiceStatus])
	patchText(&p, "payment_method", in.PaymentMethod)
	patchText(&p, "notes", in.Notes)
	return p.update()
}

func invoiceItemCreateChanges(in models.InvoiceItemCreate) (intdb.Changes, error) {
	var p patch
	setPtr(&p, "product_id", in.ProductID, asIs[int64])
	if isJSONNull(in.ProductSnapshot) {
		p.fail("product_snapshot", "is required")
	} else {
		objectValue(&p, "product_snapshot", in.ProductSnapshot)
	}
	setObject(&p, "prescription_values", in.PrescriptionValues)

	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	p.set("quantity", quantity)
	setMoney(&p, "unit_price", in.UnitPrice)
	setMoneyOr(&p, "discount_amount", in.DiscountAmount, decimal.Zero)
	setMoney(&p, "vat_rate", in.VATRate)
	setMoney(&p, "line_total", in.LineTotal)
	setBoolOr(&p, "insurance_covered", in.InsuranceCovered, false)
	return p.changes()
}

func invoiceItemUpdateChanges(in models.InvoiceItemUpdate) (intdb.Changes, error) {
	var p patch
	patchField(&p, "product_id", in.ProductID, true, asIs[int64])
	patchObject(&p, "product_snapshot", in.ProductSnapshot, false)
	patchObject(&p, "prescription_values", in.PrescriptionValues, true)
	patchField(&p, "quantity", in.Quantity, false, asIs[int])
	patchMoney(&p, "unit_price", in.UnitPrice, false)
	patchMoney(&p, "discount_amount", in.DiscountAmount, false)
	patchMoney(&p, "vat_rate", in.VATRate, false)
	patchMoney(&p, "line_total", in.LineTotal, false)
	patchField(&p, "insurance_covered", in.InsuranceCovered, false, asIs[bool])
	return p.update()
}
