package handlers

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
	"time"

	"opticrm/internal/domain"
	"opticrm/internal/domain/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator about Optional fields and
// decimals. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		// An Optional validates as a pointer to its value, so a present zero
		// still goes through the rules and an absent field is skipped.
		v.RegisterCustomTypeFunc(optionalValue[string], domain.Optional[string]{})
		v.RegisterCustomTypeFunc(optionalValue[int], domain.Optional[int]{})
		v.RegisterCustomTypeFunc(optionalValue[int64], domain.Optional[int64]{})
		v.RegisterCustomTypeFunc(optionalValue[float64], domain.Optional[float64]{})
		v.RegisterCustomTypeFunc(optionalValue[bool], domain.Optional[bool]{})
		v.RegisterCustomTypeFunc(optionalValue[time.Time], domain.Optional[time.Time]{})
		v.RegisterCustomTypeFunc(optionalValue[domain.Date], domain.Optional[domain.Date]{})
		v.RegisterCustomTypeFunc(optionalValue[json.RawMessage], domain.Optional[json.RawMessage]{})
		v.RegisterCustomTypeFunc(optionalValue[models.CustomerStatus], domain.Optional[models.CustomerStatus]{})
		v.RegisterCustomTypeFunc(optionalValue[models.InsuranceType], domain.Optional[models.InsuranceType]{})
		v.RegisterCustomTypeFunc(optionalValue[models.ProductType], domain.Optional[models.ProductType]{})
		v.RegisterCustomTypeFunc(optionalValue[models.InvoiceStatus], domain.Optional[models.InvoiceStatus]{})
		v.RegisterCustomTypeFunc(optionalDecimal, domain.Optional[decimal.Decimal]{})
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func optionalValue[T any](field reflect.Value) any {
	o, ok := field.Interface().(domain.Optional[T])
	if !ok || !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return d.InexactFloat64()
}

func optionalDecimal(field reflect.Value) any {
	o, ok := field.Interface().(domain.Optional[decimal.Decimal])
	if !ok || !o.Present() {
		return nil
	}
	f := o.Value.InexactFloat64()
	return &f
}
