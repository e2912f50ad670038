package validation

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New returns a validator that treats decimal.Decimal fields as floats so
// numeric tags (gte, gt) apply to prices.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})
	return validate
}

func decimalAsFloat(field reflect.Value) interface{} {
	value, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := value.Float64()
	return f
}
