package products

import (
	"fmt"
	"strings"

	"github.com/mytheresa/product-form/models"
	"github.com/shopspring/decimal"
)

// FormInput holds the raw values of the three form fields.
type FormInput struct {
	Name        string
	Price       string
	Description string
}

// ValidationError reports which field rejected a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

const (
	FieldName  = "name"
	FieldPrice = "price"
)

const (
	msgNameRequired  = "El nombre es obligatorio."
	msgPriceRequired = "El precio es obligatorio."
	msgPriceInvalid  = "El precio debe ser un número válido."
	msgPriceNotAbove = "El precio debe ser mayor que cero."
	msgPriceRange    = "El precio está fuera de rango."
)

// Prices must fit a float64: at most 309 integer digits and no digit below
// the smallest subnormal. Anything wider makes rescaling unbounded.
const (
	maxPriceMagnitude = 309
	minPriceExponent  = -324
)

// ValidationPolicy selects how strict price checks are.
// The zero value only requires a number; RequirePositivePrice also rejects <= 0.
type ValidationPolicy struct {
	RequirePositivePrice bool
}

// StrictPolicy is the default policy.
var StrictPolicy = ValidationPolicy{RequirePositivePrice: true}

// Validate trims the input and turns it into a product without an id.
func (p ValidationPolicy) Validate(in FormInput) (models.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Product{}, &ValidationError{Field: FieldName, Message: msgNameRequired}
	}

	raw := strings.TrimSpace(in.Price)
	if raw == "" {
		return models.Product{}, &ValidationError{Field: FieldPrice, Message: msgPriceRequired}
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Product{}, &ValidationError{Field: FieldPrice, Message: msgPriceInvalid}
	}
	if !inFloatRange(price) {
		return models.Product{}, &ValidationError{Field: FieldPrice, Message: msgPriceRange}
	}
	if p.RequirePositivePrice && !price.IsPositive() {
		return models.Product{}, &ValidationError{Field: FieldPrice, Message: msgPriceNotAbove}
	}

	return models.Product{
		Name:        name,
		Price:       price,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

func inFloatRange(d decimal.Decimal) bool {
	exp := int(d.Exponent())
	if exp < minPriceExponent || exp > maxPriceMagnitude {
		return false
	}
	return d.NumDigits()+exp <= maxPriceMagnitude
}
