package checkout

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ShippingRequest is the shipping-address step payload
type ShippingRequest struct {
	FullName     string `json:"full_name" validate:"required,min=3"`
	AddressLine1 string `json:"address_line1" validate:"required,min=5"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required,min=2"`
	State        string `json:"state" validate:"required"`
	ZipCode      string `json:"zip_code" validate:"required,min=4"`
	Country      string `json:"country" validate:"required"`
}

// PaymentRequest is the payment step payload. Email and phone are captured
// here and carried onto the order record.
type PaymentRequest struct {
	CardName   string `json:"card_name" validate:"required,min=3"`
	CardNumber string `json:"card_number" validate:"required,cardnumber"`
	ExpiryDate string `json:"expiry_date" validate:"required,cardexpiry"`
	CVV        string `json:"cvv" validate:"required,cardcvv"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=7"`
}

// FieldError is one field-level validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports the field errors for a rejected step submission.
// It blocks only the current step; nothing else changes.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvPattern    = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// stripCardNumber removes the spaces and dashes users type between digit
// groups
func stripCardNumber(number string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(number)
}

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		stripped := stripCardNumber(fl.Field().String())
		if len(stripped) < 16 || len(stripped) > 19 {
			return false
		}
		for _, r := range stripped {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	v.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("cardcvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})

	return v
}

// checkStruct runs validator tags and converts failures into a
// *ValidationError with per-field messages
func checkStruct(v *validator.Validate, payload interface{}) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "email":
		return "Invalid email format"
	case "cardnumber":
		return "Card number must be 16-19 digits"
	case "cardexpiry":
		return "Expiry date must be in MM/YY format"
	case "cardcvv":
		return "CVV must be 3 or 4 digits"
	default:
		return "Invalid value"
	}
}
