package payments

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	ErrUTRRequired = errors.New("UTR number is required")
	ErrUTRFormat   = errors.New("UTR must be 12 to 22 alphanumeric characters")
)

// utrPattern matches bank UTR references after normalization: uppercase
// alphanumeric, 12 to 22 characters.
var utrPattern = regexp.MustCompile(`^[A-Z0-9]{12,22}$`)

// NormalizeUTR trims surrounding whitespace and uppercases the reference so
// validation and storage are case insensitive.
func NormalizeUTR(utr string) string {
	return strings.ToUpper(strings.TrimSpace(utr))
}

// ValidateUTR normalizes and validates a UTR reference.
func ValidateUTR(utr string) (string, error) {
	normalized := NormalizeUTR(utr)
	if normalized == "" {
		return "", ErrUTRRequired
	}
	if !utrPattern.MatchString(normalized) {
		return "", ErrUTRFormat
	}
	return normalized, nil
}

// RegisterUTRValidation registers the "utr" binding tag with gin's
// validator so request DTOs can declare it directly.
func RegisterUTRValidation() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("utr", func(fl validator.FieldLevel) bool {
			_, err := ValidateUTR(fl.Field().String())
			return err == nil
		})
	}
}
