package shared

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}
}

// FormatValidationErrors extracts field-level messages from a validator error,
// even when it arrives wrapped in the domain validation kind. Returns nil for
// anything that is not a validator error.
func FormatValidationErrors(err error) []ValidationError {
	var (
		fieldErrors validator.ValidationErrors
		out         []ValidationError
	)

	if !errors.As(err, &fieldErrors) {
		return nil
	}

	for _, fieldError := range fieldErrors {
		out = append(out, ValidationError{
			Field:   strings.ToLower(fieldError.Field()),
			Message: fieldError.Translate(Translator),
		})
	}

	return out
}
