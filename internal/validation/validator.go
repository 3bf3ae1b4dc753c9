package validation

import (
	"errors"

	locales_en "github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request payloads against their `validate` struct tags
// and translates violations into human-readable field messages.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New creates a Validator with English translations registered.
func New() (*Validator, error) {
	en := locales_en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Validator{validate: validate, trans: trans}, nil
}

// Validate checks s against its validate tags. It returns a field-to-message
// map describing every violation, or nil when s is valid.
func (v *Validator) Validate(s any) map[string]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		fields["_"] = err.Error()
		return fields
	}

	for _, violation := range violations {
		fields[violation.Field()] = violation.Translate(v.trans)
	}

	return fields
}
