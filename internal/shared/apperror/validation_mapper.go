package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.BrazilianPortuguese, cases.NoLower)
	return caser.String(s)
}

// FieldMessages overrides the generic message for a failing field. Keys are
// either "field.tag" or "field", matched in that order.
type FieldMessages map[string]*AppError

// MapValidationError turns the first binding failure into an INVALID_INPUT
// AppError with a readable message.
func MapValidationError(err error, overrides ...FieldMessages) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		for _, o := range overrides {
			if appErr, ok := o[e.Field()+"."+e.Tag()]; ok {
				return appErr
			}
			if appErr, ok := o[e.Field()]; ok {
				return appErr
			}
		}
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required", "notblank":
			return RequiredField(field)
		case "simple_email", "email":
			return New(CodeInvalidInput, "Email inválido", http.StatusBadRequest)
		case "min":
			return New(CodeInvalidInput, field+" deve ter no mínimo "+e.Param()+" caracteres", http.StatusBadRequest)
		case "max":
			return New(CodeInvalidInput, field+" deve ter no máximo "+e.Param()+" caracteres", http.StatusBadRequest)
		case "gt":
			return New(CodeInvalidInput, field+" deve ser maior que zero", http.StatusBadRequest)
		default:
			return InvalidField(field)
		}
	}

	return New(
		CodeInvalidInput,
		"Corpo da requisição inválido",
		http.StatusBadRequest,
	)
}
