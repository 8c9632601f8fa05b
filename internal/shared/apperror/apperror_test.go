package apperror_test

import (
	"errors"
	"net/http"
	"testing"

	"go-inventory/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string          `json:"name" validate:"required,notblank"`
	Email string          `json:"email" validate:"simple_email"`
	Pass  string          `json:"password" validate:"min=6"`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	apperror.Register(v)
	return v
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status", func(t *testing.T) {
		res := apperror.ToHTTP(apperror.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, apperror.CodeNotFound, res.Code)
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := apperror.ErrInvalidID.WithCause(errors.New("bad uuid"))
		res := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.True(t, errors.Is(err, apperror.ErrInvalidID))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		res := apperror.ToHTTP(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, res.Status)
		assert.Equal(t, apperror.CodeInternalError, res.Code)
	})
}

func TestMapValidationError(t *testing.T) {
	v := newValidator()
	valid := sample{Name: "Ana", Email: "ana@x.com", Pass: "123456", Price: decimal.NewFromInt(10)}

	tests := []struct {
		name    string
		mutate  func(s *sample)
		message string
	}{
		{"blank name", func(s *sample) { s.Name = "   " }, "Name é obrigatório"},
		{"bad email", func(s *sample) { s.Email = "notanemail" }, "Email inválido"},
		{"short password", func(s *sample) { s.Pass = "123" }, "Password deve ter no mínimo 6 caracteres"},
		{"zero price", func(s *sample) { s.Price = decimal.Zero }, "Price deve ser maior que zero"},
	}

	assert.NoError(t, v.Struct(valid))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := apperror.MapValidationError(v.Struct(s))

			res := apperror.ToHTTP(err)
			assert.Equal(t, http.StatusBadRequest, res.Status)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, apperror.IsEmail("a@b.co"))
	assert.False(t, apperror.IsEmail("a b@c.d"))
	assert.False(t, apperror.IsEmail("ab.cd"))
}

func TestMapValidationErrorOverrides(t *testing.T) {
	v := newValidator()
	custom := apperror.New(apperror.CodeInvalidInput, "Senha deve ter pelo menos 6 caracteres.", http.StatusBadRequest)

	err := apperror.MapValidationError(
		v.Struct(sample{Name: "Ana", Email: "a@b.co", Pass: "1", Price: decimal.NewFromInt(1)}),
		apperror.FieldMessages{"password.min": custom},
	)

	assert.Same(t, custom, err)
}
