package producterrors

import (
	"go-inventory/internal/shared/apperror"
	"net/http"
)

var (
	ErrProductNotFound = apperror.New(
		apperror.CodeNotFound,
		"Produto não encontrado ou inativo",
		http.StatusNotFound,
	)
	ErrInvalidProductID = apperror.New(
		apperror.CodeInvalidInput,
		"Id inválido. Deve ser um GUID.",
		http.StatusBadRequest,
	)
	ErrProductAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Já existe um produto com o mesmo código ou nome cadastrado.",
		http.StatusConflict,
	)
	ErrCodeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Código do produto é obrigatório.",
		http.StatusBadRequest,
	)
	ErrDescriptionRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Descrição do produto é obrigatória.",
		http.StatusBadRequest,
	)
	ErrDepartmentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Departamento é obrigatório.",
		http.StatusBadRequest,
	)
	ErrInvalidPrice = apperror.New(
		apperror.CodeInvalidInput,
		"Preço deve ser maior que zero.",
		http.StatusBadRequest,
	)
)
