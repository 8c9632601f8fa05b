package departmenterrors

import (
	"go-inventory/internal/shared/apperror"
	"net/http"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Departamento não encontrado ou inativo",
		http.StatusNotFound,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"ID de departamento inválido",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Nome do departamento é obrigatório.",
		http.StatusBadRequest,
	)
)
