package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Recurso não encontrado",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"Erro interno ao processar a requisição",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Token ausente ou inválido",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"Dados inválidos",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		CodeInvalidInput,
		"ID inválido",
		http.StatusBadRequest,
	)
)

// RequiredField reports a missing or blank field.
func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" é obrigatório", http.StatusBadRequest)
}

// InvalidField reports a field whose value failed validation.
func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" é inválido", http.StatusBadRequest)
}
