package usererrors

import (
	"go-inventory/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"Usuário não encontrado ou inativo",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Id inválido. Deve ser um GUID.",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Já existe um usuário com o mesmo e-mail cadastrado.",
		http.StatusConflict,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Nome do usuário é obrigatório.",
		http.StatusBadRequest,
	)
	ErrEmailRequired = apperror.New(
		apperror.CodeInvalidInput,
		"E-mail é obrigatório.",
		http.StatusBadRequest,
	)
	ErrInvalidEmail = apperror.New(
		apperror.CodeInvalidInput,
		"E-mail em formato inválido.",
		http.StatusBadRequest,
	)
	ErrPasswordRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Senha é obrigatória.",
		http.StatusBadRequest,
	)
	ErrPasswordTooShort = apperror.New(
		apperror.CodeInvalidInput,
		"Senha deve ter pelo menos 6 caracteres.",
		http.StatusBadRequest,
	)
)
