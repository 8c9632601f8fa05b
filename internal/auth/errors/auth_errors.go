package autherrors

import (
	"go-inventory/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"E-mail ou senha inválidos",
		http.StatusUnauthorized,
	)
	ErrMissingToken = apperror.New(
		apperror.CodeUnauthorized,
		"Token ausente",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"Token inválido",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Token expirado",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Falha ao gerar o token",
		http.StatusInternalServerError,
	)
	ErrTooManyAttempts = apperror.New(
		apperror.CodeTooManyRequests,
		"Muitas tentativas. Tente novamente em instantes.",
		http.StatusTooManyRequests,
	)
)
