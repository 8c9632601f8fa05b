package messageerrors

import (
	"go-inventory/internal/shared/apperror"
	"net/http"
)

var (
	ErrBrokerUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Não foi possível conectar ao RabbitMQ",
		http.StatusServiceUnavailable,
	)
	ErrReadFailed = apperror.New(
		apperror.CodeInternalError,
		"Erro ao ler mensagens do RabbitMQ",
		http.StatusInternalServerError,
	)
	ErrInvalidMax = apperror.New(
		apperror.CodeInvalidInput,
		"Parâmetro max deve ser um número inteiro.",
		http.StatusBadRequest,
	)
)
