package user

import "strings"

// CreateUserRequest accepts the plain password under "password" or, for
// older clients, under "passwordHash".
type CreateUserRequest struct {
	Name         string `json:"name" binding:"required,notblank,max=100"`
	Email        string `json:"email" binding:"required,simple_email,max=100"`
	Password     string `json:"password"`
	PasswordHash string `json:"passwordHash"`
}

// UpdateUserRequest changes the password only when one is supplied.
type UpdateUserRequest struct {
	Name         string `json:"name" binding:"required,notblank,max=100"`
	Email        string `json:"email" binding:"required,simple_email,max=100"`
	Password     string `json:"password"`
	PasswordHash string `json:"passwordHash"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// plainPassword picks the first field that is not blank. It returns "" when
// both are blank, so an all-whitespace password counts as missing.
func plainPassword(password, legacy string) string {
	if strings.TrimSpace(password) != "" {
		return password
	}
	if strings.TrimSpace(legacy) != "" {
		return legacy
	}
	return ""
}
