package auth_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"go-inventory/internal/auth"
	autherrors "go-inventory/internal/auth/errors"
	authMock "go-inventory/internal/auth/mock"
	"go-inventory/internal/shared/password"
	"go-inventory/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setupLogin(t *testing.T) (auth.Service, *authMock.MockUserStore, *auth.TokenManager) {
	ctrl := gomock.NewController(t)
	store := authMock.NewMockUserStore(ctrl)
	tm := newTestTokens()
	return auth.NewService(store, tm), store, tm
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success issues token for user", func(t *testing.T) {
		svc, store, tm := setupLogin(t)
		hash, err := password.Hash("secret1")
		require.NoError(t, err)

		store.EXPECT().
			FindByEmail(ctx, "ana@example.com").
			Return(&user.User{ID: id, Name: "Ana", Email: "ana@example.com", PasswordHash: hash}, nil)

		resp, err := svc.Login(ctx, " ana@example.com ", "secret1")
		require.NoError(t, err)

		claims, err := tm.Parse(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, id.String(), claims.Subject)
		assert.Equal(t, "Ana", claims.Name)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, store, _ := setupLogin(t)
		store.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "secret1")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, store, _ := setupLogin(t)
		hash, _ := password.Hash("secret1")
		store.EXPECT().
			FindByEmail(ctx, "ana@example.com").
			Return(&user.User{ID: id, Email: "ana@example.com", PasswordHash: hash}, nil)

		_, err := svc.Login(ctx, "ana@example.com", "wrong!")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("lookup failure is not reported as bad credentials", func(t *testing.T) {
		svc, store, _ := setupLogin(t)
		dbErr := errors.New("connection reset")
		store.EXPECT().FindByEmail(ctx, "ana@example.com").Return(nil, dbErr)

		_, err := svc.Login(ctx, "ana@example.com", "secret1")
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("legacy digest is upgraded to bcrypt", func(t *testing.T) {
		svc, store, _ := setupLogin(t)
		sum := sha256.Sum256([]byte("secret1"))
		legacy := base64.StdEncoding.EncodeToString(sum[:])

		store.EXPECT().
			FindByEmail(ctx, "ana@example.com").
			Return(&user.User{ID: id, Email: "ana@example.com", PasswordHash: legacy}, nil)
		store.EXPECT().
			UpdatePasswordHash(ctx, id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, hash string) error {
				assert.False(t, password.NeedsRehash(hash))
				assert.NoError(t, password.Verify(hash, "secret1"))
				return nil
			})

		resp, err := svc.Login(ctx, "ana@example.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("upgrade failure does not fail login", func(t *testing.T) {
		svc, store, _ := setupLogin(t)
		sum := sha256.Sum256([]byte("secret1"))
		legacy := base64.StdEncoding.EncodeToString(sum[:])

		store.EXPECT().
			FindByEmail(ctx, "ana@example.com").
			Return(&user.User{ID: id, Email: "ana@example.com", PasswordHash: legacy}, nil)
		store.EXPECT().UpdatePasswordHash(ctx, id, gomock.Any()).Return(errors.New("db down"))

		resp, err := svc.Login(ctx, "ana@example.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})
}
