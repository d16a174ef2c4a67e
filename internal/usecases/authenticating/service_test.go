package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/internal/config"
	"github.com/addocu/stack-audit-api/internal/domain"
)

func newAuthenticator(secret string) Authenticator {
	return NewService(&config.Config{Auth: config.Auth{Secret: secret}})
}

func TestTokens(t *testing.T) {
	t.Run("token emitido deve validar com as mesmas claims", func(t *testing.T) {
		service := newAuthenticator("segredo-de-teste")

		token, err := service.GenerateToken("user-1", "Ana", domain.RoleAdmin)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "Ana", claims.UserName)
		assert.Equal(t, domain.RoleAdmin, claims.UserRoleID)
	})

	t.Run("token assinado com outro segredo deve ser rejeitado", func(t *testing.T) {
		issuer := newAuthenticator("segredo-a")
		validator := newAuthenticator("segredo-b")

		token, err := issuer.GenerateToken("user-1", "Ana", domain.RoleViewer)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("token malformado deve ser rejeitado", func(t *testing.T) {
		service := newAuthenticator("segredo-de-teste")

		_, err := service.ValidateToken("nao-e-um-jwt")
		assert.Error(t, err)
	})

	t.Run("emissão sem segredo configurado deve falhar", func(t *testing.T) {
		service := newAuthenticator("")

		_, err := service.GenerateToken("user-1", "Ana", domain.RoleAdmin)
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}
