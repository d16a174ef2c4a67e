package googleauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/addocu/stack-audit-api/internal/domain"
)

func TestResolver_Headers(t *testing.T) {
	resolver := NewResolverFromTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "token-de-teste",
	}))

	headers, err := resolver.Headers(domain.ServiceGA4)

	require.NoError(t, err)
	assert.Equal(t, "Bearer token-de-teste", headers["Authorization"])
}

func TestResolver_Headers_servicoNaoSuportado(t *testing.T) {
	resolver := NewResolverFromTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "token-de-teste",
	}))

	_, err := resolver.Headers(domain.Service("facebook"))

	require.Error(t, err)
	assert.Equal(t, domain.ErrKindValidation, domain.ErrorKind(err))
	assert.Contains(t, err.Error(), "não suportado")
}

func TestResolver_Headers_semCredencial(t *testing.T) {
	resolver := &Resolver{}

	_, err := resolver.Headers(domain.ServiceGTM)

	require.Error(t, err)
	assert.Equal(t, domain.ErrKindAuth, domain.ErrorKind(err))
	assert.Contains(t, err.Error(), "autorização necessária")
}
