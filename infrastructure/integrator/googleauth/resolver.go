// Package googleauth resolve as credenciais OAuth usadas nas chamadas às
// APIs do Google, a partir de um arquivo de credenciais de conta de
// serviço.
package googleauth

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/addocu/stack-audit-api/internal/domain"
)

// Escopos somente leitura exigidos pela auditoria, mais o escopo de
// escrita na planilha de destino.
var auditScopes = []string{
	"https://www.googleapis.com/auth/analytics.readonly",
	"https://www.googleapis.com/auth/tagmanager.readonly",
	"https://www.googleapis.com/auth/datastudio",
	"https://www.googleapis.com/auth/spreadsheets",
}

// Resolver entrega cabeçalhos de autorização e clientes HTTP
// autenticados para os integradores.
type Resolver struct {
	tokenSource oauth2.TokenSource
}

// NewResolver carrega as credenciais do arquivo informado.
func NewResolver(ctx context.Context, credentialsFile string) (*Resolver, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler arquivo de credenciais do Google")
	}

	credentials, err := google.CredentialsFromJSON(ctx, raw, auditScopes...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar credenciais do Google")
	}

	return &Resolver{tokenSource: credentials.TokenSource}, nil
}

// NewResolverFromTokenSource é usado nos testes e em cenários com token
// gerenciado externamente.
func NewResolverFromTokenSource(tokenSource oauth2.TokenSource) *Resolver {
	return &Resolver{tokenSource: tokenSource}
}

// Headers retorna os cabeçalhos de autorização para uma chamada de API.
// A ausência de credencial válida é um erro de autorização fatal para o
// serviço informado.
func (r *Resolver) Headers(service domain.Service) (map[string]string, error) {
	if _, ok := domain.ParseService(string(service)); !ok {
		return nil, domain.NewSyncError(domain.ErrKindValidation, service,
			"serviço não suportado pela auditoria", nil)
	}

	if r.tokenSource == nil {
		return nil, domain.NewSyncError(domain.ErrKindAuth, service,
			"autorização necessária: nenhuma credencial do Google configurada", nil)
	}

	token, err := r.tokenSource.Token()
	if err != nil {
		return nil, domain.NewSyncError(domain.ErrKindAuth, service,
			"autorização necessária: falha ao obter token de acesso", err)
	}

	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token.AccessToken),
	}, nil
}

// HTTPClient retorna um cliente autenticado, usado pelo backend de
// planilhas.
func (r *Resolver) HTTPClient(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, r.tokenSource)
}
