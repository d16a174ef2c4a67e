// Package lookerclient encapsula a busca paginada de assets do Looker
// Studio.
package lookerclient

import (
	"fmt"
	"net/url"

	jsoniter "github.com/json-iterator/go"

	lookerdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/looker/domain"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/httpretry"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultBaseURL = "https://datastudio.googleapis.com/v1"
	pageSize       = 100
)

// AuthResolver entrega os cabeçalhos de autorização por chamada.
type AuthResolver interface {
	Headers(service domain.Service) (map[string]string, error)
}

type Client interface {
	// SearchReports retorna uma página de relatórios e o token da
	// próxima página, vazio na última.
	SearchReports(pageToken string) ([]lookerdomain.Asset, string, error)
}

type LookerClient struct {
	baseURL string
	http    *httpretry.Client
	auth    AuthResolver
}

type Option func(*LookerClient)

func WithBaseURL(baseURL string) Option {
	return func(c *LookerClient) {
		c.baseURL = baseURL
	}
}

func NewClient(httpClient *httpretry.Client, auth AuthResolver, opts ...Option) Client {
	client := &LookerClient{
		baseURL: defaultBaseURL,
		http:    httpClient,
		auth:    auth,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type searchResponse struct {
	Assets        []lookerdomain.Asset `json:"assets"`
	NextPageToken string               `json:"nextPageToken"`
}

func (c *LookerClient) SearchReports(pageToken string) ([]lookerdomain.Asset, string, error) {
	headers, err := c.auth.Headers(domain.ServiceLooker)
	if err != nil {
		return nil, "", err
	}

	endpoint := fmt.Sprintf("%s/assets:search?assetTypes=REPORT&pageSize=%d", c.baseURL, pageSize)
	if pageToken != "" {
		endpoint += "&pageToken=" + url.QueryEscape(pageToken)
	}

	// Diferente das varreduras GA4/GTM, uma página que não é JSON
	// válido é fatal para a execução do Looker, nunca tratada como
	// página vazia.
	raw, err := c.http.Get(endpoint, headers, domain.ServiceLooker)
	if err != nil {
		return nil, "", err
	}

	var response searchResponse
	if len(raw.Body) > 0 {
		if err := json.Unmarshal(raw.Body, &response); err != nil {
			return nil, "", domain.NewSyncError(domain.ErrKindMalformed, domain.ServiceLooker,
				"resposta da busca de assets não é JSON válido", err)
		}
	}

	return response.Assets, response.NextPageToken, nil
}
