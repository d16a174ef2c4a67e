// Package diagnosing verifica a conectividade e as permissões das APIs
// auditadas, uma sondagem por serviço, e persiste o resultado na tabela
// DIAGNOSTIC.
package diagnosing

import (
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

const component = "DIAGNOSTIC"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var diagnosticHeaders = []string{"Serviço", "Conta", "Estado", "Mensagem", "Timestamp"}

// Estados possíveis de uma sondagem.
const (
	StatusOK              = "OK"
	StatusPermissionError = "PERMISSION_ERROR"
	StatusAuthError       = "AUTH_ERROR"
	StatusAPINotFound     = "API_NOT_FOUND"
	StatusException       = "EXCEPTION"
)

// Result é o desfecho da sondagem de um serviço.
type Result struct {
	Service   domain.Service `json:"service"`
	Name      string         `json:"name"`
	Account   string         `json:"account"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	CheckedAt time.Time      `json:"checkedAt"`
}

// AuthResolver fornece os cabeçalhos de autorização de cada serviço.
type AuthResolver interface {
	Headers(service domain.Service) (map[string]string, error)
}

type endpoint struct {
	name string
	url  string
}

func defaultEndpoints() map[domain.Service]endpoint {
	return map[domain.Service]endpoint{
		domain.ServiceGA4: {
			name: "Google Analytics 4 Admin API",
			url:  "https://analyticsadmin.googleapis.com/v1alpha/accounts?pageSize=1",
		},
		domain.ServiceGTM: {
			name: "Google Tag Manager API",
			url:  "https://tagmanager.googleapis.com/tagmanager/v2/accounts",
		},
		domain.ServiceLooker: {
			name: "Looker Studio API",
			url:  "https://datastudio.googleapis.com/v1/assets:search?assetTypes=REPORT&pageSize=1",
		},
	}
}

type Service struct {
	httpClient *http.Client
	auth       AuthResolver
	store      storage.TableStore
	audit      *auditlog.Logger
	endpoints  map[domain.Service]endpoint
	now        func() time.Time
}

type Option func(*Service)

// WithHTTPClient troca o cliente HTTP usado nas sondagens.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) { s.httpClient = client }
}

// WithEndpoint substitui a URL de sondagem de um serviço.
func WithEndpoint(service domain.Service, url string) Option {
	return func(s *Service) {
		ep := s.endpoints[service]
		ep.url = url
		s.endpoints[service] = ep
	}
}

func NewService(auth AuthResolver, store storage.TableStore, audit *auditlog.Logger, opts ...Option) *Service {
	s := &Service{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		auth:       auth,
		store:      store,
		audit:      audit,
		endpoints:  defaultEndpoints(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run sonda os três serviços em ordem fixa e grava o resultado na tabela
// DIAGNOSTIC. Falha de sondagem vira um Result com estado de erro, nunca
// interrompe as demais.
func (s *Service) Run() ([]Result, error) {
	defer func() {
		if err := s.audit.Flush(); err != nil {
			s.audit.Warning(component, "Falha ao descarregar o log de auditoria", err.Error())
		}
	}()

	s.audit.Event(component, "Iniciando diagnóstico de conectividade")

	results := make([]Result, 0, len(domain.AllServices()))
	rows := make([][]string, 0, len(domain.AllServices()))

	for _, service := range domain.AllServices() {
		result := s.probe(service)
		results = append(results, result)

		if result.Status == StatusOK {
			s.audit.Event(component, fmt.Sprintf("%s: %s", result.Name, result.Status), result.Message)
		} else {
			s.audit.Warning(component, fmt.Sprintf("%s: %s", result.Name, result.Status), result.Message)
		}

		rows = append(rows, []string{
			result.Name,
			result.Account,
			result.Status,
			result.Message,
			utils.FormatTime(result.CheckedAt),
		})
	}

	if err := s.store.WriteTable(storage.TableDiagnostic, diagnosticHeaders, rows, true); err != nil {
		return results, err
	}

	return results, nil
}

func (s *Service) probe(service domain.Service) Result {
	ep := s.endpoints[service]
	result := Result{
		Service:   service,
		Name:      ep.name,
		Account:   "N/A",
		CheckedAt: s.now(),
	}

	headers, err := s.auth.Headers(service)
	if err != nil {
		result.Status = StatusAuthError
		result.Message = err.Error()
		return result
	}

	req, err := http.NewRequest(http.MethodGet, ep.url, nil)
	if err != nil {
		result.Status = StatusException
		result.Message = err.Error()
		return result
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		result.Status = StatusException
		result.Message = err.Error()
		return result
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		result.Status = StatusOK
		result.Message = "Conectado corretamente"
		result.Account = accountSummary(service, body)
	case resp.StatusCode == http.StatusForbidden:
		result.Status = StatusPermissionError
		result.Message = "Sem permissões OAuth2. Verifique se a API está habilitada e o acesso autorizado."
	case resp.StatusCode == http.StatusUnauthorized:
		result.Status = StatusAuthError
		result.Message = "Erro de autenticação OAuth2. A credencial precisa de autorização."
	case resp.StatusCode == http.StatusNotFound:
		result.Status = StatusAPINotFound
		result.Message = "API não encontrada. Verifique se está habilitada no Google Cloud Console."
	default:
		result.Status = fmt.Sprintf("HTTP_%d", resp.StatusCode)
		result.Message = fmt.Sprintf("Erro HTTP %d", resp.StatusCode)
	}

	return result
}

// accountSummary extrai uma contagem de contas do corpo da resposta.
// Corpo não parseável não é crítico para o diagnóstico.
func accountSummary(service domain.Service, body []byte) string {
	switch service {
	case domain.ServiceGA4:
		var payload struct {
			Accounts []jsoniter.RawMessage `json:"accounts"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Accounts != nil {
			return fmt.Sprintf("%d contas GA4", len(payload.Accounts))
		}
	case domain.ServiceGTM:
		var payload struct {
			Account []jsoniter.RawMessage `json:"account"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Account != nil {
			return fmt.Sprintf("%d contas GTM", len(payload.Account))
		}
	case domain.ServiceLooker:
		return "Looker Studio acessível"
	}
	return "N/A"
}
