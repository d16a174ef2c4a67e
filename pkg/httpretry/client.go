// Package httpretry concentra a política de repetição usada em todas as
// chamadas às APIs do Google: backoff exponencial para limite de taxa,
// backoff linear para erros de servidor e falha imediata para erros de
// autorização ou respostas que não são JSON.
package httpretry

import (
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
)

// AttemptLogger recebe os avisos de tentativa para o log de auditoria.
type AttemptLogger interface {
	Warning(component, message string, details ...string)
}

// Response carrega o corpo bruto da resposta para os casos em que o
// chamador precisa inspecionar o payload original.
type Response struct {
	StatusCode int
	Body       []byte
}

type Client struct {
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)
	audit      AttemptLogger
}

type Option func(*Client)

// WithHTTPClient substitui o cliente HTTP padrão, inclusive o timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithMaxRetries(maxRetries int) Option {
	return func(c *Client) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
	}
}

func WithBaseDelay(baseDelay time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = baseDelay
	}
}

// WithSleep substitui a função de espera entre tentativas. Os testes
// injetam uma função imediata para não dormir de verdade.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

func WithAuditLogger(audit AttemptLogger) Option {
	return func(c *Client) {
		c.audit = audit
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: DefaultMaxRetries,
		baseDelay:  DefaultBaseDelay,
		sleep:      time.Sleep,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Get executa um GET com a política de repetição completa. O rótulo de
// serviço identifica a origem nos logs e nos erros.
func (c *Client) Get(url string, headers map[string]string, service domain.Service) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		response, retry, err := c.attempt(url, headers, service)
		if err == nil {
			return response, nil
		}

		lastErr = err
		if !retry {
			return nil, err
		}

		if attempt < c.maxRetries {
			delay := c.delayFor(response, attempt)
			c.warn(service, attempt, err, delay)
			c.sleep(delay)
		}
	}

	return nil, domain.NewSyncError(domain.ErrKindTransport, service,
		errors.Wrapf(lastErr, "falha após %d tentativas", c.maxRetries).Error(), lastErr)
}

// GetJSON executa Get e decodifica o corpo no destino informado. Corpo
// vazio é tratado como resposta sem dados, e JSON inválido em uma
// resposta 2xx gera apenas um aviso, mantendo o comportamento tolerante
// esperado pelas varreduras.
func (c *Client) GetJSON(url string, headers map[string]string, service domain.Service, out interface{}) error {
	response, err := c.Get(url, headers, service)
	if err != nil {
		return err
	}

	if len(response.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(response.Body, out); err != nil {
		log.L.WithFields(log.Fields{
			"service": service,
			"url":     url,
		}).WithError(err).Warn("Resposta 2xx com JSON inválido, payload ignorado")
	}

	return nil
}

// attempt faz uma única tentativa. O booleano indica se o erro permite
// nova tentativa.
func (c *Client) attempt(url string, headers map[string]string, service domain.Service) (*Response, bool, error) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, false, domain.NewSyncError(domain.ErrKindValidation, service, "URL de requisição inválida", err)
	}

	for key, value := range headers {
		request.Header.Set(key, value)
	}

	httpResponse, err := c.httpClient.Do(request)
	if err != nil {
		return nil, true, domain.NewSyncError(domain.ErrKindTransport, service, "erro de rede na chamada à API", err)
	}
	defer httpResponse.Body.Close()

	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, true, domain.NewSyncError(domain.ErrKindTransport, service, "erro ao ler corpo da resposta", err)
	}

	response := &Response{StatusCode: httpResponse.StatusCode, Body: body}

	if looksLikeHTML(body) {
		return response, false, domain.NewSyncError(domain.ErrKindMalformed, service,
			"a API retornou HTML em vez de JSON, verifique a autorização e o endpoint", nil)
	}

	switch {
	case httpResponse.StatusCode >= 200 && httpResponse.StatusCode < 300:
		return response, false, nil

	case httpResponse.StatusCode == http.StatusUnauthorized || httpResponse.StatusCode == http.StatusForbidden:
		return response, false, domain.NewSyncError(domain.ErrKindAuth, service,
			apiErrorMessage(httpResponse.StatusCode, body), nil)

	case httpResponse.StatusCode == http.StatusTooManyRequests:
		return response, true, domain.NewSyncError(domain.ErrKindTransport, service,
			"limite de taxa da API atingido (HTTP 429)", nil)

	case httpResponse.StatusCode >= 500:
		return response, true, domain.NewSyncError(domain.ErrKindTransport, service,
			apiErrorMessage(httpResponse.StatusCode, body), nil)

	default:
		return response, false, domain.NewSyncError(domain.ErrKindValidation, service,
			apiErrorMessage(httpResponse.StatusCode, body), nil)
	}
}

// delayFor calcula a espera antes da próxima tentativa: exponencial para
// HTTP 429 e linear para os demais erros repetíveis.
func (c *Client) delayFor(response *Response, attempt int) time.Duration {
	if response != nil && response.StatusCode == http.StatusTooManyRequests {
		return c.baseDelay * time.Duration(1<<attempt)
	}

	return c.baseDelay * time.Duration(attempt)
}

func (c *Client) warn(service domain.Service, attempt int, err error, delay time.Duration) {
	log.L.WithFields(log.Fields{
		"service": service,
		"attempt": attempt,
		"delay":   delay.String(),
	}).WithError(err).Warn("Tentativa de chamada à API falhou, aguardando para repetir")

	if c.audit != nil {
		c.audit.Warning(string(service),
			"Nova tentativa de chamada à API agendada",
			errors.Wrapf(err, "tentativa %d", attempt).Error())
	}
}

// looksLikeHTML detecta respostas HTML, que normalmente indicam uma
// página de login ou de erro servida no lugar do JSON esperado.
func looksLikeHTML(body []byte) bool {
	sample := strings.TrimSpace(string(body))
	if len(sample) > 64 {
		sample = sample[:64]
	}
	sample = strings.ToLower(sample)

	return strings.HasPrefix(sample, "<!doctype html") || strings.HasPrefix(sample, "<html")
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// apiErrorMessage extrai a mensagem de erro estruturada do corpo da
// resposta, quando presente.
func apiErrorMessage(statusCode int, body []byte) string {
	var decoded apiErrorBody
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error.Message != "" {
		return errors.Errorf("HTTP %d: %s", statusCode, decoded.Error.Message).Error()
	}

	return errors.Errorf("HTTP %d na chamada à API", statusCode).Error()
}
