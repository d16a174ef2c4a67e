// Package ga4client encapsula as chamadas à Google Analytics Admin API.
package ga4client

import (
	"fmt"
	"net/url"

	ga4domain "github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/domain"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/httpretry"
)

const (
	defaultBaseURL = "https://analyticsadmin.googleapis.com/v1alpha"
	pageSize       = 200
)

// AuthResolver entrega os cabeçalhos de autorização por chamada.
type AuthResolver interface {
	Headers(service domain.Service) (map[string]string, error)
}

type Client interface {
	ListAccounts() ([]ga4domain.Account, error)
	ListProperties(accountName string) ([]ga4domain.Property, error)
	ListCustomDimensions(propertyName string) ([]ga4domain.CustomDimension, error)
	ListCustomMetrics(propertyName string) ([]ga4domain.CustomMetric, error)
	ListDataStreams(propertyName string) ([]ga4domain.DataStream, error)
}

type GA4Client struct {
	baseURL string
	http    *httpretry.Client
	auth    AuthResolver
}

type Option func(*GA4Client)

// WithBaseURL substitui o endpoint da Admin API, usado nos testes.
func WithBaseURL(baseURL string) Option {
	return func(c *GA4Client) {
		c.baseURL = baseURL
	}
}

func NewClient(httpClient *httpretry.Client, auth AuthResolver, opts ...Option) Client {
	client := &GA4Client{
		baseURL: defaultBaseURL,
		http:    httpClient,
		auth:    auth,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

type accountsResponse struct {
	Accounts []ga4domain.Account `json:"accounts"`
}

func (c *GA4Client) ListAccounts() ([]ga4domain.Account, error) {
	endpoint := fmt.Sprintf("%s/accounts?pageSize=%d", c.baseURL, pageSize)

	var response accountsResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Accounts, nil
}

type propertiesResponse struct {
	Properties []ga4domain.Property `json:"properties"`
}

func (c *GA4Client) ListProperties(accountName string) ([]ga4domain.Property, error) {
	endpoint := fmt.Sprintf("%s/properties?filter=%s&pageSize=%d",
		c.baseURL, url.QueryEscape("parent:"+accountName), pageSize)

	var response propertiesResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Properties, nil
}

type customDimensionsResponse struct {
	CustomDimensions []ga4domain.CustomDimension `json:"customDimensions"`
}

func (c *GA4Client) ListCustomDimensions(propertyName string) ([]ga4domain.CustomDimension, error) {
	endpoint := fmt.Sprintf("%s/%s/customDimensions?pageSize=%d", c.baseURL, propertyName, pageSize)

	var response customDimensionsResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.CustomDimensions, nil
}

type customMetricsResponse struct {
	CustomMetrics []ga4domain.CustomMetric `json:"customMetrics"`
}

func (c *GA4Client) ListCustomMetrics(propertyName string) ([]ga4domain.CustomMetric, error) {
	endpoint := fmt.Sprintf("%s/%s/customMetrics?pageSize=%d", c.baseURL, propertyName, pageSize)

	var response customMetricsResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.CustomMetrics, nil
}

type dataStreamsResponse struct {
	DataStreams []ga4domain.DataStream `json:"dataStreams"`
}

func (c *GA4Client) ListDataStreams(propertyName string) ([]ga4domain.DataStream, error) {
	endpoint := fmt.Sprintf("%s/%s/dataStreams?pageSize=%d", c.baseURL, propertyName, pageSize)

	var response dataStreamsResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.DataStreams, nil
}

func (c *GA4Client) getJSON(endpoint string, out interface{}) error {
	headers, err := c.auth.Headers(domain.ServiceGA4)
	if err != nil {
		return err
	}

	return c.http.GetJSON(endpoint, headers, domain.ServiceGA4, out)
}
