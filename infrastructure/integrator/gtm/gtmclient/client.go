// Package gtmclient encapsula as chamadas à API do Google Tag Manager.
package gtmclient

import (
	"fmt"

	gtmdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/domain"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/httpretry"
)

const defaultBaseURL = "https://tagmanager.googleapis.com/tagmanager/v2"

// AuthResolver entrega os cabeçalhos de autorização por chamada.
type AuthResolver interface {
	Headers(service domain.Service) (map[string]string, error)
}

type Client interface {
	ListAccounts() ([]gtmdomain.Account, error)
	ListContainers(accountID string) ([]gtmdomain.Container, error)
	ListWorkspaces(container gtmdomain.Container) ([]gtmdomain.Workspace, error)
	ListTags(workspacePath string) ([]gtmdomain.Tag, error)
	ListVariables(workspacePath string) ([]gtmdomain.Variable, error)
	ListTriggers(workspacePath string) ([]gtmdomain.Trigger, error)
}

type GTMClient struct {
	baseURL string
	http    *httpretry.Client
	auth    AuthResolver
}

type Option func(*GTMClient)

func WithBaseURL(baseURL string) Option {
	return func(c *GTMClient) {
		c.baseURL = baseURL
	}
}

func NewClient(httpClient *httpretry.Client, auth AuthResolver, opts ...Option) Client {
	client := &GTMClient{
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
	Account []gtmdomain.Account `json:"account"`
}

func (c *GTMClient) ListAccounts() ([]gtmdomain.Account, error) {
	endpoint := fmt.Sprintf("%s/accounts", c.baseURL)

	var response accountsResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Account, nil
}

type containersResponse struct {
	Container []gtmdomain.Container `json:"container"`
}

func (c *GTMClient) ListContainers(accountID string) ([]gtmdomain.Container, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/containers", c.baseURL, accountID)

	var response containersResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Container, nil
}

type workspacesResponse struct {
	Workspace []gtmdomain.Workspace `json:"workspace"`
}

func (c *GTMClient) ListWorkspaces(container gtmdomain.Container) ([]gtmdomain.Workspace, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/containers/%s/workspaces",
		c.baseURL, container.AccountID, container.ContainerID)

	var response workspacesResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Workspace, nil
}

type tagsResponse struct {
	Tag []gtmdomain.Tag `json:"tag"`
}

func (c *GTMClient) ListTags(workspacePath string) ([]gtmdomain.Tag, error) {
	endpoint := fmt.Sprintf("%s/%s/tags", c.baseURL, workspacePath)

	var response tagsResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Tag, nil
}

type variablesResponse struct {
	Variable []gtmdomain.Variable `json:"variable"`
}

func (c *GTMClient) ListVariables(workspacePath string) ([]gtmdomain.Variable, error) {
	endpoint := fmt.Sprintf("%s/%s/variables", c.baseURL, workspacePath)

	var response variablesResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Variable, nil
}

type triggersResponse struct {
	Trigger []gtmdomain.Trigger `json:"trigger"`
}

func (c *GTMClient) ListTriggers(workspacePath string) ([]gtmdomain.Trigger, error) {
	endpoint := fmt.Sprintf("%s/%s/triggers", c.baseURL, workspacePath)

	var response triggersResponse
	if err := c.getJSON(endpoint, &response); err != nil {
		return nil, err
	}

	return response.Trigger, nil
}

func (c *GTMClient) getJSON(endpoint string, out interface{}) error {
	headers, err := c.auth.Headers(domain.ServiceGTM)
	if err != nil {
		return err
	}

	return c.http.GetJSON(endpoint, headers, domain.ServiceGTM, out)
}
