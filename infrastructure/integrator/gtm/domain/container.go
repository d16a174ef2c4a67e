package domain

// Account é uma conta do Google Tag Manager.
type Account struct {
	Path      string `json:"path"`
	AccountID string `json:"accountId"`
	Name      string `json:"name"`
}

// Container é um contêiner GTM já anotado com a conta de origem, para
// evitar nova enumeração durante o fan-out.
type Container struct {
	Path         string   `json:"path"`
	AccountID    string   `json:"accountId"`
	ContainerID  string   `json:"containerId"`
	Name         string   `json:"name"`
	PublicID     string   `json:"publicId"`
	UsageContext []string `json:"usageContext"`
	Notes        string   `json:"notes"`

	AccountName string `json:"-"`
}

// Workspace é um espaço de trabalho de um contêiner GTM.
type Workspace struct {
	Path        string `json:"path"`
	WorkspaceID string `json:"workspaceId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
