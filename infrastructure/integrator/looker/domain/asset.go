package domain

import (
	"encoding/json"
	"strings"
)

// Asset é um informe retornado pela busca de assets do Looker Studio.
type Asset struct {
	Name           string       `json:"name"`
	Title          string       `json:"title"`
	AssetType      string       `json:"assetType"`
	CreateTime     string       `json:"createTime"`
	UpdateTime     string       `json:"updateTime"`
	TrashTime      string       `json:"trashTime"`
	Owner          Owner        `json:"owner"`
	ViewerCount    int          `json:"viewerCount"`
	IsPublic       bool         `json:"isPublic"`
	Description    string       `json:"description"`
	Tags           []string     `json:"tags"`
	Locale         string       `json:"locale"`
	Theme          string       `json:"theme"`
	EmbedURL       string       `json:"embedUrl"`
	Status         string       `json:"status"`
	LastViewedTime string       `json:"lastViewedTime"`
	DataSources    []DataSource `json:"dataSources"`
	ETag           string       `json:"etag"`
	RevisionID     string       `json:"revisionId"`
}

type DataSource struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// ReportID retorna o identificador usado na URL pública do relatório.
func (a Asset) ReportID() string {
	if a.Name == "" {
		return ""
	}
	parts := strings.Split(a.Name, "/")
	return parts[len(parts)-1]
}

// Owner aceita os dois formatos retornados pela API: um objeto com
// email e nome de exibição, ou apenas o email como string.
type Owner struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var email string
		if err := json.Unmarshal(data, &email); err != nil {
			return err
		}
		o.Email = email
		o.DisplayName = strings.SplitN(email, "@", 2)[0]
		return nil
	}

	type alias Owner
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	*o = Owner(decoded)
	return nil
}
