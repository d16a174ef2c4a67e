package domain

import "strings"

// Property é uma propriedade GA4. O nome vem no formato
// "properties/<id>".
type Property struct {
	Name                  string                 `json:"name"`
	DisplayName           string                 `json:"displayName"`
	Parent                string                 `json:"parent"`
	CurrencyCode          string                 `json:"currencyCode"`
	TimeZone              string                 `json:"timeZone"`
	IndustryCategory      string                 `json:"industryCategory"`
	ServiceLevel          string                 `json:"serviceLevel"`
	CreateTime            string                 `json:"createTime"`
	UpdateTime            string                 `json:"updateTime"`
	DeleteTime            string                 `json:"deleteTime"`
	DataRetentionSettings *DataRetentionSettings `json:"dataRetentionSettings"`
}

type DataRetentionSettings struct {
	EventDataRetention         string `json:"eventDataRetention"`
	ResetUserDataOnNewActivity bool   `json:"resetUserDataOnNewActivity"`
}

// ID retorna o identificador numérico da propriedade.
func (p Property) ID() string {
	parts := strings.Split(p.Name, "/")
	return parts[len(parts)-1]
}

// PropertyWithAccount amarra a propriedade à conta de origem, evitando
// nova enumeração de contas nas varreduras de sub-recursos.
type PropertyWithAccount struct {
	Property Property
	Account  Account
}
