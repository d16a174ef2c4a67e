package domain

import "strings"

// CustomDimension é uma dimensão personalizada de uma propriedade GA4.
type CustomDimension struct {
	Name                       string `json:"name"`
	DisplayName                string `json:"displayName"`
	ParameterName              string `json:"parameterName"`
	Scope                      string `json:"scope"`
	Description                string `json:"description"`
	DisallowAdsPersonalization bool   `json:"disallowAdsPersonalization"`
	ArchiveTime                string `json:"archiveTime"`
}

// Archived informa se a dimensão foi arquivada.
func (d CustomDimension) Archived() bool {
	return d.ArchiveTime != ""
}

// CustomMetric é uma métrica personalizada de uma propriedade GA4.
type CustomMetric struct {
	Name            string `json:"name"`
	DisplayName     string `json:"displayName"`
	ParameterName   string `json:"parameterName"`
	MeasurementUnit string `json:"measurementUnit"`
	Scope           string `json:"scope"`
	Description     string `json:"description"`
	ArchiveTime     string `json:"archiveTime"`
}

func (m CustomMetric) Archived() bool {
	return m.ArchiveTime != ""
}

// DataStream é um fluxo de dados de uma propriedade GA4, com o payload
// específico do tipo (web, Android ou iOS).
type DataStream struct {
	Name                 string                `json:"name"`
	DisplayName          string                `json:"displayName"`
	Type                 string                `json:"type"`
	CreateTime           string                `json:"createTime"`
	UpdateTime           string                `json:"updateTime"`
	WebStreamData        *WebStreamData        `json:"webStreamData"`
	AndroidAppStreamData *AndroidAppStreamData `json:"androidAppStreamData"`
	IosAppStreamData     *IosAppStreamData     `json:"iosAppStreamData"`
}

type WebStreamData struct {
	MeasurementID string `json:"measurementId"`
	DefaultURI    string `json:"defaultUri"`
}

type AndroidAppStreamData struct {
	PackageName string `json:"packageName"`
}

type IosAppStreamData struct {
	BundleID string `json:"bundleId"`
}

// ID retorna o identificador numérico do stream.
func (s DataStream) ID() string {
	parts := strings.Split(s.Name, "/")
	return parts[len(parts)-1]
}

// MeasurementKey retorna o identificador de medição conforme o tipo do
// stream: measurement ID para web, package para Android e bundle para iOS.
func (s DataStream) MeasurementKey() string {
	switch {
	case s.WebStreamData != nil:
		return s.WebStreamData.MeasurementID
	case s.AndroidAppStreamData != nil:
		return s.AndroidAppStreamData.PackageName
	case s.IosAppStreamData != nil:
		return s.IosAppStreamData.BundleID
	}
	return ""
}

// DefaultURI retorna a URI padrão para streams web.
func (s DataStream) DefaultURI() string {
	if s.WebStreamData != nil {
		return s.WebStreamData.DefaultURI
	}
	return ""
}
