package domain

// Parameter é um parâmetro chave/valor de tags, variáveis e filtros.
type Parameter struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Tag é uma tag de um workspace GTM.
type Tag struct {
	Name              string      `json:"name"`
	TagID             string      `json:"tagId"`
	Type              string      `json:"type"`
	Paused            bool        `json:"paused"`
	FiringTriggerID   []string    `json:"firingTriggerId"`
	BlockingTriggerID []string    `json:"blockingTriggerId"`
	Parameter         []Parameter `json:"parameter"`
	Priority          *Parameter  `json:"priority"`
	TagFiringOption   string      `json:"tagFiringOption"`
	LiveOnly          bool        `json:"liveOnly"`
	Notes             string      `json:"notes"`
	Fingerprint       string      `json:"fingerprint"`
}

// Variable é uma variável de um workspace GTM.
type Variable struct {
	Name               string       `json:"name"`
	VariableID         string       `json:"variableId"`
	Type               string       `json:"type"`
	Parameter          []Parameter  `json:"parameter"`
	FormatValue        *FormatValue `json:"formatValue"`
	EnablingTriggerID  []string     `json:"enablingTriggerId"`
	DisablingTriggerID []string     `json:"disablingTriggerId"`
	Notes              string       `json:"notes"`
	Fingerprint        string       `json:"fingerprint"`
}

type FormatValue struct {
	CaseConversionType string `json:"caseConversionType"`
}

// Trigger é um acionador de um workspace GTM.
type Trigger struct {
	Name               string     `json:"name"`
	TriggerID          string     `json:"triggerId"`
	Type               string     `json:"type"`
	Filter             []Filter   `json:"filter"`
	WaitForTags        *Parameter `json:"waitForTags"`
	CheckValidation    *Parameter `json:"checkValidation"`
	WaitForTagsTimeout *Parameter `json:"waitForTagsTimeout"`
	EventName          *Parameter `json:"eventName"`
	Notes              string     `json:"notes"`
	Fingerprint        string     `json:"fingerprint"`
}

// Filter é uma cláusula de filtro de um trigger, composta pelo tipo de
// comparação e pelos parâmetros arg0/arg1.
type Filter struct {
	Type      string      `json:"type"`
	Parameter []Parameter `json:"parameter"`
}

// Arg retorna o valor do parâmetro com a chave informada, ou "N/A".
func (f Filter) Arg(key string) string {
	for _, p := range f.Parameter {
		if p.Key == key {
			return p.Value
		}
	}
	return "N/A"
}

// BoolValue interpreta o valor de um parâmetro booleano da API.
func (p *Parameter) BoolValue() bool {
	return p != nil && p.Value == "true"
}

// StringValue retorna o valor do parâmetro, ou vazio quando ausente.
func (p *Parameter) StringValue() string {
	if p == nil {
		return ""
	}
	return p.Value
}
