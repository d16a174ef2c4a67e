package domain

import "time"

// Service identifica um serviço externo auditável.
type Service string

const (
	ServiceGA4    Service = "ga4"
	ServiceGTM    Service = "gtm"
	ServiceLooker Service = "looker"
)

// AllServices retorna os serviços na ordem fixa de execução da auditoria.
func AllServices() []Service {
	return []Service{ServiceGA4, ServiceGTM, ServiceLooker}
}

// ParseService valida um identificador de serviço vindo da API.
func ParseService(s string) (Service, bool) {
	switch Service(s) {
	case ServiceGA4, ServiceGTM, ServiceLooker:
		return Service(s), true
	case "lookerStudio", "looker_studio":
		// Alias aceito por compatibilidade com configurações antigas
		return ServiceLooker, true
	}
	return "", false
}

// SyncStatus representa o desfecho de uma sincronização.
type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "SUCCESS"
	SyncStatusError   SyncStatus = "ERROR"
)

// SyncResult é o resumo de uma sincronização de um serviço: criado no
// início da execução, preenchido incrementalmente e devolvido ao
// coordenador. Nunca é persistido como objeto, apenas resumido no
// dashboard e nos logs.
type SyncResult struct {
	Service  Service        `json:"service"`
	Status   SyncStatus     `json:"status"`
	Records  int            `json:"records"`
	Duration time.Duration  `json:"durationMs"`
	Details  map[string]int `json:"details,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// NewSyncResult cria um resultado vazio para o serviço informado.
func NewSyncResult(service Service) *SyncResult {
	return &SyncResult{
		Service: service,
		Status:  SyncStatusSuccess,
		Details: map[string]int{},
	}
}

// Fail marca o resultado como falho preservando a mensagem para o chamador.
func (r *SyncResult) Fail(err error, duration time.Duration) *SyncResult {
	r.Status = SyncStatusError
	r.Records = 0
	r.Duration = duration
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// AuditFilters são os filtros de escopo aplicáveis a uma auditoria.
type AuditFilters struct {
	GA4Properties []string `json:"ga4Properties,omitempty"`
	GTMContainers []string `json:"gtmContainers,omitempty"`
	GTMWorkspaces []string `json:"gtmWorkspaces,omitempty"`
}

// AuditRequest descreve uma auditoria solicitada pela API ou pelo agendador.
type AuditRequest struct {
	Services []Service    `json:"services"`
	Filters  AuditFilters `json:"filters"`
}

// AuditRunSummary é o resumo persistido de uma execução, usado no
// histórico consultável pela API.
type AuditRunSummary struct {
	RunID     string        `json:"runId"`
	Services  string        `json:"services"`
	Status    string        `json:"status"`
	Records   int           `json:"records"`
	Duration  time.Duration `json:"durationMs"`
	Error     string        `json:"error,omitempty"`
	StartedAt time.Time     `json:"startedAt"`
}

// AuditResult agrega os resultados de todos os serviços auditados em uma
// execução. O sucesso global é informativo: o status individual de cada
// serviço é sempre preservado em Results.
type AuditResult struct {
	RunID        string                  `json:"runId"`
	Success      bool                    `json:"success"`
	Services     []Service               `json:"services"`
	Results      map[Service]*SyncResult `json:"perServiceDetail"`
	TotalRecords int                     `json:"recordsProcessed"`
	Duration     time.Duration           `json:"durationMs"`
	Error        string                  `json:"error,omitempty"`
	StartedAt    time.Time               `json:"startedAt"`
}
