package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/internal/scheduler"
	"github.com/addocu/stack-audit-api/internal/usecases/auditing"
	"github.com/addocu/stack-audit-api/pkg/apiErrors"
	"github.com/addocu/stack-audit-api/pkg/middleware"
)

// AuditStatusServices reúne as dependências dos endpoints de consulta.
type AuditStatusServices struct {
	Scheduler *scheduler.AuditSyncService
	Settings  LastSyncReader
	Runs      RunLister
}

// LastSyncReader consulta o timestamp de última sincronização por serviço.
type LastSyncReader interface {
	LastSync(userID string, service domain.Service) (time.Time, error)
}

// RunLister consulta o histórico de execuções de auditoria.
type RunLister interface {
	ListRecent(limit int) ([]*domain.AuditRunSummary, error)
}

// AuditRunRequest é o corpo aceito pelos endpoints de disparo.
type AuditRunRequest struct {
	Services []string            `json:"services"`
	Filters  domain.AuditFilters `json:"filters"`
}

// AuditResponse é a resposta padrão dos endpoints de auditoria.
type AuditResponse struct {
	Success          bool                                  `json:"success"`
	RunID            string                                `json:"runId,omitempty"`
	Error            string                                `json:"error,omitempty"`
	RecordsProcessed int                                   `json:"recordsProcessed"`
	DurationMs       int64                                 `json:"durationMs"`
	PerServiceDetail map[domain.Service]*domain.SyncResult `json:"perServiceDetail,omitempty"`
}

// RunAudit dispara uma auditoria completa ou de um subconjunto de serviços
func RunAudit(auditor auditing.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunAudit")

		request, err := decodeAuditRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", err.Error())
			return
		}

		services := make([]domain.Service, 0, len(request.Services))
		for _, raw := range request.Services {
			service, ok := domain.ParseService(raw)
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrUnknownService,
					"Serviço de auditoria desconhecido: "+raw, nil)
				return
			}
			services = append(services, service)
		}

		result := auditor.RunAudit(requestUserID(r), domain.AuditRequest{
			Services: services,
			Filters:  request.Filters,
		})

		writeJSON(w, AuditResponse{
			Success:          result.Success,
			RunID:            result.RunID,
			Error:            result.Error,
			RecordsProcessed: result.TotalRecords,
			DurationMs:       result.Duration.Milliseconds(),
			PerServiceDetail: result.Results,
		})
	}
}

// RunServiceAudit dispara a auditoria de um único serviço
func RunServiceAudit(auditor auditing.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunServiceAudit")

		raw := httprouter.ParamsFromContext(r.Context()).ByName("service")
		service, ok := domain.ParseService(raw)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrUnknownService,
				"Serviço de auditoria desconhecido: "+raw, nil)
			return
		}

		request, err := decodeAuditRequest(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", err.Error())
			return
		}

		result := auditor.RunService(requestUserID(r), service, &request.Filters)

		writeJSON(w, AuditResponse{
			Success:          result.Status == domain.SyncStatusSuccess,
			Error:            result.Error,
			RecordsProcessed: result.Records,
			DurationMs:       result.Duration.Milliseconds(),
			PerServiceDetail: map[domain.Service]*domain.SyncResult{service: result},
		})
	}
}

// GetAuditStatus retorna o status do agendador e os timestamps de última
// sincronização do usuário autenticado
func GetAuditStatus(services AuditStatusServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetAuditStatus")

		lastSync := map[domain.Service]any{}
		for _, service := range domain.AllServices() {
			at, err := services.Settings.LastSync(requestUserID(r), service)
			if err != nil || at.IsZero() {
				lastSync[service] = nil
				continue
			}
			lastSync[service] = at.UnixMilli()
		}

		status := map[string]any{
			"scheduler": services.Scheduler.GetStatus(),
			"lastSync":  lastSync,
		}

		writeJSON(w, status)
	}
}

// AuditRunsResponse lista as execuções mais recentes.
type AuditRunsResponse struct {
	Success bool                      `json:"success"`
	Runs    []*domain.AuditRunSummary `json:"runs"`
}

// GetAuditRuns retorna o histórico das execuções mais recentes
func GetAuditRuns(runs RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetAuditRuns")

		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat,
					"O limite deve ser um inteiro maior que zero", nil)
				return
			}
			limit = parsed
		}

		summaries, err := runs.ListRecent(limit)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation,
				"Erro ao consultar o histórico de auditorias", err.Error())
			return
		}

		writeJSON(w, AuditRunsResponse{
			Success: true,
			Runs:    summaries,
		})
	}
}

// decodeAuditRequest aceita corpo vazio como requisição sem filtros.
func decodeAuditRequest(r *http.Request) (*AuditRunRequest, error) {
	request := &AuditRunRequest{}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return request, nil
	}

	if err := json.Unmarshal(body, request); err != nil {
		return nil, err
	}
	return request, nil
}

// requestUserID extrai o identificador do usuário autenticado. Sem
// claims no contexto a configuração padrão é usada.
func requestUserID(r *http.Request) string {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok || claims.UserID == "" {
		return "default"
	}
	return claims.UserID
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Warn("Erro ao serializar resposta")
	}
}
