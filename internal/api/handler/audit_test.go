package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/internal/api/handler/router"
	"github.com/addocu/stack-audit-api/internal/domain"
)

type fakeAuditor struct {
	lastRequest domain.AuditRequest
	lastService domain.Service
	result      *domain.AuditResult
	serviceOut  *domain.SyncResult
}

func (f *fakeAuditor) RunAudit(userID string, request domain.AuditRequest) *domain.AuditResult {
	f.lastRequest = request
	return f.result
}

func (f *fakeAuditor) RunService(userID string, service domain.Service, filters *domain.AuditFilters) *domain.SyncResult {
	f.lastService = service
	return f.serviceOut
}

func newAuditRouter(auditor *fakeAuditor) router.Router {
	routes := []router.Route{
		{
			Path:    "/v1/audit/run",
			Method:  http.MethodPost,
			Handler: RunAudit(auditor),
		},
		{
			Path:    "/v1/audit/run/:service",
			Method:  http.MethodPost,
			Handler: RunServiceAudit(auditor),
		},
	}

	return router.New(router.WithRoutes(routes...))
}

func TestRunAuditHandler(t *testing.T) {
	t.Run("auditoria completa deve aceitar corpo vazio", func(t *testing.T) {
		auditor := &fakeAuditor{
			result: &domain.AuditResult{
				RunID:        "run-1",
				Success:      true,
				TotalRecords: 12,
				Duration:     3 * time.Second,
			},
		}
		rt := newAuditRouter(auditor)

		recorder := httptest.NewRecorder()
		rt.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/audit/run", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		response := AuditResponse{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, "run-1", response.RunID)
		assert.Equal(t, 12, response.RecordsProcessed)
		assert.Empty(t, auditor.lastRequest.Services)
	})

	t.Run("serviço desconhecido no corpo deve retornar 400", func(t *testing.T) {
		auditor := &fakeAuditor{result: &domain.AuditResult{}}
		rt := newAuditRouter(auditor)

		body := strings.NewReader(`{"services":["facebook"]}`)
		recorder := httptest.NewRecorder()
		rt.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/audit/run", body))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "VAL_004")
	})

	t.Run("auditoria de um serviço deve resolver o parâmetro da rota", func(t *testing.T) {
		auditor := &fakeAuditor{
			serviceOut: domain.NewSyncResult(domain.ServiceGTM),
		}
		auditor.serviceOut.Status = domain.SyncStatusSuccess
		auditor.serviceOut.Records = 7
		rt := newAuditRouter(auditor)

		recorder := httptest.NewRecorder()
		rt.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/audit/run/gtm", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, domain.ServiceGTM, auditor.lastService)

		response := AuditResponse{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.Success)
		assert.Equal(t, 7, response.RecordsProcessed)
	})

	t.Run("serviço desconhecido na rota deve retornar 400", func(t *testing.T) {
		auditor := &fakeAuditor{}
		rt := newAuditRouter(auditor)

		recorder := httptest.NewRecorder()
		rt.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/audit/run/facebook", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

type fakeRunLister struct {
	lastLimit int
	runs      []*domain.AuditRunSummary
	err       error
}

func (f *fakeRunLister) ListRecent(limit int) ([]*domain.AuditRunSummary, error) {
	f.lastLimit = limit
	return f.runs, f.err
}

func TestGetAuditRuns(t *testing.T) {
	t.Run("deve listar o histórico com limite padrão", func(t *testing.T) {
		lister := &fakeRunLister{
			runs: []*domain.AuditRunSummary{
				{RunID: "run-1", Status: "SUCCESS", Records: 12},
			},
		}

		recorder := httptest.NewRecorder()
		GetAuditRuns(lister)(recorder, httptest.NewRequest(http.MethodGet, "/v1/audit/runs", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 10, lister.lastLimit)

		response := AuditRunsResponse{}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.True(t, response.Success)
		require.Len(t, response.Runs, 1)
		assert.Equal(t, "run-1", response.Runs[0].RunID)
	})

	t.Run("limite explícito deve ser repassado", func(t *testing.T) {
		lister := &fakeRunLister{}

		recorder := httptest.NewRecorder()
		GetAuditRuns(lister)(recorder, httptest.NewRequest(http.MethodGet, "/v1/audit/runs?limit=3", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 3, lister.lastLimit)
	})

	t.Run("limite inválido deve retornar 400", func(t *testing.T) {
		lister := &fakeRunLister{}

		recorder := httptest.NewRecorder()
		GetAuditRuns(lister)(recorder, httptest.NewRequest(http.MethodGet, "/v1/audit/runs?limit=zero", nil))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
