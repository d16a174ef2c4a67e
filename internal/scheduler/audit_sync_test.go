package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/internal/config"
	"github.com/addocu/stack-audit-api/internal/domain"
)

type fakeAuditor struct {
	calls  chan string
	result *domain.AuditResult
}

func (f *fakeAuditor) RunAudit(userID string, request domain.AuditRequest) *domain.AuditResult {
	f.calls <- userID
	return f.result
}

func (f *fakeAuditor) RunService(userID string, service domain.Service, filters *domain.AuditFilters) *domain.SyncResult {
	return domain.NewSyncResult(service)
}

func newFakeAuditor(success bool) *fakeAuditor {
	return &fakeAuditor{
		calls: make(chan string, 1),
		result: &domain.AuditResult{
			RunID:        "run-agendada",
			Success:      success,
			TotalRecords: 10,
		},
	}
}

func appConfig(frequency string, enabled bool) *config.Config {
	return &config.Config{
		AuditSync: config.AuditSync{
			Frequency: frequency,
			DailyAt:   "03:00",
			UserID:    "default",
			Enabled:   enabled,
		},
	}
}

func TestAuditSyncService(t *testing.T) {
	t.Run("frequência manual não deve agendar nada", func(t *testing.T) {
		service := NewAuditSyncService(newFakeAuditor(true), appConfig("manual", true))

		require.NoError(t, service.Start(context.Background()))
		assert.False(t, service.Running())
	})

	t.Run("frequência desconhecida deve falhar na inicialização", func(t *testing.T) {
		service := NewAuditSyncService(newFakeAuditor(true), appConfig("hourly", true))

		err := service.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hourly")
	})

	t.Run("disparo manual deve executar a auditoria do usuário configurado", func(t *testing.T) {
		auditor := newFakeAuditor(true)
		service := NewAuditSyncService(auditor, appConfig("manual", false))

		service.TriggerManualSync()

		select {
		case userID := <-auditor.calls:
			assert.Equal(t, "default", userID)
		case <-time.After(2 * time.Second):
			t.Fatal("auditoria manual não foi executada")
		}

		// Aguardar a goroutine registrar o desfecho
		assert.Eventually(t, func() bool {
			status := service.GetStatus()
			return status["last_run_id"] == "run-agendada"
		}, 2*time.Second, 10*time.Millisecond)

		status := service.GetStatus()
		assert.Equal(t, true, status["last_sync_success"])
		assert.Equal(t, false, status["sync_running"])
	})
}
