package auditing

import (
	"time"

	"github.com/addocu/stack-audit-api/internal/domain"
)

// Synchronizer é o contrato comum dos sincronizadores de serviço. O
// resultado sempre volta como dado, nunca como pânico ou erro não
// tratado.
type Synchronizer interface {
	Sync(filters *domain.AuditFilters) *domain.SyncResult
}

// DashboardReporter regenera o dashboard executivo a partir das tabelas
// recém-persistidas.
type DashboardReporter interface {
	Generate(userID string, results map[domain.Service]*domain.SyncResult) error
}

// SettingsStore carrega a configuração do usuário e registra os
// timestamps de última sincronização.
type SettingsStore interface {
	LoadAuditSettings(userID string) (*domain.AuditSettings, error)
	SaveLastSync(userID string, service domain.Service, at time.Time) error
}

// RunRecorder persiste o histórico de execuções.
type RunRecorder interface {
	Save(result *domain.AuditResult) error
}

// Auditor é a interface do coordenador de auditorias.
type Auditor interface {
	RunAudit(userID string, request domain.AuditRequest) *domain.AuditResult
	RunService(userID string, service domain.Service, filters *domain.AuditFilters) *domain.SyncResult
}
