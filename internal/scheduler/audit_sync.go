package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/addocu/stack-audit-api/internal/config"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/internal/usecases/auditing"
)

// AuditSyncConfig representa a configuração do agendador de auditorias
type AuditSyncConfig struct {
	Frequency string
	DailyAt   string
	UserID    string
	Enabled   bool
}

// AuditSyncService gerencia o agendamento e execução das auditorias periódicas
type AuditSyncService struct {
	scheduler           *gocron.Scheduler
	config              AuditSyncConfig
	auditor             auditing.Auditor
	syncRunning         bool
	syncMutex           sync.Mutex
	lastRunID           string
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncSuccess     bool
}

// NewAuditSyncService cria uma nova instância do serviço de auditorias agendadas
func NewAuditSyncService(auditor auditing.Auditor, appConfig *config.Config) *AuditSyncService {
	syncConfig := AuditSyncConfig{
		Frequency: strings.ToLower(appConfig.AuditSync.Frequency),
		DailyAt:   appConfig.AuditSync.DailyAt,
		UserID:    appConfig.AuditSync.UserID,
		Enabled:   appConfig.AuditSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"frequency":    syncConfig.Frequency,
		"daily_at":     syncConfig.DailyAt,
		"user_id":      syncConfig.UserID,
		"sync_enabled": syncConfig.Enabled,
	}).Info("Configuração do agendador de auditorias carregada")

	return &AuditSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		auditor:     auditor,
		syncRunning: false,
	}
}

// Start inicia o agendador conforme a frequência configurada
func (s *AuditSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled || s.config.Frequency == "manual" {
		logrus.Info("Auditoria agendada desabilitada, execuções apenas manuais")
		return nil
	}

	var err error
	switch s.config.Frequency {
	case "daily":
		_, err = s.scheduler.Every(1).Day().At(s.config.DailyAt).Do(func() {
			s.runScheduledAudit()
		})
	case "weekly":
		_, err = s.scheduler.Every(1).Week().Monday().At(s.config.DailyAt).Do(func() {
			s.runScheduledAudit()
		})
	default:
		return fmt.Errorf("frequência de auditoria desconhecida: %s", s.config.Frequency)
	}
	if err != nil {
		return fmt.Errorf("erro ao agendar auditoria periódica: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"frequency": s.config.Frequency,
		"at":        s.config.DailyAt,
	}).Info("Iniciando agendador de auditorias")

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de auditorias")
		s.scheduler.Stop()
	}()

	return nil
}

// runScheduledAudit executa uma auditoria completa dos serviços habilitados
func (s *AuditSyncService) runScheduledAudit() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Auditoria já em andamento, ignorando execução agendada")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.WithField("user_id", s.config.UserID).Info("Iniciando auditoria agendada")

	result := s.auditor.RunAudit(s.config.UserID, domain.AuditRequest{})

	s.lastRunID = result.RunID
	s.lastSyncSuccess = result.Success
	s.lastSyncCompletedAt = time.Now()

	entry := logrus.WithFields(logrus.Fields{
		"run_id":   result.RunID,
		"records":  result.TotalRecords,
		"duration": result.Duration.String(),
		"success":  result.Success,
	})

	if result.Success {
		entry.Info("Auditoria agendada concluída")
	} else {
		entry.WithField("error", result.Error).Error("Auditoria agendada concluída com erros")
	}
}

// TriggerManualSync inicia manualmente uma auditoria completa
func (s *AuditSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Auditoria já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando auditoria manual")
	go s.runScheduledAudit()
}

// Running informa se há auditoria em andamento
func (s *AuditSyncService) Running() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	return s.syncRunning
}

// GetStatus retorna o status atual do agendador
func (s *AuditSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_frequency":         s.config.Frequency,
		"sync_daily_at":          s.config.DailyAt,
		"sync_running":           s.syncRunning,
		"last_run_id":            s.lastRunID,
		"last_sync_success":      s.lastSyncSuccess,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
