// Package auditing implementa o coordenador de auditorias: executa os
// sincronizadores selecionados em ordem fixa, agrega os resultados,
// regenera o dashboard e descarrega o log em lote uma única vez por
// execução.
package auditing

import (
	"fmt"
	"time"

	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/log"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

const component = "AUDIT"

type Service struct {
	synchronizers map[domain.Service]Synchronizer
	settings      SettingsStore
	runs          RunRecorder
	dashboard     DashboardReporter
	audit         *auditlog.Logger
	now           func() time.Time
}

func NewService(
	synchronizers map[domain.Service]Synchronizer,
	settings SettingsStore,
	runs RunRecorder,
	dashboard DashboardReporter,
	audit *auditlog.Logger,
) Auditor {
	return &Service{
		synchronizers: synchronizers,
		settings:      settings,
		runs:          runs,
		dashboard:     dashboard,
		audit:         audit,
		now:           time.Now,
	}
}

// RunAudit executa a auditoria dos serviços solicitados. Os serviços
// rodam sequencialmente na ordem fixa GA4, GTM, Looker Studio; a falha
// de um não impede os demais. O desfecho sempre volta como dado.
func (s *Service) RunAudit(userID string, request domain.AuditRequest) *domain.AuditResult {
	startedAt := s.now()

	result := &domain.AuditResult{
		StartedAt: startedAt,
		Results:   make(map[domain.Service]*domain.SyncResult),
	}

	runID, err := utils.GenerateRunID()
	if err != nil {
		result.Error = fmt.Sprintf("erro ao gerar identificador da execução: %v", err)
		return result
	}
	result.RunID = runID

	defer s.flushLogs()

	settings, err := s.settings.LoadAuditSettings(userID)
	if err != nil {
		s.audit.Error(component, "Falha ao carregar configurações do usuário", err.Error())
		result.Error = err.Error()
		result.Duration = s.now().Sub(startedAt)
		return result
	}

	services := s.resolveServices(request.Services, settings)
	if len(services) == 0 {
		result.Error = "nenhum serviço habilitado para auditoria"
		result.Duration = s.now().Sub(startedAt)
		return result
	}
	result.Services = services

	filters := mergeFilters(settings.Filters(), &request.Filters)
	if err := ValidateFilters(filters); err != nil {
		result.Error = err.Error()
		result.Duration = s.now().Sub(startedAt)
		return result
	}

	s.audit.Event(component, fmt.Sprintf("Iniciando auditoria %s: %s", runID, joinServices(services)))

	success := true
	for _, service := range services {
		syncResult := s.runSynchronizer(userID, service, filters)
		result.Results[service] = syncResult
		result.TotalRecords += syncResult.Records

		if syncResult.Status != domain.SyncStatusSuccess {
			success = false
		}
	}
	result.Success = success

	if s.dashboard != nil {
		if err := s.dashboard.Generate(userID, result.Results); err != nil {
			s.audit.Warning(component, "Falha ao regenerar o dashboard", err.Error())
		}
	}

	result.Duration = s.now().Sub(startedAt)

	s.audit.Event(component,
		fmt.Sprintf("Auditoria %s concluída em %s", runID, result.Duration.Round(time.Second)),
		fmt.Sprintf("%d registros processados", result.TotalRecords))

	if s.runs != nil {
		if err := s.runs.Save(result); err != nil {
			log.L.WithError(err).Warn("Falha ao gravar histórico da execução")
		}
	}

	return result
}

// RunService executa a auditoria de um único serviço, sem regenerar o
// dashboard completo.
func (s *Service) RunService(userID string, service domain.Service, filters *domain.AuditFilters) *domain.SyncResult {
	defer s.flushLogs()

	settings, err := s.settings.LoadAuditSettings(userID)
	if err != nil {
		result := domain.NewSyncResult(service)
		return result.Fail(err, 0)
	}

	merged := mergeFilters(settings.Filters(), filters)
	if err := ValidateFilters(merged); err != nil {
		result := domain.NewSyncResult(service)
		return result.Fail(err, 0)
	}

	return s.runSynchronizer(userID, service, merged)
}

func (s *Service) runSynchronizer(userID string, service domain.Service, filters *domain.AuditFilters) *domain.SyncResult {
	synchronizer, ok := s.synchronizers[service]
	if !ok {
		result := domain.NewSyncResult(service)
		return result.Fail(fmt.Errorf("nenhum sincronizador registrado para o serviço %s", service), 0)
	}

	result := synchronizer.Sync(filters)

	if result.Status == domain.SyncStatusSuccess {
		if err := s.settings.SaveLastSync(userID, service, s.now()); err != nil {
			log.L.WithFields(log.Fields{"service": service}).
				WithError(err).Warn("Falha ao registrar timestamp de última sincronização")
		}
	}

	return result
}

// resolveServices devolve os serviços a auditar na ordem fixa de
// execução. Pedido vazio usa os serviços habilitados na configuração.
func (s *Service) resolveServices(requested []domain.Service, settings *domain.AuditSettings) []domain.Service {
	if len(requested) == 0 {
		enabled := make([]domain.Service, 0, 3)
		for _, service := range domain.AllServices() {
			if settings.Enabled(service) {
				enabled = append(enabled, service)
			}
		}
		return enabled
	}

	selected := make(map[domain.Service]bool, len(requested))
	for _, service := range requested {
		selected[service] = true
	}

	ordered := make([]domain.Service, 0, len(selected))
	for _, service := range domain.AllServices() {
		if selected[service] {
			ordered = append(ordered, service)
		}
	}

	return ordered
}

func (s *Service) flushLogs() {
	if err := s.audit.Flush(); err != nil {
		log.L.WithError(err).Warn("Falha ao descarregar o log de auditoria")
	}
}

func joinServices(services []domain.Service) string {
	out := ""
	for i, service := range services {
		if i > 0 {
			out += ", "
		}
		out += string(service)
	}
	return out
}
