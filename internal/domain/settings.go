package domain

import "time"

// Chaves de configuração por usuário. Os valores são sempre strings; a
// conversão acontece ao montar AuditSettings no início de cada execução.
const (
	SettingSyncFrequency       = "ADDOCU_SYNC_FREQUENCY"
	SettingSyncGA4             = "ADDOCU_SYNC_GA4"
	SettingSyncGTM             = "ADDOCU_SYNC_GTM"
	SettingSyncLooker          = "ADDOCU_SYNC_LOOKER"
	SettingRequestTimeout      = "ADDOCU_REQUEST_TIMEOUT"
	SettingGA4PropertiesFilter = "ADDOCU_GA4_PROPERTIES_FILTER"
	SettingGTMContainersFilter = "ADDOCU_GTM_FILTER"
	SettingGTMWorkspacesFilter = "ADDOCU_GTM_WORKSPACES_FILTER"
	SettingAlertEmail          = "ADDOCU_ALERT_EMAIL"
	SettingAlertErrors         = "ADDOCU_ALERT_ERRORS"
	SettingLogLevel            = "ADDOCU_LOG_LEVEL"
	SettingLogRetention        = "ADDOCU_LOG_RETENTION"
	SettingLastSyncGA4         = "ADDOCU_LAST_SYNC_GA4"
	SettingLastSyncGTM         = "ADDOCU_LAST_SYNC_GTM"
	SettingLastSyncLooker      = "ADDOCU_LAST_SYNC_LOOKER"
)

// LastSyncKey devolve a chave de timestamp de última sincronização do serviço.
func LastSyncKey(service Service) string {
	switch service {
	case ServiceGA4:
		return SettingLastSyncGA4
	case ServiceGTM:
		return SettingLastSyncGTM
	case ServiceLooker:
		return SettingLastSyncLooker
	}
	return ""
}

// AuditSettings é a configuração de uma execução, carregada uma única vez
// do armazenamento de propriedades do usuário e passada explicitamente aos
// sincronizadores (nada de estado global consultado ad hoc).
type AuditSettings struct {
	SyncFrequency  string
	SyncGA4        bool
	SyncGTM        bool
	SyncLooker     bool
	RequestTimeout time.Duration
	GA4Properties  []string
	GTMContainers  []string
	GTMWorkspaces  []string
	AlertEmail     string
	AlertErrors    bool
	LogLevel       string
	LogRetention   int
}

// DefaultAuditSettings retorna os padrões do produto: todos os serviços
// habilitados, sincronização manual e retenção de logs de 30 dias.
func DefaultAuditSettings() *AuditSettings {
	return &AuditSettings{
		SyncFrequency:  "manual",
		SyncGA4:        true,
		SyncGTM:        true,
		SyncLooker:     true,
		RequestTimeout: 60 * time.Second,
		AlertErrors:    true,
		LogLevel:       "INFO",
		LogRetention:   30,
	}
}

// Filters materializa os filtros de escopo configurados.
func (s AuditSettings) Filters() AuditFilters {
	return AuditFilters{
		GA4Properties: s.GA4Properties,
		GTMContainers: s.GTMContainers,
		GTMWorkspaces: s.GTMWorkspaces,
	}
}

// Enabled informa se o serviço está habilitado para a auditoria completa.
func (s AuditSettings) Enabled(service Service) bool {
	switch service {
	case ServiceGA4:
		return s.SyncGA4
	case ServiceGTM:
		return s.SyncGTM
	case ServiceLooker:
		return s.SyncLooker
	}
	return false
}
