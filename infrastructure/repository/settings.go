// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/spf13/cast"

	"github.com/addocu/stack-audit-api/infrastructure/database/postgres"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

const settingsTable = "audit_settings"

// SettingsRepository guarda a configuração de auditoria por usuário como
// pares chave/valor, sempre com valores em texto.
type SettingsRepository interface {
	Get(userID, key string) (string, error)
	Set(userID, key, value string) error
	GetAll(userID string) (map[string]string, error)
	LoadAuditSettings(userID string) (*domain.AuditSettings, error)
	SaveLastSync(userID string, service domain.Service, at time.Time) error
	LastSync(userID string, service domain.Service) (time.Time, error)
}

type settingsRepository struct {
	conn *postgres.Connection
}

func NewSettingsRepository(conn *postgres.Connection) SettingsRepository {
	return &settingsRepository{
		conn: conn,
	}
}

func (r *settingsRepository) Get(userID, key string) (string, error) {
	query, args, err := squirrel.
		Select("value").
		From(settingsTable).
		Where(squirrel.Eq{"user_id": userID, "key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("erro ao construir a query: %w", err)
	}

	var value string
	if err := r.conn.QueryRow(query, args...).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("erro ao consultar configuração %s: %w", key, err)
	}

	return value, nil
}

func (r *settingsRepository) Set(userID, key, value string) error {
	query, args, err := squirrel.
		Insert(settingsTable).
		Columns("user_id", "key", "value", "updated_at").
		Values(userID, key, value, time.Now()).
		Suffix("ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao gravar configuração %s: %w", key, err)
	}

	return nil
}

func (r *settingsRepository) GetAll(userID string) (map[string]string, error) {
	query, args, err := squirrel.
		Select("key", "value").
		From(settingsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar configurações: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("erro ao escanear configuração: %w", err)
		}
		settings[key] = value
	}

	return settings, rows.Err()
}

// LoadAuditSettings materializa o mapa de configurações em uma struct
// tipada, carregada uma única vez no início de cada auditoria. Valores
// ausentes assumem os padrões do produto.
func (r *settingsRepository) LoadAuditSettings(userID string) (*domain.AuditSettings, error) {
	values, err := r.GetAll(userID)
	if err != nil {
		return nil, err
	}

	settings := domain.DefaultAuditSettings()

	if v, ok := values[domain.SettingSyncFrequency]; ok {
		settings.SyncFrequency = v
	}
	if v, ok := values[domain.SettingSyncGA4]; ok {
		settings.SyncGA4 = cast.ToBool(v)
	}
	if v, ok := values[domain.SettingSyncGTM]; ok {
		settings.SyncGTM = cast.ToBool(v)
	}
	if v, ok := values[domain.SettingSyncLooker]; ok {
		settings.SyncLooker = cast.ToBool(v)
	}
	if v, ok := values[domain.SettingRequestTimeout]; ok {
		settings.RequestTimeout = time.Duration(cast.ToInt(v)) * time.Second
	}
	if v, ok := values[domain.SettingGA4PropertiesFilter]; ok {
		settings.GA4Properties = splitFilter(v)
	}
	if v, ok := values[domain.SettingGTMContainersFilter]; ok {
		settings.GTMContainers = splitFilter(v)
	}
	if v, ok := values[domain.SettingGTMWorkspacesFilter]; ok {
		settings.GTMWorkspaces = splitFilter(v)
	}
	if v, ok := values[domain.SettingAlertEmail]; ok {
		settings.AlertEmail = v
	}
	if v, ok := values[domain.SettingAlertErrors]; ok {
		settings.AlertErrors = cast.ToBool(v)
	}
	if v, ok := values[domain.SettingLogLevel]; ok {
		settings.LogLevel = v
	}
	if v, ok := values[domain.SettingLogRetention]; ok {
		settings.LogRetention = cast.ToInt(v)
	}

	return settings, nil
}

// SaveLastSync grava o timestamp da última sincronização do serviço em
// epoch de milissegundos, sempre como texto.
func (r *settingsRepository) SaveLastSync(userID string, service domain.Service, at time.Time) error {
	return r.Set(userID, domain.LastSyncKey(service), cast.ToString(at.UnixMilli()))
}

func (r *settingsRepository) LastSync(userID string, service domain.Service) (time.Time, error) {
	value, err := r.Get(userID, domain.LastSyncKey(service))
	if err != nil {
		return time.Time{}, err
	}

	if value == "" {
		return time.Time{}, nil
	}

	return time.UnixMilli(cast.ToInt64(value)), nil
}

// splitFilter interpreta as listas separadas por vírgula das chaves de
// filtro de escopo.
func splitFilter(value string) []string {
	return utils.SplitCSV(value)
}
