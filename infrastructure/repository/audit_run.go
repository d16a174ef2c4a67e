package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"

	"github.com/addocu/stack-audit-api/infrastructure/database/postgres"
	"github.com/addocu/stack-audit-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const auditRunsTable = "audit_runs"

// AuditRunRepository guarda o histórico de execuções de auditoria.
type AuditRunRepository interface {
	Save(result *domain.AuditResult) error
	ListRecent(limit int) ([]*domain.AuditRunSummary, error)
}

type auditRunRepository struct {
	conn *postgres.Connection
}

func NewAuditRunRepository(conn *postgres.Connection) AuditRunRepository {
	return &auditRunRepository{
		conn: conn,
	}
}

func (r *auditRunRepository) Save(result *domain.AuditResult) error {
	status := domain.SyncStatusSuccess
	if !result.Success {
		status = domain.SyncStatusError
	}

	services := make([]string, 0, len(result.Services))
	for _, service := range result.Services {
		services = append(services, string(service))
	}

	detail, err := json.Marshal(result.Results)
	if err != nil {
		return fmt.Errorf("erro ao serializar detalhes da execução: %w", err)
	}

	query, args, err := squirrel.
		Insert(auditRunsTable).
		Columns("run_id", "services", "status", "records", "duration_ms", "error", "detail", "started_at", "created_at").
		Values(
			result.RunID,
			strings.Join(services, ","),
			string(status),
			result.TotalRecords,
			result.Duration.Milliseconds(),
			result.Error,
			detail,
			result.StartedAt,
			time.Now(),
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao gravar execução de auditoria: %w", err)
	}

	return nil
}

func (r *auditRunRepository) ListRecent(limit int) ([]*domain.AuditRunSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	query, args, err := squirrel.
		Select("run_id", "services", "status", "records", "duration_ms", "error", "started_at").
		From(auditRunsTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar execuções: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.AuditRunSummary, 0, limit)
	for rows.Next() {
		var summary domain.AuditRunSummary
		var durationMs int64

		if err := rows.Scan(
			&summary.RunID,
			&summary.Services,
			&summary.Status,
			&summary.Records,
			&durationMs,
			&summary.Error,
			&summary.StartedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao escanear execução: %w", err)
		}

		summary.Duration = time.Duration(durationMs) * time.Millisecond
		summaries = append(summaries, &summary)
	}

	return summaries, rows.Err()
}
