// Package auditlog acumula eventos de auditoria em memória e grava o
// lote de uma só vez na tabela LOGS ao final da execução, evitando uma
// escrita por evento durante a sincronização.
package auditlog

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/pkg/log"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

const (
	LevelInfo    = "INFO"
	LevelWarning = "WARN"
	LevelError   = "ERROR"
)

var logHeaders = []string{"Timestamp", "Nível", "Componente", "Mensagem", "Detalhes"}

type entry struct {
	timestamp time.Time
	level     string
	component string
	message   string
	details   string
}

// Logger é seguro para uso concorrente. Os eventos ficam no buffer até
// a chamada de Flush.
type Logger struct {
	mu     sync.Mutex
	buffer []entry
	store  storage.TableStore
	now    func() time.Time
}

func NewLogger(store storage.TableStore) *Logger {
	return &Logger{
		store: store,
		now:   time.Now,
	}
}

func (l *Logger) Event(component, message string, details ...string) {
	l.append(LevelInfo, component, message, details...)
}

func (l *Logger) Warning(component, message string, details ...string) {
	l.append(LevelWarning, component, message, details...)
}

func (l *Logger) Error(component, message string, details ...string) {
	l.append(LevelError, component, message, details...)
}

// SyncStart registra o início da sincronização de um serviço.
func (l *Logger) SyncStart(service string) {
	l.Event(service, fmt.Sprintf("Sincronização de %s iniciada", service))
}

// SyncEnd registra o término da sincronização com o total de registros
// e a duração da execução.
func (l *Logger) SyncEnd(service string, records int, duration time.Duration, status string) {
	l.Event(service,
		fmt.Sprintf("Sincronização de %s finalizada: %s", service, status),
		fmt.Sprintf("%d registros em %s", records, duration.Round(time.Millisecond)))
}

func (l *Logger) append(level, component, message string, details ...string) {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}

	l.mu.Lock()
	l.buffer = append(l.buffer, entry{
		timestamp: l.now(),
		level:     level,
		component: component,
		message:   message,
		details:   detail,
	})
	l.mu.Unlock()

	fields := log.Fields{"component": component}
	if detail != "" {
		fields["details"] = detail
	}

	switch level {
	case LevelError:
		log.L.WithFields(fields).Error(message)
	case LevelWarning:
		log.L.WithFields(fields).Warn(message)
	default:
		log.L.WithFields(fields).Info(message)
	}
}

// Pending retorna o número de eventos ainda não gravados.
func (l *Logger) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.buffer)
}

// Flush grava o buffer acumulado na tabela LOGS e o esvazia. Em caso de
// falha na escrita os eventos são mantidos para nova tentativa.
func (l *Logger) Flush() error {
	l.mu.Lock()
	pending := l.buffer
	l.buffer = nil
	l.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(pending))
	for _, e := range pending {
		rows = append(rows, []string{
			utils.FormatTime(e.timestamp),
			e.level,
			e.component,
			e.message,
			e.details,
		})
	}

	if err := l.store.AppendRows(storage.TableLogs, logHeaders, rows); err != nil {
		l.mu.Lock()
		l.buffer = append(pending, l.buffer...)
		l.mu.Unlock()

		return errors.Wrap(err, "erro ao gravar lote de logs de auditoria")
	}

	return nil
}

// CleanupOld remove da tabela LOGS as entradas mais antigas que o número
// de dias informado e retorna quantas linhas foram descartadas.
func (l *Logger) CleanupOld(days int) (int, error) {
	if days <= 0 {
		return 0, errors.New("o número de dias de retenção deve ser positivo")
	}

	headers, rows, err := l.store.ReadTable(storage.TableLogs)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao ler a tabela de logs")
	}

	if len(rows) == 0 {
		return 0, nil
	}

	cutoff := l.now().AddDate(0, 0, -days)
	kept := make([][]string, 0, len(rows))

	for _, row := range rows {
		timestamp, parseErr := utils.ParseSheetTime(row[0])
		if parseErr != nil || !timestamp.Before(cutoff) {
			kept = append(kept, row)
		}
	}

	removed := len(rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := l.store.WriteTable(storage.TableLogs, headers, kept, true); err != nil {
		return 0, errors.Wrap(err, "erro ao regravar a tabela de logs")
	}

	log.L.WithFields(log.Fields{
		"removed":       removed,
		"retentionDays": days,
	}).Info("Limpeza de logs concluída")

	return removed, nil
}
