package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/pkg/log"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

func init() {
	log.SetupTestLogger()
}

func TestLogger_FlushGravaLoteUnico(t *testing.T) {
	store := storage.NewMemStore()
	logger := NewLogger(store)

	logger.SyncStart("ga4")
	logger.Warning("ga4", "Propriedade ignorada pelo filtro", "properties/99")
	logger.SyncEnd("ga4", 42, 1500*time.Millisecond, "SUCCESS")

	assert.Equal(t, 3, logger.Pending())

	require.NoError(t, logger.Flush())
	assert.Equal(t, 0, logger.Pending())

	headers, rows, err := store.ReadTable(storage.TableLogs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Timestamp", "Nível", "Componente", "Mensagem", "Detalhes"}, headers)
	require.Len(t, rows, 3)

	// Toda linha tem exatamente a largura do cabeçalho
	for _, row := range rows {
		assert.Len(t, row, len(headers))
	}

	assert.Equal(t, LevelWarning, rows[1][1])
	assert.Equal(t, "properties/99", rows[1][4])
	assert.Contains(t, rows[2][3], "SUCCESS")
	assert.Contains(t, rows[2][4], "42 registros")
}

func TestLogger_FlushSemEventosNaoEscreve(t *testing.T) {
	store := storage.NewMemStore()
	logger := NewLogger(store)

	require.NoError(t, logger.Flush())

	count, err := store.RecordCount(storage.TableLogs)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLogger_CleanupOld(t *testing.T) {
	store := storage.NewMemStore()
	logger := NewLogger(store)

	now := time.Now()
	rows := [][]string{
		{utils.FormatTime(now.AddDate(0, 0, -40)), LevelInfo, "ga4", "evento antigo", ""},
		{utils.FormatTime(now.AddDate(0, 0, -10)), LevelInfo, "gtm", "evento recente", ""},
		{"timestamp inválido", LevelInfo, "looker", "linha preservada por segurança", ""},
	}
	require.NoError(t, store.WriteTable(storage.TableLogs, logHeaders, rows, true))

	removed, err := logger.CleanupOld(30)

	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, kept, err := store.ReadTable(storage.TableLogs)
	require.NoError(t, err)
	require.Len(t, kept, 2)
	assert.Equal(t, "evento recente", kept[0][3])
	assert.Equal(t, "linha preservada por segurança", kept[1][3])
}

func TestLogger_CleanupOld_diasInvalidos(t *testing.T) {
	logger := NewLogger(storage.NewMemStore())

	_, err := logger.CleanupOld(0)

	assert.Error(t, err)
}
