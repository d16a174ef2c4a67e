package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/log"
)

type stubLastSync struct {
	at map[domain.Service]time.Time
}

func (s stubLastSync) LastSync(userID string, service domain.Service) (time.Time, error) {
	return s.at[service], nil
}

func seedTables(t *testing.T, store *storage.MemStore) {
	t.Helper()

	require.NoError(t, store.WriteTable(storage.TableGA4Properties,
		[]string{"Property Name", "Property ID"},
		[][]string{
			{"Site Principal", "111"},
			{"Site Secundário", "222"},
		}, true))

	require.NoError(t, store.WriteTable(storage.TableGA4DataStreams,
		[]string{"Property Name", "Property ID", "Stream Name"},
		[][]string{
			{"Site Principal", "111", "web-1"},
		}, true))

	require.NoError(t, store.WriteTable(storage.TableGTMTags,
		[]string{"Container Name", "Container ID", "Tag Name", "Status", "Firing Triggers"},
		[][]string{
			{"Site A", "100", "GA4 Config", "Ativo", "1, 2"},
			{"Site A", "100", "Pixel Antigo", "Pausado", "Sem triggers"},
			{"Site B", "200", "Conversão", "Ativo", "3"},
		}, true))

	require.NoError(t, store.WriteTable(storage.TableLookerStudio,
		[]string{"Nome", "ID Asset", "Data de Exclusão"},
		[][]string{
			{"Relatório Vendas", "reports/abc", ""},
			{"Relatório Antigo", "reports/def", "15/03/2026"},
		}, true))
}

func findRow(rows [][]string, section, indicator string) []string {
	for _, row := range rows {
		if len(row) >= 2 && row[0] == section && row[1] == indicator {
			return row
		}
	}
	return nil
}

func TestGenerate(t *testing.T) {
	log.SetupTestLogger()

	t.Run("deve resumir serviços, KPIs e sinais de qualidade", func(t *testing.T) {
		store := storage.NewMemStore()
		seedTables(t, store)

		lastSync := stubLastSync{at: map[domain.Service]time.Time{
			domain.ServiceGA4: time.Date(2026, 3, 20, 10, 0, 0, 0, time.Local),
		}}

		reporter := NewReporter(store, lastSync, auditlog.NewLogger(store))

		results := map[domain.Service]*domain.SyncResult{
			domain.ServiceGA4: domain.NewSyncResult(domain.ServiceGA4),
		}

		require.NoError(t, reporter.Generate("user-1", results))

		headers, rows, err := store.ReadTable(storage.TableDashboard)
		require.NoError(t, err)
		assert.Equal(t, dashboardHeaders, headers)

		ga4 := findRow(rows, "Resumo", "Google Analytics 4")
		require.NotNil(t, ga4)
		// 2 propriedades + 1 stream, sem dimensões nem métricas
		assert.Equal(t, "3", ga4[2])
		assert.Contains(t, ga4[3], "SUCCESS")
		assert.Contains(t, ga4[3], "20/03/2026")

		gtm := findRow(rows, "Resumo", "Google Tag Manager")
		require.NotNil(t, gtm)
		assert.Equal(t, "3", gtm[2])
		assert.Contains(t, gtm[3], "Não auditado nesta execução")

		total := findRow(rows, "KPI", "Total de elementos")
		require.NotNil(t, total)
		assert.Equal(t, "8", total[2])

		containers := findRow(rows, "KPI", "Contêineres GTM únicos")
		require.NotNil(t, containers)
		assert.Equal(t, "2", containers[2])

		paused := findRow(rows, "Qualidade", "Tags pausadas")
		require.NotNil(t, paused)
		assert.Equal(t, "1", paused[2])

		noTrigger := findRow(rows, "Qualidade", "Tags sem trigger de disparo")
		require.NotNil(t, noTrigger)
		assert.Equal(t, "1", noTrigger[2])
		assert.Contains(t, noTrigger[3], "Pixel Antigo")

		noStreams := findRow(rows, "Qualidade", "Propriedades GA4 sem data streams")
		require.NotNil(t, noStreams)
		assert.Equal(t, "1", noStreams[2])
		assert.Contains(t, noStreams[3], "Site Secundário")

		trashed := findRow(rows, "Qualidade", "Relatórios Looker na lixeira")
		require.NotNil(t, trashed)
		assert.Equal(t, "1", trashed[2])

		// 4 problemas em 8 elementos
		health := findRow(rows, "Qualidade", "Health score")
		require.NotNil(t, health)
		assert.Equal(t, "50%", health[2])
	})

	t.Run("tabelas ausentes não devem impedir a geração", func(t *testing.T) {
		store := storage.NewMemStore()
		reporter := NewReporter(store, stubLastSync{}, auditlog.NewLogger(store))

		require.NoError(t, reporter.Generate("user-1", nil))

		_, rows, err := store.ReadTable(storage.TableDashboard)
		require.NoError(t, err)

		total := findRow(rows, "KPI", "Total de elementos")
		require.NotNil(t, total)
		assert.Equal(t, "0", total[2])

		health := findRow(rows, "Qualidade", "Health score")
		require.NotNil(t, health)
		assert.Equal(t, "100%", health[2])

		ga4 := findRow(rows, "Resumo", "Google Analytics 4")
		require.NotNil(t, ga4)
		assert.Contains(t, ga4[3], "N/A")
	})

	t.Run("serviço com erro deve expor a mensagem no resumo", func(t *testing.T) {
		store := storage.NewMemStore()
		reporter := NewReporter(store, stubLastSync{}, auditlog.NewLogger(store))

		failed := domain.NewSyncResult(domain.ServiceGTM)
		failed.Status = domain.SyncStatusError
		failed.Error = "quota excedida"

		require.NoError(t, reporter.Generate("user-1", map[domain.Service]*domain.SyncResult{
			domain.ServiceGTM: failed,
		}))

		_, rows, err := store.ReadTable(storage.TableDashboard)
		require.NoError(t, err)

		gtm := findRow(rows, "Resumo", "Google Tag Manager")
		require.NotNil(t, gtm)
		assert.Contains(t, gtm[3], "ERROR: quota excedida")
	})
}
