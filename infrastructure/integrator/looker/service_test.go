package looker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	lookerdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/looker/domain"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/looker/lookerclient/mocks"
	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

func newSynchronizer(t *testing.T) (*Synchronizer, *mocks.MockClient, *storage.MemStore) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	store := storage.NewMemStore()
	audit := auditlog.NewLogger(store)

	return NewSynchronizer(client, store, audit, Pauses{}), client, store
}

func TestSynchronizer_Sync_paginacao(t *testing.T) {
	sync, client, store := newSynchronizer(t)

	pageOne := []lookerdomain.Asset{
		{Name: "reports/abc", Title: "Relatório A"},
		{Name: "reports/def", Title: "Relatório B"},
	}
	pageTwo := []lookerdomain.Asset{
		{Name: "reports/ghi", Title: "Relatório C", IsPublic: true},
	}

	client.EXPECT().SearchReports("").Return(pageOne, "token-pagina-2", nil)
	client.EXPECT().SearchReports("token-pagina-2").Return(pageTwo, "", nil)

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, 2, result.Details["pages"])

	headers, rows, err := store.ReadTable(storage.TableLookerStudio)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, len(headers))
	}

	assert.Equal(t, "Relatório A", rows[0][0])
	assert.Equal(t, "https://lookerstudio.google.com/reporting/abc", rows[0][15])
	assert.Equal(t, "Sim", rows[2][10])
	assert.Equal(t, "Público", rows[2][22])
}

func TestSynchronizer_Sync_limiteDePaginas(t *testing.T) {
	// A API devolve sempre um próximo token: a varredura deve parar no
	// limite de páginas e registrar o aviso no log de auditoria.
	sync, client, store := newSynchronizer(t)

	client.EXPECT().SearchReports(gomock.Any()).Times(maxPages).
		DoAndReturn(func(pageToken string) ([]lookerdomain.Asset, string, error) {
			return []lookerdomain.Asset{{Name: fmt.Sprintf("reports/%s-x", pageToken), Title: "Relatório"}}, "proxima", nil
		})

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, maxPages, result.Details["pages"])
	assert.Equal(t, maxPages, result.Records)

	require.NoError(t, sync.audit.Flush())
	_, logRows, err := store.ReadTable(storage.TableLogs)
	require.NoError(t, err)

	found := false
	for _, row := range logRows {
		if row[1] == auditlog.LevelWarning && row[2] == component {
			found = true
		}
	}
	assert.True(t, found, "a interrupção por limite de páginas deve gerar um aviso")
}

func TestSynchronizer_Sync_falhaDePaginaEhFatal(t *testing.T) {
	sync, client, _ := newSynchronizer(t)

	client.EXPECT().SearchReports("").Return([]lookerdomain.Asset{{Name: "reports/abc"}}, "token", nil)
	client.EXPECT().SearchReports("token").Return(nil, "",
		domain.NewSyncError(domain.ErrKindMalformed, domain.ServiceLooker,
			"a API retornou HTML em vez de JSON, verifique a autorização e o endpoint", nil))

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusError, result.Status)
	assert.Equal(t, 0, result.Records)
	assert.Contains(t, result.Error, "HTML")
}

func TestAssetRow_camposDerivados(t *testing.T) {
	asset := lookerdomain.Asset{
		Name:       "reports/xyz",
		Title:      "Painel Executivo",
		CreateTime: "2024-01-01T00:00:00Z",
		UpdateTime: "2024-05-01T00:00:00Z",
		TrashTime:  "2024-06-01T00:00:00Z",
		Owner:      lookerdomain.Owner{Email: "ana@exemplo.com", DisplayName: "Ana"},
		Tags:       []string{"vendas", "executivo"},
	}

	row := assetRow(asset)

	require.Len(t, row, len(lookerHeaders))
	assert.Equal(t, `["vendas","executivo"]`, row[12])
	assert.Equal(t, "[]", row[19])
	assert.Contains(t, row[22], "Excluído")
	assert.Contains(t, row[22], "Modificado")
}
