package ga4

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	ga4domain "github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/domain"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/ga4client/mocks"
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

func TestSynchronizer_Sync_cenarioCompleto(t *testing.T) {
	// Uma conta com uma propriedade web: o resultado deve refletir cada
	// fase da varredura e as tabelas devem respeitar os cabeçalhos.
	sync, client, store := newSynchronizer(t)

	account := ga4domain.Account{
		Name:        "accounts/1",
		DisplayName: "Conta Principal",
		CreateTime:  "2023-01-10T12:00:00Z",
		UpdateTime:  "2024-02-20T08:30:00Z",
	}
	property := ga4domain.Property{
		Name:         "properties/10",
		DisplayName:  "Site Institucional",
		CurrencyCode: "BRL",
		TimeZone:     "America/Sao_Paulo",
		ServiceLevel: "GOOGLE_ANALYTICS_STANDARD",
		CreateTime:   "2023-03-01T00:00:00Z",
		UpdateTime:   "2024-01-15T10:00:00Z",
	}

	client.EXPECT().ListAccounts().Return([]ga4domain.Account{account}, nil)
	client.EXPECT().ListProperties("accounts/1").Return([]ga4domain.Property{property}, nil)
	client.EXPECT().ListCustomDimensions("properties/10").Return([]ga4domain.CustomDimension{
		{DisplayName: "Tipo de Usuário", ParameterName: "user_type", Scope: "USER"},
	}, nil)
	client.EXPECT().ListCustomMetrics("properties/10").Return([]ga4domain.CustomMetric{
		{DisplayName: "Pontuação", ParameterName: "score", MeasurementUnit: "STANDARD", Scope: "EVENT"},
	}, nil)
	client.EXPECT().ListDataStreams("properties/10").Return([]ga4domain.DataStream{
		{
			Name:        "properties/10/dataStreams/web-1",
			DisplayName: "Web Principal",
			Type:        "WEB_DATA_STREAM",
			WebStreamData: &ga4domain.WebStreamData{
				MeasurementID: "G-ABC123",
				DefaultURI:    "https://exemplo.com.br",
			},
		},
	}, nil)

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, 4, result.Records)
	assert.Equal(t, 1, result.Details["accounts"])
	assert.Equal(t, 1, result.Details["properties"])
	assert.Equal(t, 1, result.Details["customDimensions"])
	assert.Equal(t, 1, result.Details["customMetrics"])
	assert.Equal(t, 1, result.Details["dataStreams"])
	assert.Empty(t, result.Errors)

	headers, rows, err := store.ReadTable(storage.TableGA4Properties)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(headers))
	assert.Equal(t, "Site Institucional", rows[0][0])
	assert.Equal(t, "10", rows[0][1])
	assert.Equal(t, "Conta Principal", rows[0][3])
	assert.Equal(t, "https://analytics.google.com/analytics/web/#/p10", rows[0][11])

	_, streams, err := store.ReadTable(storage.TableGA4DataStreams)
	require.NoError(t, err)
	require.Len(t, streams, 1)
	assert.Equal(t, "web-1", streams[0][4])
	assert.Equal(t, "G-ABC123", streams[0][5])
	assert.Equal(t, "https://exemplo.com.br", streams[0][6])
}

func TestSynchronizer_Sync_filtroDePropriedades(t *testing.T) {
	sync, client, store := newSynchronizer(t)

	account := ga4domain.Account{Name: "accounts/1", DisplayName: "Conta"}
	properties := []ga4domain.Property{
		{Name: "properties/10", DisplayName: "Incluída"},
		{Name: "properties/20", DisplayName: "Excluída"},
	}

	client.EXPECT().ListAccounts().Return([]ga4domain.Account{account}, nil)
	client.EXPECT().ListProperties("accounts/1").Return(properties, nil)
	// As varreduras de sub-recursos só visitam a propriedade filtrada
	client.EXPECT().ListCustomDimensions("properties/10").Return(nil, nil)
	client.EXPECT().ListCustomMetrics("properties/10").Return(nil, nil)
	client.EXPECT().ListDataStreams("properties/10").Return(nil, nil)

	result := sync.Sync(&domain.AuditFilters{GA4Properties: []string{"10"}})

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, 1, result.Details["properties"])

	_, rows, err := store.ReadTable(storage.TableGA4Properties)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "10", rows[0][1])
}

func TestSynchronizer_Sync_filtroVazioMantemTudo(t *testing.T) {
	sync, client, _ := newSynchronizer(t)

	account := ga4domain.Account{Name: "accounts/1", DisplayName: "Conta"}
	client.EXPECT().ListAccounts().Return([]ga4domain.Account{account}, nil)
	client.EXPECT().ListProperties("accounts/1").Return([]ga4domain.Property{
		{Name: "properties/10"},
		{Name: "properties/20"},
	}, nil)
	client.EXPECT().ListCustomDimensions(gomock.Any()).Return(nil, nil).Times(2)
	client.EXPECT().ListCustomMetrics(gomock.Any()).Return(nil, nil).Times(2)
	client.EXPECT().ListDataStreams(gomock.Any()).Return(nil, nil).Times(2)

	result := sync.Sync(&domain.AuditFilters{})

	assert.Equal(t, 2, result.Details["properties"])
}

func TestSynchronizer_Sync_falhaDeContaIsolada(t *testing.T) {
	// A segunda conta falha: as propriedades da primeira continuam e a
	// falha vira aviso no resultado.
	sync, client, _ := newSynchronizer(t)

	accounts := []ga4domain.Account{
		{Name: "accounts/1", DisplayName: "Conta OK"},
		{Name: "accounts/2", DisplayName: "Conta Quebrada"},
	}

	client.EXPECT().ListAccounts().Return(accounts, nil)
	client.EXPECT().ListProperties("accounts/1").Return([]ga4domain.Property{{Name: "properties/10"}}, nil)
	client.EXPECT().ListProperties("accounts/2").Return(nil,
		domain.NewSyncError(domain.ErrKindTransport, domain.ServiceGA4, "HTTP 500 na chamada à API", nil))
	client.EXPECT().ListCustomDimensions("properties/10").Return(nil, nil)
	client.EXPECT().ListCustomMetrics("properties/10").Return(nil, nil)
	client.EXPECT().ListDataStreams("properties/10").Return(nil, nil)

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, 1, result.Details["properties"])
}

func TestSynchronizer_Sync_erroDeAutorizacaoComDica(t *testing.T) {
	sync, client, _ := newSynchronizer(t)

	client.EXPECT().ListAccounts().Return(nil,
		domain.NewSyncError(domain.ErrKindAuth, domain.ServiceGA4, "HTTP 403: permissão insuficiente", nil))

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusError, result.Status)
	assert.Equal(t, 0, result.Records)
	assert.Contains(t, result.Error, "Google Analytics Admin API")
	assert.GreaterOrEqual(t, result.Duration, time.Duration(0))
}
