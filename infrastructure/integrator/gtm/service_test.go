package gtm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	gtmdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/domain"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/gtmclient/mocks"
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

func container(id, publicID, name string) gtmdomain.Container {
	return gtmdomain.Container{
		AccountID:   "1",
		ContainerID: id,
		PublicID:    publicID,
		Name:        name,
	}
}

func expectWorkspaceResources(client *mocks.MockClient, path string, tags []gtmdomain.Tag) {
	client.EXPECT().ListTags(path).Return(tags, nil)
	client.EXPECT().ListVariables(path).Return(nil, nil)
	client.EXPECT().ListTriggers(path).Return(nil, nil)
}

func TestSynchronizer_Sync_falhaDeContenedorIsolada(t *testing.T) {
	// O contêiner do meio falha na listagem de workspaces: as tags dos
	// contêineres 1 e 3 devem estar na tabela e o erro deve aparecer
	// uma única vez no resultado.
	sync, client, store := newSynchronizer(t)

	containers := []gtmdomain.Container{
		container("10", "GTM-AAA", "Site A"),
		container("20", "GTM-BBB", "Site B"),
		container("30", "GTM-CCC", "Site C"),
	}

	client.EXPECT().ListAccounts().Return([]gtmdomain.Account{{AccountID: "1", Name: "Conta"}}, nil)
	client.EXPECT().ListContainers("1").Return(containers, nil)

	wsA := []gtmdomain.Workspace{{Path: "accounts/1/containers/10/workspaces/1", Name: "Default Workspace"}}
	wsC := []gtmdomain.Workspace{{Path: "accounts/1/containers/30/workspaces/1", Name: "Default Workspace"}}

	client.EXPECT().ListWorkspaces(gomock.Any()).Times(3).
		DoAndReturn(func(c gtmdomain.Container) ([]gtmdomain.Workspace, error) {
			switch c.Name {
			case "Site A":
				return wsA, nil
			case "Site C":
				return wsC, nil
			default:
				return nil, domain.NewSyncError(domain.ErrKindTransport, domain.ServiceGTM,
					"HTTP 500 na chamada à API", nil)
			}
		})

	expectWorkspaceResources(client, wsA[0].Path, []gtmdomain.Tag{{Name: "Tag A", TagID: "1", Type: "html"}})
	expectWorkspaceResources(client, wsC[0].Path, []gtmdomain.Tag{{Name: "Tag C", TagID: "2", Type: "html"}})

	result := sync.Sync(nil)

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, 2, result.Details["containersProcessed"])
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Site B")

	_, rows, err := store.ReadTable(storage.TableGTMTags)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tag A", rows[0][3])
	assert.Equal(t, "Tag C", rows[1][3])
}

func TestSynchronizer_Sync_filtroDeContenedores(t *testing.T) {
	sync, client, store := newSynchronizer(t)

	containers := []gtmdomain.Container{
		container("10", "GTM-AAA", "Incluído"),
		container("20", "GTM-BBB", "Excluído"),
	}

	client.EXPECT().ListAccounts().Return([]gtmdomain.Account{{AccountID: "1", Name: "Conta"}}, nil)
	client.EXPECT().ListContainers("1").Return(containers, nil)

	ws := []gtmdomain.Workspace{{Path: "accounts/1/containers/10/workspaces/1", Name: "Default Workspace"}}
	client.EXPECT().ListWorkspaces(gomock.Any()).Return(ws, nil).Times(1)
	expectWorkspaceResources(client, ws[0].Path, []gtmdomain.Tag{{Name: "Tag", TagID: "1"}})

	result := sync.Sync(&domain.AuditFilters{GTMContainers: []string{"gtm-aaa"}})

	assert.Equal(t, domain.SyncStatusSuccess, result.Status)
	assert.Equal(t, 1, result.Details["containersProcessed"])

	_, rows, err := store.ReadTable(storage.TableGTMTags)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSynchronizer_Sync_execucaoRepetidaNaoDuplicaLinhas(t *testing.T) {
	// Duas execuções seguidas sobre o mesmo inventário devem deixar as
	// tabelas idênticas: a escrita limpa e regrava, nunca acumula.
	sync, client, store := newSynchronizer(t)

	containers := []gtmdomain.Container{
		container("10", "GTM-AAA", "Site A"),
		container("20", "GTM-BBB", "Site B"),
	}
	wsA := []gtmdomain.Workspace{{Path: "accounts/1/containers/10/workspaces/1", Name: "Default Workspace"}}
	wsB := []gtmdomain.Workspace{{Path: "accounts/1/containers/20/workspaces/1", Name: "Default Workspace"}}

	client.EXPECT().ListAccounts().Return([]gtmdomain.Account{{AccountID: "1", Name: "Conta"}}, nil).Times(2)
	client.EXPECT().ListContainers("1").Return(containers, nil).Times(2)
	client.EXPECT().ListWorkspaces(gomock.Any()).Times(4).
		DoAndReturn(func(c gtmdomain.Container) ([]gtmdomain.Workspace, error) {
			if c.Name == "Site A" {
				return wsA, nil
			}
			return wsB, nil
		})

	client.EXPECT().ListTags(wsA[0].Path).Return([]gtmdomain.Tag{{Name: "Tag A", TagID: "1", Type: "html"}}, nil).Times(2)
	client.EXPECT().ListTags(wsB[0].Path).Return([]gtmdomain.Tag{{Name: "Tag B", TagID: "2", Type: "html"}}, nil).Times(2)
	client.EXPECT().ListVariables(gomock.Any()).Return(nil, nil).Times(4)
	client.EXPECT().ListTriggers(gomock.Any()).Return(nil, nil).Times(4)

	first := sync.Sync(nil)
	require.Equal(t, domain.SyncStatusSuccess, first.Status)

	firstHeaders, firstRows, err := store.ReadTable(storage.TableGTMTags)
	require.NoError(t, err)
	require.Len(t, firstRows, 2)

	second := sync.Sync(nil)
	require.Equal(t, domain.SyncStatusSuccess, second.Status)
	assert.Equal(t, first.Records, second.Records)

	secondHeaders, secondRows, err := store.ReadTable(storage.TableGTMTags)
	require.NoError(t, err)
	assert.Equal(t, firstHeaders, secondHeaders)
	assert.Equal(t, firstRows, secondRows)
}

func TestSelectWorkspaces(t *testing.T) {
	workspaces := []gtmdomain.Workspace{
		{Name: "Default Workspace"},
		{Name: "QA"},
		{Name: "Staging"},
	}

	tests := []struct {
		name     string
		filter   []string
		expected []string
	}{
		{
			name:     "sem filtro seleciona somente o workspace padrão",
			filter:   nil,
			expected: []string{"Default Workspace"},
		},
		{
			name:     "filtro casa por substring sem diferenciar maiúsculas",
			filter:   []string{"qa"},
			expected: []string{"QA"},
		},
		{
			name:     "filtro sem coincidência cai no workspace padrão",
			filter:   []string{"producao"},
			expected: []string{"Default Workspace"},
		},
		{
			name:     "múltiplos termos selecionam múltiplos workspaces",
			filter:   []string{"qa", "staging"},
			expected: []string{"QA", "Staging"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := selectWorkspaces(workspaces, tt.filter)

			names := make([]string, 0, len(selected))
			for _, ws := range selected {
				names = append(names, ws.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSelectWorkspaces_semWorkspacePadraoUsaOPrimeiro(t *testing.T) {
	workspaces := []gtmdomain.Workspace{
		{Name: "Sandbox"},
		{Name: "QA"},
	}

	selected := selectWorkspaces(workspaces, nil)

	require.Len(t, selected, 1)
	assert.Equal(t, "Sandbox", selected[0].Name)
}

func TestTagRow(t *testing.T) {
	tag := gtmdomain.Tag{
		Name:              "GA4 - Pageview",
		TagID:             "7",
		Type:              "gaawe",
		Paused:            true,
		BlockingTriggerID: []string{"3"},
		Parameter: []gtmdomain.Parameter{
			{Key: "measurementId", Value: "G-XYZ"},
			{Key: "eventName", Value: "page_view"},
			{Key: "sendEcommerceData", Value: "false"},
			{Key: "extra", Value: "ignorado"},
		},
	}

	row := tagRow(tag, container("10", "GTM-AAA", "Site"), gtmdomain.Workspace{Name: "Default Workspace"})

	require.Len(t, row, len(tagsHeaders))
	assert.Equal(t, "Pausado", row[6])
	assert.Equal(t, "Sem triggers", row[7])
	assert.Equal(t, "3", row[8])
	assert.Equal(t, "0", row[9])
	assert.Equal(t, "1", row[10])
	// Somente os três primeiros parâmetros entram no resumo
	assert.Equal(t, "measurementId=G-XYZ; eventName=page_view; sendEcommerceData=false", row[11])
	assert.Equal(t, "Tag pausada; Sem triggers de disparo; Tem triggers de bloqueio", row[17])
}

func TestTriggerRow_resumoDeFiltros(t *testing.T) {
	trigger := gtmdomain.Trigger{
		Name:      "Clique em CTA",
		TriggerID: "5",
		Type:      "click",
		Filter: []gtmdomain.Filter{
			{
				Type: "equals",
				Parameter: []gtmdomain.Parameter{
					{Key: "arg0", Value: "{{Click Classes}}"},
					{Key: "arg1", Value: "cta-button"},
				},
			},
			{
				Type: "contains",
				Parameter: []gtmdomain.Parameter{
					{Key: "arg0", Value: "{{Page Path}}"},
					{Key: "arg1", Value: "/landing"},
				},
			},
		},
	}

	row := triggerRow(trigger, container("10", "GTM-AAA", "Site"), gtmdomain.Workspace{Name: "Default Workspace"})

	require.Len(t, row, len(triggersHeaders))
	assert.Equal(t, "{{Click Classes}} equals cta-button & {{Page Path}} contains /landing", row[6])
	assert.Equal(t, "Não", row[7])
}
