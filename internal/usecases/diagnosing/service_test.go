package diagnosing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/log"
)

type staticAuth struct {
	err error
}

func (a staticAuth) Headers(service domain.Service) (map[string]string, error) {
	if a.err != nil {
		return nil, a.err
	}
	return map[string]string{"Authorization": "Bearer token-diagnostico"}, nil
}

func TestRun(t *testing.T) {
	log.SetupTestLogger()

	t.Run("deve classificar cada serviço pelo status da sondagem", func(t *testing.T) {
		ga4 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer token-diagnostico", r.Header.Get("Authorization"))
			w.Write([]byte(`{"accounts": [{"name": "accounts/1"}, {"name": "accounts/2"}]}`))
		}))
		defer ga4.Close()

		gtm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer gtm.Close()

		looker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer looker.Close()

		store := storage.NewMemStore()
		service := NewService(staticAuth{}, store, auditlog.NewLogger(store),
			WithEndpoint(domain.ServiceGA4, ga4.URL),
			WithEndpoint(domain.ServiceGTM, gtm.URL),
			WithEndpoint(domain.ServiceLooker, looker.URL),
		)

		results, err := service.Run()
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, StatusOK, results[0].Status)
		assert.Equal(t, "2 contas GA4", results[0].Account)
		assert.Equal(t, StatusPermissionError, results[1].Status)
		assert.Equal(t, StatusAPINotFound, results[2].Status)

		headers, rows, err := store.ReadTable(storage.TableDiagnostic)
		require.NoError(t, err)
		assert.Equal(t, diagnosticHeaders, headers)
		require.Len(t, rows, 3)
		assert.Equal(t, "Google Analytics 4 Admin API", rows[0][0])
		assert.Equal(t, StatusOK, rows[0][2])
		assert.Equal(t, StatusPermissionError, rows[1][2])
	})

	t.Run("status HTTP inesperado deve virar HTTP_n", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		store := storage.NewMemStore()
		service := NewService(staticAuth{}, store, auditlog.NewLogger(store),
			WithEndpoint(domain.ServiceGA4, server.URL),
			WithEndpoint(domain.ServiceGTM, server.URL),
			WithEndpoint(domain.ServiceLooker, server.URL),
		)

		results, err := service.Run()
		require.NoError(t, err)
		assert.Equal(t, "HTTP_503", results[0].Status)
	})

	t.Run("falha ao resolver credenciais deve virar AUTH_ERROR sem interromper", func(t *testing.T) {
		store := storage.NewMemStore()
		service := NewService(staticAuth{err: assert.AnError}, store, auditlog.NewLogger(store))

		results, err := service.Run()
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, result := range results {
			assert.Equal(t, StatusAuthError, result.Status)
		}
	})
}
