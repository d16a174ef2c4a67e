package lookerclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/httpretry"
	"github.com/addocu/stack-audit-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

type staticAuth struct{}

func (staticAuth) Headers(domain.Service) (map[string]string, error) {
	return map[string]string{"Authorization": "Bearer token-teste"}, nil
}

func newTestClient(serverURL string) Client {
	retry := httpretry.NewClient(
		httpretry.WithSleep(func(time.Duration) {}),
	)
	return NewClient(retry, staticAuth{}, WithBaseURL(serverURL))
}

func TestSearchReports(t *testing.T) {
	t.Run("página válida deve retornar assets e token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"assets":[{"name":"Relatório A"}],"nextPageToken":"p2"}`))
		}))
		defer server.Close()

		assets, nextToken, err := newTestClient(server.URL).SearchReports("")
		require.NoError(t, err)
		require.Len(t, assets, 1)
		assert.Equal(t, "Relatório A", assets[0].Name)
		assert.Equal(t, "p2", nextToken)
	})

	t.Run("resposta 2xx que não é JSON deve ser fatal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not json at all"))
		}))
		defer server.Close()

		assets, _, err := newTestClient(server.URL).SearchReports("")
		require.Error(t, err)
		assert.Nil(t, assets)
		assert.Equal(t, domain.ErrKindMalformed, domain.ErrorKind(err))
	})

	t.Run("corpo vazio é a última página, sem erro", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		assets, nextToken, err := newTestClient(server.URL).SearchReports("")
		require.NoError(t, err)
		assert.Empty(t, assets)
		assert.Empty(t, nextToken)
	})
}
