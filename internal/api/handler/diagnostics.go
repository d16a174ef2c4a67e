package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/addocu/stack-audit-api/internal/usecases/diagnosing"
	"github.com/addocu/stack-audit-api/pkg/apiErrors"
)

// DiagnosticsResponse é a resposta do diagnóstico de conectividade.
type DiagnosticsResponse struct {
	Success bool                `json:"success"`
	Results []diagnosing.Result `json:"results"`
}

// RunDiagnostics sonda a conectividade das três APIs auditadas
func RunDiagnostics(service *diagnosing.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunDiagnostics")

		results, err := service.Run()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrSheetWrite,
				"Erro ao persistir o resultado do diagnóstico", err.Error())
			return
		}

		success := true
		for _, result := range results {
			if result.Status != diagnosing.StatusOK {
				success = false
				break
			}
		}

		writeJSON(w, DiagnosticsResponse{
			Success: success,
			Results: results,
		})
	}
}
