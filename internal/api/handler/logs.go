package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/addocu/stack-audit-api/pkg/apiErrors"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
)

// CleanupLogsRequest é o corpo do endpoint de limpeza do log de auditoria.
type CleanupLogsRequest struct {
	Days int `json:"days"`
}

// CleanupLogsResponse informa quantas entradas foram removidas.
type CleanupLogsResponse struct {
	Success bool `json:"success"`
	Removed int  `json:"removed"`
	Days    int  `json:"days"`
}

// CleanupLogs remove do log de auditoria as entradas mais antigas que o
// período informado
func CleanupLogs(logger *auditlog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CleanupLogs")

		request := CleanupLogsRequest{}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", err.Error())
			return
		}

		if request.Days <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat,
				"O período de retenção deve ser maior que zero", nil)
			return
		}

		removed, err := logger.CleanupOld(request.Days)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrSheetWrite, "Erro ao limpar o log de auditoria", err.Error())
			return
		}

		writeJSON(w, CleanupLogsResponse{
			Success: true,
			Removed: removed,
			Days:    request.Days,
		})
	}
}
