package handler

import (
	"net/http"

	"github.com/addocu/stack-audit-api/internal/api/handler/router"
	"github.com/addocu/stack-audit-api/internal/usecases/auditing"
	"github.com/addocu/stack-audit-api/internal/usecases/diagnosing"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Audit(auditor auditing.Auditor, status AuditStatusServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/audit/run",
			Method:      http.MethodPost,
			Handler:     RunAudit(auditor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/audit/run/:service",
			Method:      http.MethodPost,
			Handler:     RunServiceAudit(auditor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/audit/status",
			Method:      http.MethodGet,
			Handler:     GetAuditStatus(status),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/audit/runs",
			Method:      http.MethodGet,
			Handler:     GetAuditRuns(status.Runs),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Diagnostics(service *diagnosing.Service) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/diagnostics/run",
			Method:      http.MethodGet,
			Handler:     RunDiagnostics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func Logs(logger *auditlog.Logger) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/logs/cleanup",
			Method:      http.MethodPost,
			Handler:     CleanupLogs(logger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
