package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/addocu/stack-audit-api/infrastructure/database/postgres"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/ga4"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/ga4client"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/googleauth"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/gtm"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/gtmclient"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/looker"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/looker/lookerclient"
	"github.com/addocu/stack-audit-api/infrastructure/repository"
	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/infrastructure/storage/sheetstore"
	"github.com/addocu/stack-audit-api/internal/api"
	"github.com/addocu/stack-audit-api/internal/config"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/internal/scheduler"
	"github.com/addocu/stack-audit-api/internal/usecases/auditing"
	"github.com/addocu/stack-audit-api/internal/usecases/authenticating"
	"github.com/addocu/stack-audit-api/internal/usecases/diagnosing"
	"github.com/addocu/stack-audit-api/internal/usecases/reporting"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/httpretry"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	settingsRepo := repository.NewSettingsRepository(pgConn)
	auditRunRepo := repository.NewAuditRunRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	resolver, err := googleauth.NewResolver(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar as credenciais do Google")
	}

	store := tableStore(ctx, cfg, resolver)
	auditLogger := auditlog.NewLogger(store)

	retryClient := httpretry.NewClient(
		httpretry.WithMaxRetries(cfg.Retry.MaxRetries),
		httpretry.WithBaseDelay(cfg.Retry.BaseDelay),
		httpretry.WithAuditLogger(auditLogger),
	)

	ga4Sync := ga4.NewSynchronizer(
		ga4client.NewClient(retryClient, resolver),
		store,
		auditLogger,
		ga4.DefaultPauses(),
	)
	gtmSync := gtm.NewSynchronizer(
		gtmclient.NewClient(retryClient, resolver),
		store,
		auditLogger,
		gtm.DefaultPauses(),
	)
	lookerSync := looker.NewSynchronizer(
		lookerclient.NewClient(retryClient, resolver),
		store,
		auditLogger,
		looker.DefaultPauses(),
	)

	dashboardReporter := reporting.NewReporter(store, settingsRepo, auditLogger)

	auditor := auditing.NewService(
		map[domain.Service]auditing.Synchronizer{
			domain.ServiceGA4:    ga4Sync,
			domain.ServiceGTM:    gtmSync,
			domain.ServiceLooker: lookerSync,
		},
		settingsRepo,
		auditRunRepo,
		dashboardReporter,
		auditLogger,
	)

	diagnostics := diagnosing.NewService(resolver, store, auditLogger)

	// Inicializa o agendador de auditoria em background
	auditSyncService := scheduler.NewAuditSyncService(auditor, cfg)
	if err := auditSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de auditoria")
	} else {
		logrus.Info("Agendador de auditoria iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		auditor,
		diagnostics,
		auditLogger,
		settingsRepo,
		auditRunRepo,
		authenticator,
		auditSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	return conn
}

// tableStore escolhe o destino das tabelas de auditoria: a planilha do
// Google Sheets quando configurada, ou o armazenamento em memória para
// ambientes de desenvolvimento.
func tableStore(ctx context.Context, cfg *config.Config, resolver *googleauth.Resolver) storage.TableStore {
	if cfg.Google.SpreadsheetID == "" {
		logrus.Warn("GOOGLE_SPREADSHEET_ID não configurado, usando armazenamento em memória")
		return storage.NewMemStore()
	}

	store, err := sheetstore.NewSheetStore(ctx, resolver.HTTPClient(ctx), cfg.Google.SpreadsheetID)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar à planilha de auditoria")
	}

	return store
}
