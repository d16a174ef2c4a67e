// Package ga4 sincroniza o inventário do Google Analytics 4: contas,
// propriedades, dimensões e métricas personalizadas e data streams.
package ga4

import (
	"fmt"
	"time"

	ga4domain "github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/domain"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/ga4/ga4client"
	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/log"
)

const component = "GA4"

// Pauses controla as esperas entre chamadas durante a varredura. Os
// testes usam o valor zero.
type Pauses struct {
	BetweenAccounts   time.Duration
	BetweenProperties time.Duration
}

func DefaultPauses() Pauses {
	return Pauses{
		BetweenAccounts:   300 * time.Millisecond,
		BetweenProperties: 200 * time.Millisecond,
	}
}

type Synchronizer struct {
	client ga4client.Client
	store  storage.TableStore
	audit  *auditlog.Logger
	pauses Pauses
	sleep  func(time.Duration)
}

func NewSynchronizer(client ga4client.Client, store storage.TableStore, audit *auditlog.Logger, pauses Pauses) *Synchronizer {
	return &Synchronizer{
		client: client,
		store:  store,
		audit:  audit,
		pauses: pauses,
		sleep:  time.Sleep,
	}
}

// Sync executa a auditoria completa de GA4 em quatro fases: contas e
// propriedades de uma só vez, depois três varreduras de sub-recursos
// reaproveitando a lista de propriedades. Falhas em um item individual
// geram aviso e a varredura continua nos irmãos.
func (s *Synchronizer) Sync(filters *domain.AuditFilters) *domain.SyncResult {
	startedAt := time.Now()
	result := domain.NewSyncResult(domain.ServiceGA4)
	s.audit.SyncStart(component)

	properties, accounts, err := s.discoverProperties(filters)
	if err != nil {
		duration := time.Since(startedAt)
		s.audit.SyncEnd(component, 0, duration, string(domain.SyncStatusError))
		s.audit.Error(component, "Sincronização de GA4 falhou", err.Error())
		result.Fail(remediate(err), duration)
		return result
	}

	if err := s.writeAccounts(accounts); err != nil {
		s.warn("Falha ao gravar a tabela de contas", err)
		result.Errors = append(result.Errors, err.Error())
	}
	result.Details["accounts"] = len(accounts)

	rows := make([][]string, 0, len(properties))
	for _, item := range properties {
		rows = append(rows, propertyRow(item))
	}
	if err := s.store.WriteTable(storage.TableGA4Properties, propertiesHeaders, rows, true); err != nil {
		s.warn("Falha ao gravar a tabela de propriedades", err)
		result.Errors = append(result.Errors, err.Error())
	}
	result.Details["properties"] = len(properties)

	s.audit.Event(component, "Fase 2: extraindo dimensões personalizadas")
	dimensions := s.sweep(properties, result, storage.TableGA4CustomDimensions, dimensionsHeaders, "customDimensions",
		func(item ga4domain.PropertyWithAccount) ([][]string, error) {
			resources, err := s.client.ListCustomDimensions(item.Property.Name)
			if err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(resources))
			for _, r := range resources {
				out = append(out, dimensionRow(r, item.Property))
			}
			return out, nil
		})
	result.Details["customDimensions"] = dimensions

	s.audit.Event(component, "Fase 3: extraindo métricas personalizadas")
	metrics := s.sweep(properties, result, storage.TableGA4CustomMetrics, metricsHeaders, "customMetrics",
		func(item ga4domain.PropertyWithAccount) ([][]string, error) {
			resources, err := s.client.ListCustomMetrics(item.Property.Name)
			if err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(resources))
			for _, r := range resources {
				out = append(out, metricRow(r, item.Property))
			}
			return out, nil
		})
	result.Details["customMetrics"] = metrics

	s.audit.Event(component, "Fase 4: extraindo data streams")
	streams := s.sweep(properties, result, storage.TableGA4DataStreams, streamsHeaders, "dataStreams",
		func(item ga4domain.PropertyWithAccount) ([][]string, error) {
			resources, err := s.client.ListDataStreams(item.Property.Name)
			if err != nil {
				return nil, err
			}
			out := make([][]string, 0, len(resources))
			for _, r := range resources {
				out = append(out, streamRow(r, item.Property))
			}
			return out, nil
		})
	result.Details["dataStreams"] = streams

	result.Records = len(properties) + dimensions + metrics + streams
	result.Duration = time.Since(startedAt)
	result.Status = domain.SyncStatusSuccess

	s.audit.SyncEnd(component, result.Records, result.Duration, string(result.Status))

	return result
}

// discoverProperties enumera contas e propriedades uma única vez e
// aplica o filtro de escopo configurado.
func (s *Synchronizer) discoverProperties(filters *domain.AuditFilters) ([]ga4domain.PropertyWithAccount, []ga4domain.Account, error) {
	s.audit.Event(component, "Fase 1: extraindo contas e propriedades")

	accounts, err := s.client.ListAccounts()
	if err != nil {
		return nil, nil, err
	}

	if len(accounts) == 0 {
		s.audit.Warning(component, "Nenhuma conta de GA4 acessível foi encontrada")
		return nil, nil, nil
	}

	all := make([]ga4domain.PropertyWithAccount, 0)
	for _, account := range accounts {
		properties, err := s.client.ListProperties(account.Name)
		if err != nil {
			s.audit.Warning(component,
				fmt.Sprintf("Não foi possível obter propriedades da conta %s", account.DisplayName),
				err.Error())
			continue
		}

		for _, property := range properties {
			all = append(all, ga4domain.PropertyWithAccount{Property: property, Account: account})
		}

		s.sleep(s.pauses.BetweenAccounts)
	}

	var filter []string
	if filters != nil {
		filter = filters.GA4Properties
	}

	selected := filterProperties(all, filter)
	if len(filter) > 0 && len(selected) < len(all) {
		s.audit.Event(component,
			fmt.Sprintf("Filtro de propriedades aplicado: %d de %d propriedades selecionadas",
				len(selected), len(all)))
	}

	return selected, accounts, nil
}

func (s *Synchronizer) writeAccounts(accounts []ga4domain.Account) error {
	rows := make([][]string, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, accountRow(account))
	}

	return s.store.WriteTable(storage.TableGA4Accounts, accountsHeaders, rows, true)
}

// sweep percorre as propriedades coletando um tipo de sub-recurso e
// grava a tabela resultante. Retorna o número de linhas gravadas.
func (s *Synchronizer) sweep(
	properties []ga4domain.PropertyWithAccount,
	result *domain.SyncResult,
	table string,
	headers []string,
	resourceType string,
	collect func(ga4domain.PropertyWithAccount) ([][]string, error),
) int {
	rows := make([][]string, 0)

	for _, item := range properties {
		itemRows, err := collect(item)
		if err != nil {
			s.audit.Warning(component,
				fmt.Sprintf("Não foi possível obter %s da propriedade %s",
					resourceType, item.Property.DisplayName),
				err.Error())
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		rows = append(rows, itemRows...)
		s.sleep(s.pauses.BetweenProperties)
	}

	if err := s.store.WriteTable(table, headers, rows, true); err != nil {
		s.warn(fmt.Sprintf("Falha ao gravar a tabela %s", table), err)
		result.Errors = append(result.Errors, err.Error())
		return 0
	}

	return len(rows)
}

func (s *Synchronizer) warn(message string, err error) {
	log.L.WithError(err).Warn(message)
	s.audit.Warning(component, message, err.Error())
}

// remediate anexa a dica de correção para erros de autorização, que
// quase sempre indicam a Admin API desabilitada no projeto.
func remediate(err error) error {
	if domain.IsAuthError(err) {
		return fmt.Errorf("%w | SOLUÇÃO: verifique se a \"Google Analytics Admin API\" está habilitada no Google Cloud Console e se a credencial tem os escopos OAuth necessários", err)
	}
	return err
}
