// Package gtm sincroniza o inventário do Google Tag Manager: tags,
// variáveis e triggers dos workspaces selecionados de cada contêiner.
package gtm

import (
	"fmt"
	"time"

	gtmdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/domain"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/gtm/gtmclient"
	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/log"
)

const component = "GTM"

// Pauses controla as esperas entre chamadas durante a varredura. A
// pausa após erro é mais longa para aliviar a API antes do próximo
// contêiner.
type Pauses struct {
	BetweenAccounts   time.Duration
	BetweenWorkspaces time.Duration
	BetweenResources  time.Duration
	BetweenContainers time.Duration
	AfterError        time.Duration
}

func DefaultPauses() Pauses {
	return Pauses{
		BetweenAccounts:   500 * time.Millisecond,
		BetweenWorkspaces: 500 * time.Millisecond,
		BetweenResources:  300 * time.Millisecond,
		BetweenContainers: 1 * time.Second,
		AfterError:        2 * time.Second,
	}
}

// aggregate acumula as linhas de todos os contêineres; as três tabelas
// são gravadas de uma só vez ao final, mantendo o snapshot consistente.
type aggregate struct {
	tags      [][]string
	variables [][]string
	triggers  [][]string
}

type Synchronizer struct {
	client gtmclient.Client
	store  storage.TableStore
	audit  *auditlog.Logger
	pauses Pauses
	sleep  func(time.Duration)
}

func NewSynchronizer(client gtmclient.Client, store storage.TableStore, audit *auditlog.Logger, pauses Pauses) *Synchronizer {
	return &Synchronizer{
		client: client,
		store:  store,
		audit:  audit,
		pauses: pauses,
		sleep:  time.Sleep,
	}
}

// Sync executa a auditoria completa de GTM. Falhas em um contêiner ou
// workspace individual viram entradas de erro no resultado e a
// varredura continua nos demais.
func (s *Synchronizer) Sync(filters *domain.AuditFilters) *domain.SyncResult {
	startedAt := time.Now()
	result := domain.NewSyncResult(domain.ServiceGTM)
	s.audit.SyncStart(component)

	containers, err := s.discoverContainers()
	if err != nil {
		duration := time.Since(startedAt)
		s.audit.SyncEnd(component, 0, duration, string(domain.SyncStatusError))
		s.audit.Error(component, "Sincronização de GTM falhou", err.Error())
		result.Fail(remediate(err), duration)
		return result
	}

	result.Details["containersFound"] = len(containers)
	s.audit.Event(component, fmt.Sprintf("Contêineres encontrados: %d", len(containers)))

	if len(containers) == 0 {
		s.audit.Warning(component, "Nenhum contêiner GTM acessível foi encontrado")
		return s.finish(result, startedAt)
	}

	var containerFilter, workspaceFilter []string
	if filters != nil {
		containerFilter = filters.GTMContainers
		workspaceFilter = filters.GTMWorkspaces
	}

	selected := filterContainers(containers, containerFilter)
	s.audit.Event(component,
		fmt.Sprintf("Contêineres a processar: %d de %d", len(selected), len(containers)))

	if len(selected) == 0 {
		s.audit.Warning(component, "Nenhum contêiner restou após a aplicação do filtro")
		return s.finish(result, startedAt)
	}

	data := &aggregate{}
	processed := 0

	for i, container := range selected {
		s.audit.Event(component,
			fmt.Sprintf("[%d/%d] Processando contêiner %s", i+1, len(selected), container.Name))

		if err := s.collectContainer(container, workspaceFilter, data, result); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: %s", container.Name, err.Error()))
			s.audit.Error(component,
				fmt.Sprintf("Erro ao processar o contêiner %s", container.Name), err.Error())
			s.sleep(s.pauses.AfterError)
			continue
		}

		processed++
		s.sleep(s.pauses.BetweenContainers)
	}

	if err := s.writeAggregate(data); err != nil {
		duration := time.Since(startedAt)
		s.audit.SyncEnd(component, 0, duration, string(domain.SyncStatusError))
		result.Fail(err, duration)
		return result
	}

	result.Details["containersProcessed"] = processed
	result.Details["tags"] = len(data.tags)
	result.Details["variables"] = len(data.variables)
	result.Details["triggers"] = len(data.triggers)
	result.Records = len(data.tags) + len(data.variables) + len(data.triggers)

	return s.finish(result, startedAt)
}

func (s *Synchronizer) finish(result *domain.SyncResult, startedAt time.Time) *domain.SyncResult {
	result.Duration = time.Since(startedAt)
	result.Status = domain.SyncStatusSuccess
	s.audit.SyncEnd(component, result.Records, result.Duration, string(result.Status))
	return result
}

// discoverContainers enumera todas as contas e anota cada contêiner com
// a conta de origem. Falha em uma conta não interrompe as demais.
func (s *Synchronizer) discoverContainers() ([]gtmdomain.Container, error) {
	accounts, err := s.client.ListAccounts()
	if err != nil {
		return nil, err
	}

	if len(accounts) == 0 {
		return nil, nil
	}

	s.audit.Event(component, fmt.Sprintf("Contas encontradas: %d", len(accounts)))

	all := make([]gtmdomain.Container, 0)
	for _, account := range accounts {
		containers, err := s.client.ListContainers(account.AccountID)
		if err != nil {
			s.audit.Error(component,
				fmt.Sprintf("Erro ao processar a conta %s", account.Name), err.Error())
			continue
		}

		for _, container := range containers {
			container.AccountName = account.Name
			if container.AccountID == "" {
				container.AccountID = account.AccountID
			}
			all = append(all, container)
		}

		s.sleep(s.pauses.BetweenAccounts)
	}

	return all, nil
}

// collectContainer seleciona os workspaces do contêiner e acumula os
// recursos de cada um. Falha em um workspace individual vira entrada de
// erro e os demais continuam.
func (s *Synchronizer) collectContainer(
	container gtmdomain.Container,
	workspaceFilter []string,
	data *aggregate,
	result *domain.SyncResult,
) error {
	workspaces, err := s.client.ListWorkspaces(container)
	if err != nil {
		return err
	}

	if len(workspaces) == 0 {
		return fmt.Errorf("nenhum workspace encontrado em %s", container.Name)
	}

	selected := selectWorkspaces(workspaces, workspaceFilter)

	for _, workspace := range selected {
		if err := s.collectWorkspace(container, workspace, data); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s/%s: %s", container.Name, workspace.Name, err.Error()))
			s.audit.Error(component,
				fmt.Sprintf("Erro ao processar o workspace %s de %s", workspace.Name, container.Name),
				err.Error())
			continue
		}

		s.sleep(s.pauses.BetweenWorkspaces)
	}

	return nil
}

func (s *Synchronizer) collectWorkspace(container gtmdomain.Container, workspace gtmdomain.Workspace, data *aggregate) error {
	tags, err := s.client.ListTags(workspace.Path)
	if err != nil {
		return err
	}
	s.sleep(s.pauses.BetweenResources)

	variables, err := s.client.ListVariables(workspace.Path)
	if err != nil {
		return err
	}
	s.sleep(s.pauses.BetweenResources)

	triggers, err := s.client.ListTriggers(workspace.Path)
	if err != nil {
		return err
	}
	s.sleep(s.pauses.BetweenResources)

	for _, tag := range tags {
		data.tags = append(data.tags, tagRow(tag, container, workspace))
	}
	for _, variable := range variables {
		data.variables = append(data.variables, variableRow(variable, container, workspace))
	}
	for _, trigger := range triggers {
		data.triggers = append(data.triggers, triggerRow(trigger, container, workspace))
	}

	log.L.WithFields(log.Fields{
		"container": container.Name,
		"workspace": workspace.Name,
		"tags":      len(tags),
		"variables": len(variables),
		"triggers":  len(triggers),
	}).Debug("Recursos do workspace coletados")

	return nil
}

func (s *Synchronizer) writeAggregate(data *aggregate) error {
	if err := s.store.WriteTable(storage.TableGTMTags, tagsHeaders, data.tags, true); err != nil {
		return err
	}
	if err := s.store.WriteTable(storage.TableGTMVariables, variablesHeaders, data.variables, true); err != nil {
		return err
	}
	return s.store.WriteTable(storage.TableGTMTriggers, triggersHeaders, data.triggers, true)
}

func remediate(err error) error {
	if domain.IsAuthError(err) {
		return fmt.Errorf("%w | SOLUÇÃO: verifique se a \"Tag Manager API\" está habilitada no Google Cloud Console e se a credencial tem os escopos OAuth necessários", err)
	}
	return err
}
