// Package looker sincroniza o inventário de relatórios do Looker Studio
// por meio da busca paginada de assets.
package looker

import (
	"fmt"
	"strings"
	"time"

	lookerdomain "github.com/addocu/stack-audit-api/infrastructure/integrator/looker/domain"
	"github.com/addocu/stack-audit-api/infrastructure/integrator/looker/lookerclient"
	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

const (
	component = "LOOKER"

	// maxPages limita a paginação para não varrer inventários
	// patológicos indefinidamente.
	maxPages = 50
)

var lookerHeaders = []string{
	"Nome", "ID Asset", "Ferramenta", "Tipo Asset", "Data de Criação",
	"Data de Modificação", "Data de Exclusão", "Owner Email", "Owner Name",
	"Viewer Count", "É Público", "Descrição", "Tags", "Locale", "Tema",
	"URL do Relatório", "URL Embed", "Estado", "Último Acesso", "Data Sources",
	"ETag", "Revision ID", "Observações",
}

// Pauses controla a espera entre páginas da busca.
type Pauses struct {
	BetweenPages time.Duration
}

func DefaultPauses() Pauses {
	return Pauses{BetweenPages: 500 * time.Millisecond}
}

type Synchronizer struct {
	client lookerclient.Client
	store  storage.TableStore
	audit  *auditlog.Logger
	pauses Pauses
	sleep  func(time.Duration)
}

func NewSynchronizer(client lookerclient.Client, store storage.TableStore, audit *auditlog.Logger, pauses Pauses) *Synchronizer {
	return &Synchronizer{
		client: client,
		store:  store,
		audit:  audit,
		pauses: pauses,
		sleep:  time.Sleep,
	}
}

// Sync percorre a busca paginada de relatórios e grava o snapshot
// completo. Diferente de GA4 e GTM, uma falha em qualquer página é
// fatal: não há como garantir um snapshot consistente com uma página
// ausente no meio da sequência.
func (s *Synchronizer) Sync(_ *domain.AuditFilters) *domain.SyncResult {
	startedAt := time.Now()
	result := domain.NewSyncResult(domain.ServiceLooker)
	s.audit.SyncStart(component)

	assets, pages, err := s.collectReports()
	if err != nil {
		duration := time.Since(startedAt)
		s.audit.SyncEnd(component, 0, duration, string(domain.SyncStatusError))
		s.audit.Error(component, "Sincronização do Looker Studio falhou", err.Error())
		result.Fail(remediate(err), duration)
		return result
	}

	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, assetRow(asset))
	}

	if err := s.store.WriteTable(storage.TableLookerStudio, lookerHeaders, rows, true); err != nil {
		duration := time.Since(startedAt)
		s.audit.SyncEnd(component, 0, duration, string(domain.SyncStatusError))
		result.Fail(err, duration)
		return result
	}

	result.Records = len(assets)
	result.Details["reports"] = len(assets)
	result.Details["pages"] = pages
	result.Duration = time.Since(startedAt)
	result.Status = domain.SyncStatusSuccess

	s.audit.SyncEnd(component, result.Records, result.Duration, string(result.Status))

	return result
}

func (s *Synchronizer) collectReports() ([]lookerdomain.Asset, int, error) {
	s.audit.Event(component, "Iniciando extração de relatórios")

	all := make([]lookerdomain.Asset, 0)
	pageToken := ""
	pages := 0

	for {
		pages++

		assets, nextToken, err := s.client.SearchReports(pageToken)
		if err != nil {
			return nil, pages, err
		}

		if len(assets) > 0 {
			s.audit.Event(component,
				fmt.Sprintf("Página %d: %d relatórios encontrados", pages, len(assets)))
			all = append(all, assets...)
		}

		if nextToken == "" {
			break
		}

		if pages >= maxPages {
			s.audit.Warning(component,
				fmt.Sprintf("Limite de %d páginas atingido, extração interrompida com %d relatórios", maxPages, len(all)))
			break
		}

		pageToken = nextToken
		s.sleep(s.pauses.BetweenPages)
	}

	s.audit.Event(component, fmt.Sprintf("Extração concluída: %d relatórios", len(all)))

	return all, pages, nil
}

func assetRow(asset lookerdomain.Asset) []string {
	reportURL := ""
	if id := asset.ReportID(); id != "" {
		reportURL = fmt.Sprintf("https://lookerstudio.google.com/reporting/%s", id)
	}

	return []string{
		utils.FallbackCell(asset.Title, "Sem nome"),
		asset.Name,
		"Looker Studio",
		utils.FallbackCell(asset.AssetType, "REPORT"),
		utils.FormatDate(asset.CreateTime),
		utils.FormatDate(asset.UpdateTime),
		utils.FormatDateOrEmpty(asset.TrashTime),
		asset.Owner.Email,
		asset.Owner.DisplayName,
		utils.IntCell(asset.ViewerCount),
		utils.BoolCell(asset.IsPublic),
		asset.Description,
		jsonListCell(asset.Tags),
		asset.Locale,
		asset.Theme,
		reportURL,
		asset.EmbedURL,
		utils.FallbackCell(asset.Status, "ACTIVE"),
		utils.FormatDateOrEmpty(asset.LastViewedTime),
		jsonListCell(asset.DataSources),
		asset.ETag,
		asset.RevisionID,
		assetObservations(asset),
	}
}

func assetObservations(asset lookerdomain.Asset) string {
	observations := make([]string, 0, 3)
	if asset.TrashTime != "" {
		observations = append(observations, fmt.Sprintf("Excluído: %s", utils.FormatDate(asset.TrashTime)))
	}
	if asset.IsPublic {
		observations = append(observations, "Público")
	}
	if asset.UpdateTime != "" && asset.UpdateTime != asset.CreateTime {
		observations = append(observations, fmt.Sprintf("Modificado: %s", utils.FormatDate(asset.UpdateTime)))
	}
	return strings.Join(observations, " | ")
}

func jsonListCell(v interface{}) string {
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return "[]"
		}
	case []lookerdomain.DataSource:
		if len(list) == 0 {
			return "[]"
		}
	}
	return utils.JSONCell(v)
}

func remediate(err error) error {
	if domain.IsAuthError(err) {
		return fmt.Errorf("%w | SOLUÇÃO: verifique se a \"Looker Studio API\" está habilitada no Google Cloud Console e se a credencial tem os escopos OAuth necessários", err)
	}
	return err
}
