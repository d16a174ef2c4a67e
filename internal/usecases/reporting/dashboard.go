// Package reporting gera o dashboard executivo a partir das tabelas
// recém-persistidas pela auditoria. O reporter consome a saída dos
// sincronizadores e nunca participa da coleta em si.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/internal/domain"
	"github.com/addocu/stack-audit-api/pkg/auditlog"
	"github.com/addocu/stack-audit-api/pkg/utils"
)

const component = "DASHBOARD"

// Cabeçalho fixo da tabela DASHBOARD. A primeira seção resume cada
// serviço; as demais trazem KPIs e sinais de qualidade.
var dashboardHeaders = []string{"Seção", "Indicador", "Valor", "Detalhes"}

// LastSyncReader consulta o timestamp de última sincronização de um serviço.
type LastSyncReader interface {
	LastSync(userID string, service domain.Service) (time.Time, error)
}

type Reporter struct {
	store    storage.TableStore
	lastSync LastSyncReader
	audit    *auditlog.Logger
	now      func() time.Time
}

func NewReporter(store storage.TableStore, lastSync LastSyncReader, audit *auditlog.Logger) *Reporter {
	return &Reporter{
		store:    store,
		lastSync: lastSync,
		audit:    audit,
		now:      time.Now,
	}
}

// Generate recalcula o dashboard lendo as tabelas persistidas. Os
// resultados da execução corrente definem o status exibido por serviço;
// serviços não auditados aparecem com o último timestamp conhecido.
func (r *Reporter) Generate(userID string, results map[domain.Service]*domain.SyncResult) error {
	rows := make([][]string, 0, 16)

	ga4Total := r.countTables(
		storage.TableGA4Properties,
		storage.TableGA4CustomDimensions,
		storage.TableGA4CustomMetrics,
		storage.TableGA4DataStreams,
	)
	gtmTotal := r.countTables(storage.TableGTMTags, storage.TableGTMVariables, storage.TableGTMTriggers)
	lookerTotal := r.countTables(storage.TableLookerStudio)

	rows = append(rows,
		r.serviceRow(userID, "Google Analytics 4", domain.ServiceGA4, ga4Total, results),
		r.serviceRow(userID, "Google Tag Manager", domain.ServiceGTM, gtmTotal, results),
		r.serviceRow(userID, "Looker Studio", domain.ServiceLooker, lookerTotal, results),
	)

	quality := r.analyzeQuality()

	rows = append(rows,
		[]string{"KPI", "Total de elementos", utils.IntCell(ga4Total + gtmTotal + lookerTotal), ""},
		[]string{"KPI", "Contêineres GTM únicos", utils.IntCell(quality.uniqueContainers), ""},
		[]string{"Qualidade", "Tags pausadas", utils.IntCell(quality.pausedTags), ""},
		[]string{"Qualidade", "Tags sem trigger de disparo", utils.IntCell(len(quality.tagsWithoutTrigger)), sampleNames(quality.tagsWithoutTrigger)},
		[]string{"Qualidade", "Propriedades GA4 sem data streams", utils.IntCell(len(quality.propertiesWithoutStreams)), sampleNames(quality.propertiesWithoutStreams)},
		[]string{"Qualidade", "Relatórios Looker na lixeira", utils.IntCell(quality.trashedReports), ""},
		[]string{"Qualidade", "Health score", fmt.Sprintf("%d%%", quality.healthScore(ga4Total+gtmTotal+lookerTotal)), ""},
		[]string{"Execução", "Gerado em", utils.FormatTime(r.now()), ""},
	)

	if err := r.store.WriteTable(storage.TableDashboard, dashboardHeaders, rows, true); err != nil {
		return err
	}

	r.audit.Event(component, "Dashboard executivo atualizado")
	return nil
}

func (r *Reporter) serviceRow(userID, label string, service domain.Service, total int, results map[domain.Service]*domain.SyncResult) []string {
	detail := "Não auditado nesta execução"

	if result, ok := results[service]; ok {
		detail = string(result.Status)
		if result.Error != "" {
			detail = fmt.Sprintf("%s: %s", result.Status, result.Error)
		}
	}

	lastSync := "N/A"
	if r.lastSync != nil {
		if at, err := r.lastSync.LastSync(userID, service); err == nil && !at.IsZero() {
			lastSync = utils.FormatTime(at)
		}
	}

	return []string{"Resumo", label, utils.IntCell(total), fmt.Sprintf("%s | Última sincronização: %s", detail, lastSync)}
}

func (r *Reporter) countTables(names ...string) int {
	total := 0
	for _, name := range names {
		count, err := r.store.RecordCount(name)
		if err != nil {
			continue
		}
		total += count
	}
	return total
}

// qualityReport agrega os sinais de qualidade calculados a partir das
// tabelas persistidas.
type qualityReport struct {
	uniqueContainers         int
	pausedTags               int
	tagsWithoutTrigger       []string
	propertiesWithoutStreams []string
	trashedReports           int
}

// healthScore pontua de 0 a 100 descontando os problemas encontrados em
// proporção ao total de elementos auditados.
func (q qualityReport) healthScore(totalElements int) int {
	if totalElements == 0 {
		return 100
	}

	issues := q.pausedTags + len(q.tagsWithoutTrigger) + len(q.propertiesWithoutStreams) + q.trashedReports
	score := 100 - (issues*100)/totalElements
	if score < 0 {
		return 0
	}
	return score
}

func (r *Reporter) analyzeQuality() qualityReport {
	quality := qualityReport{}

	r.analyzeTags(&quality)
	r.analyzeStreams(&quality)
	r.analyzeLooker(&quality)

	return quality
}

func (r *Reporter) analyzeTags(quality *qualityReport) {
	headers, rows, err := r.store.ReadTable(storage.TableGTMTags)
	if err != nil {
		return
	}

	containerIdx := columnIndex(headers, "Container ID")
	statusIdx := columnIndex(headers, "Status")
	firingIdx := columnIndex(headers, "Firing Triggers")
	nameIdx := columnIndex(headers, "Tag Name")

	containers := map[string]bool{}
	for _, row := range rows {
		if id := cell(row, containerIdx); id != "" {
			containers[id] = true
		}
		if cell(row, statusIdx) == "Pausado" {
			quality.pausedTags++
		}
		if firing := cell(row, firingIdx); firing == "" || firing == "Sem triggers" {
			quality.tagsWithoutTrigger = append(quality.tagsWithoutTrigger, cell(row, nameIdx))
		}
	}
	quality.uniqueContainers = len(containers)
}

func (r *Reporter) analyzeStreams(quality *qualityReport) {
	propHeaders, propRows, err := r.store.ReadTable(storage.TableGA4Properties)
	if err != nil {
		return
	}

	propIDIdx := columnIndex(propHeaders, "Property ID")
	propNameIdx := columnIndex(propHeaders, "Property Name")

	withStreams := map[string]bool{}
	if streamHeaders, streamRows, err := r.store.ReadTable(storage.TableGA4DataStreams); err == nil {
		streamPropIdx := columnIndex(streamHeaders, "Property ID")
		for _, row := range streamRows {
			if id := cell(row, streamPropIdx); id != "" {
				withStreams[id] = true
			}
		}
	}

	for _, row := range propRows {
		if id := cell(row, propIDIdx); id != "" && !withStreams[id] {
			quality.propertiesWithoutStreams = append(quality.propertiesWithoutStreams, cell(row, propNameIdx))
		}
	}
}

func (r *Reporter) analyzeLooker(quality *qualityReport) {
	headers, rows, err := r.store.ReadTable(storage.TableLookerStudio)
	if err != nil {
		return
	}

	trashIdx := columnIndex(headers, "Data de Exclusão")
	for _, row := range rows {
		if cell(row, trashIdx) != "" {
			quality.trashedReports++
		}
	}
}

func columnIndex(headers []string, name string) int {
	for i, header := range headers {
		if header == name {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// sampleNames resume uma lista de nomes para a célula de detalhes,
// limitando a cinco itens.
func sampleNames(names []string) string {
	if len(names) == 0 {
		return ""
	}
	limit := len(names)
	if limit > 5 {
		limit = 5
	}
	out := strings.Join(names[:limit], ", ")
	if len(names) > limit {
		out += fmt.Sprintf(" (+%d)", len(names)-limit)
	}
	return out
}
