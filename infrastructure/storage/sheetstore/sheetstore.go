// Package sheetstore implementa o storage.TableStore sobre planilhas
// Google, usando a API Sheets v4.
package sheetstore

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/addocu/stack-audit-api/infrastructure/storage"
	"github.com/addocu/stack-audit-api/pkg/log"
)

type SheetStore struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetStore cria o store apontando para a planilha informada. O
// client já deve carregar as credenciais OAuth.
func NewSheetStore(ctx context.Context, client *http.Client, spreadsheetID string) (*SheetStore, error) {
	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inicializar cliente da API Sheets")
	}

	return &SheetStore{
		service:       service,
		spreadsheetID: spreadsheetID,
	}, nil
}

func (s *SheetStore) WriteTable(name string, headers []string, rows [][]string, clearFirst bool) error {
	if err := s.ensureSheet(name); err != nil {
		return err
	}

	if clearFirst {
		area := fmt.Sprintf("%s!A:ZZ", name)
		if _, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, area, &sheets.ClearValuesRequest{}).Do(); err != nil {
			return errors.Wrapf(err, "erro ao limpar a aba %s", name)
		}
	}

	values := sheets.ValueRange{
		Range:  fmt.Sprintf("%s!A1", name),
		Values: toInterfaceRows(headers, storage.NormalizeRows(headers, rows)),
	}

	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             []*sheets.ValueRange{&values},
	}

	if _, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, &rq).Do(); err != nil {
		return errors.Wrapf(err, "erro ao gravar a aba %s", name)
	}

	log.L.WithFields(log.Fields{
		"sheet": name,
		"rows":  len(rows),
	}).Debug("Aba atualizada na planilha")

	return nil
}

func (s *SheetStore) AppendRows(name string, headers []string, rows [][]string) error {
	created, err := s.ensureSheetWithHeader(name, headers)
	if err != nil {
		return err
	}

	normalized := storage.NormalizeRows(headers, rows)
	if len(normalized) == 0 {
		return nil
	}

	values := sheets.ValueRange{
		Values: toInterfaceRows(nil, normalized),
	}

	area := fmt.Sprintf("%s!A1", name)
	call := s.service.Spreadsheets.Values.Append(s.spreadsheetID, area, &values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS")

	if _, err := call.Do(); err != nil {
		return errors.Wrapf(err, "erro ao acrescentar linhas na aba %s", name)
	}

	if created {
		log.L.WithField("sheet", name).Info("Aba criada na planilha")
	}

	return nil
}

func (s *SheetStore) ReadTable(name string) ([]string, [][]string, error) {
	area := fmt.Sprintf("%s!A:ZZ", name)

	response, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, area).Do()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "erro ao ler a aba %s", name)
	}

	if len(response.Values) == 0 {
		return nil, nil, nil
	}

	headers := toStringRow(response.Values[0])
	rows := make([][]string, 0, len(response.Values)-1)
	for _, raw := range response.Values[1:] {
		rows = append(rows, toStringRow(raw))
	}

	return headers, storage.NormalizeRows(headers, rows), nil
}

func (s *SheetStore) RecordCount(name string) (int, error) {
	_, rows, err := s.ReadTable(name)
	if err != nil {
		return 0, err
	}

	return len(rows), nil
}

func (s *SheetStore) ensureSheet(name string) error {
	_, err := s.ensureSheetWithHeader(name, nil)
	return err
}

// ensureSheetWithHeader cria a aba caso não exista, gravando o cabeçalho
// quando informado. Retorna true quando a aba foi criada.
func (s *SheetStore) ensureSheetWithHeader(name string, headers []string) (bool, error) {
	spreadsheet, err := s.service.Spreadsheets.Get(s.spreadsheetID).Do()
	if err != nil {
		return false, errors.Wrap(err, "erro ao consultar a planilha")
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return false, nil
		}
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			},
		},
	}

	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &rq).Do(); err != nil {
		return false, errors.Wrapf(err, "erro ao criar a aba %s", name)
	}

	if len(headers) > 0 {
		values := sheets.ValueRange{
			Range:  fmt.Sprintf("%s!A1", name),
			Values: toInterfaceRows(headers, nil),
		}

		update := sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             []*sheets.ValueRange{&values},
		}

		if _, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, &update).Do(); err != nil {
			return false, errors.Wrapf(err, "erro ao gravar cabeçalho da aba %s", name)
		}
	}

	return true, nil
}

func toInterfaceRows(headers []string, rows [][]string) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)

	if len(headers) > 0 {
		out = append(out, toInterfaceRow(headers))
	}

	for _, row := range rows {
		out = append(out, toInterfaceRow(row))
	}

	return out
}

func toInterfaceRow(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, cell := range row {
		cells[i] = cell
	}

	return cells
}

func toStringRow(raw []interface{}) []string {
	row := make([]string, len(raw))
	for i, cell := range raw {
		row[i] = fmt.Sprintf("%v", cell)
	}

	return row
}
