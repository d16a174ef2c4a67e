package storage

import (
	"sync"

	"github.com/pkg/errors"
)

// MemStore mantém as tabelas em memória. Usado nos testes e como
// fallback quando nenhuma planilha está configurada.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string]*memTable
}

type memTable struct {
	headers []string
	rows    [][]string
}

func NewMemStore() *MemStore {
	return &MemStore{
		tables: make(map[string]*memTable),
	}
}

func (s *MemStore) WriteTable(name string, headers []string, rows [][]string, clearFirst bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.tables[name]
	if !ok || clearFirst {
		table = &memTable{headers: headers}
		s.tables[name] = table
	}

	table.rows = append(table.rows, NormalizeRows(headers, rows)...)

	return nil
}

func (s *MemStore) AppendRows(name string, headers []string, rows [][]string) error {
	return s.WriteTable(name, headers, rows, false)
}

func (s *MemStore) ReadTable(name string) ([]string, [][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[name]
	if !ok {
		return nil, nil, errors.Errorf("tabela %s não encontrada", name)
	}

	headers := append([]string(nil), table.headers...)
	rows := make([][]string, len(table.rows))
	for i, row := range table.rows {
		rows[i] = append([]string(nil), row...)
	}

	return headers, rows, nil
}

func (s *MemStore) RecordCount(name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[name]
	if !ok {
		return 0, nil
	}

	return len(table.rows), nil
}
