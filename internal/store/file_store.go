package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ Store = (*FileStore)(nil)

// Операции журнала
const (
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
)

// logRecord представляет запись журнала операций в JSON-файле
type logRecord struct {
	Op     string `json:"op"`
	Table  Table  `json:"table"`
	Rows   []Row  `json:"rows,omitempty"`
	Filter Filter `json:"filter,omitempty"`
	Patch  Row    `json:"patch,omitempty"`
}

// FileStore реализует интерфейс Store поверх MemoryStore, дописывая каждую
// изменяющую операцию в файл журнала (JSON lines). При запуске журнал проигрывается.
type FileStore struct {
	*MemoryStore
	file   *os.File
	logger *zap.Logger
}

// NewFileStore создаёт новый экземпляр FileStore и восстанавливает состояние из файла
func NewFileStore(filePath string, logger *zap.Logger) (*FileStore, error) {
	// Создаём директорию, если не существует
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, err
	}

	s := &FileStore{
		MemoryStore: NewMemoryStore(),
		logger:      logger,
	}
	if err := s.replay(filePath); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	s.file = file
	return s, nil
}

// replay читает журнал построчно и применяет операции к памяти
func (s *FileStore) replay(filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var rec logRecord
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			// Пропускаем некорректные строки и логируем это
			s.logger.Warn("Skipping invalid JSON line", zap.String("line", string(line)), zap.Error(err))
			continue
		}
		if err := s.apply(rec); err != nil {
			s.logger.Warn("Skipping unreplayable record", zap.String("op", rec.Op), zap.String("table", string(rec.Table)), zap.Error(err))
		}
	}
	return scanner.Err()
}

func (s *FileStore) apply(rec logRecord) error {
	switch rec.Op {
	case opInsert:
		rows := make([]Row, len(rec.Rows))
		for i, r := range rec.Rows {
			rows[i] = restoreTimes(r)
		}
		_, err := s.insertLocked(rec.Table, rows)
		return err
	case opUpdate:
		_, err := s.updateLocked(rec.Table, rec.Filter, restoreTimes(rec.Patch))
		return err
	case opDelete:
		_, err := s.deleteLocked(rec.Table, rec.Filter)
		return err
	default:
		return fmt.Errorf("unknown operation %q", rec.Op)
	}
}

// restoreTimes превращает строковые значения столбцов *_at обратно во время
func restoreTimes(r Row) Row {
	out := r.Clone()
	for k := range out {
		if !strings.HasSuffix(k, "_at") {
			continue
		}
		if s, ok := out[k].(string); ok {
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				out[k] = t
			}
		}
	}
	return out
}

// appendRecord дописывает запись в журнал
func (s *FileStore) appendRecord(rec logRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := s.file.Write(data); err != nil {
		s.logger.Error("Failed to write operation log", zap.String("op", rec.Op), zap.String("table", string(rec.Table)), zap.Error(err))
		return err
	}
	return nil
}

// Insert сохраняет строки в памяти и дописывает их в журнал
func (s *FileStore) Insert(ctx context.Context, table Table, rows ...Row) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	for _, r := range rows {
		for col := range r {
			if !validColumn(col) {
				return nil, ErrInvalidColumn
			}
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted, err := s.insertLocked(table, rows)
	if err != nil {
		return nil, err
	}
	if err := s.appendRecord(logRecord{Op: opInsert, Table: table, Rows: inserted}); err != nil {
		// Откатываем вставку в памяти, чтобы состояние совпадало с журналом
		for _, r := range inserted {
			id, _ := r.Int64("id")
			delete(s.tables[table], id)
		}
		return nil, err
	}
	return inserted, nil
}

// Update записывает операцию в журнал и применяет её
func (s *FileStore) Update(ctx context.Context, table Table, filter Filter, patch Row) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(filter) == 0 {
		return nil, ErrEmptyFilter
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	if !knownTable(table) {
		return nil, ErrUnknownTable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendRecord(logRecord{Op: opUpdate, Table: table, Filter: filter, Patch: patch}); err != nil {
		return nil, err
	}
	return s.updateLocked(table, filter, patch)
}

// Delete записывает операцию в журнал и применяет её
func (s *FileStore) Delete(ctx context.Context, table Table, filter Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(filter) == 0 {
		return ErrEmptyFilter
	}
	if err := validateFilter(filter); err != nil {
		return err
	}
	if !knownTable(table) {
		return ErrUnknownTable
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendRecord(logRecord{Op: opDelete, Table: table, Filter: filter}); err != nil {
		return err
	}
	_, err := s.deleteLocked(table, filter)
	return err
}

// Close закрывает файл журнала
func (s *FileStore) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
