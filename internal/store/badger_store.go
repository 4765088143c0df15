package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

var _ Store = (*BadgerStore)(nil)

// InMemoryBadger открывает BadgerDB без диска
const InMemoryBadger = ":memory:"

// BadgerStore реализует интерфейс Store поверх BadgerDB.
// Строки хранятся как JSON по ключам t/<table>/<id>, счётчик id по ключу seq/<table>.
type BadgerStore struct {
	db     *badger.DB
	logger *zap.Logger
	// mu упорядочивает записи, чтобы выдача id и фильтрация не конфликтовали
	mu  sync.Mutex
	now func() time.Time
}

// NewBadgerStore открывает BadgerDB по пути path; InMemoryBadger открывает базу в памяти
func NewBadgerStore(path string, logger *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == InMemoryBadger {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLogger{logger.Sugar().With("component", "badgerdb")}

	db, err := badger.Open(opts)
	if err != nil {
		logger.Error("Failed to open BadgerDB", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to open badger db at %s: %w", path, err)
	}
	logger.Info("BadgerDB opened", zap.String("path", path))

	return &BadgerStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}, nil
}

func tablePrefix(table Table) []byte {
	return []byte("t/" + string(table) + "/")
}

func rowKey(table Table, id int64) []byte {
	key := tablePrefix(table)
	var b [8]byte
	// Big-endian сохраняет порядок id при итерации по префиксу
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return append(key, b[:]...)
}

func seqKey(table Table) []byte {
	return []byte("seq/" + string(table))
}

func decodeRow(val []byte) (Row, error) {
	var r Row
	dec := json.NewDecoder(bytes.NewReader(val))
	dec.UseNumber()
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return normalizeRow(restoreTimes(r)), nil
}

// scan вызывает fn для каждой строки таблицы, удовлетворяющей фильтру, в порядке id
func (s *BadgerStore) scan(txn *badger.Txn, table Table, filter Filter, fn func(key []byte, r Row) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	prefix := tablePrefix(table)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		r, err := decodeRow(val)
		if err != nil {
			return fmt.Errorf("failed to decode row %q: %w", item.Key(), err)
		}
		if !filter.Matches(r) {
			continue
		}
		if err := fn(item.KeyCopy(nil), r); err != nil {
			return err
		}
	}
	return nil
}

// Select возвращает строки таблицы, удовлетворяющие фильтру
func (s *BadgerStore) Select(ctx context.Context, table Table, filter Filter, opts ...SelectOption) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !knownTable(table) {
		return nil, ErrUnknownTable
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		return s.scan(txn, table, filter, func(_ []byte, r Row) error {
			result = append(result, r)
			return nil
		})
	})
	if err != nil {
		s.logger.Error("Failed to select rows from BadgerDB", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	return sortRows(result, applyOptions(opts)), nil
}

func lastID(txn *badger.Txn, table Table) (int64, error) {
	var current int64
	item, err := txn.Get(seqKey(table))
	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
	case err != nil:
		return 0, err
	default:
		val, err := item.ValueCopy(nil)
		if err != nil {
			return 0, err
		}
		current = int64(binary.BigEndian.Uint64(val))
	}
	return current, nil
}

func setSeq(txn *badger.Txn, table Table, id int64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return txn.Set(seqKey(table), b[:])
}

func putRow(txn *badger.Txn, table Table, id int64, r Row) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return txn.SetEntry(badger.NewEntry(rowKey(table, id), data))
}

// Insert сохраняет строки в одной транзакции BadgerDB
func (s *BadgerStore) Insert(ctx context.Context, table Table, rows ...Row) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !knownTable(table) {
		return nil, ErrUnknownTable
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

	inserted := make([]Row, 0, len(rows))
	err := s.db.Update(func(txn *badger.Txn) error {
		last, err := lastID(txn, table)
		if err != nil {
			return err
		}
		for _, r := range rows {
			row := normalizeRow(r)
			id, ok := row.Int64("id")
			if !ok {
				last++
				id = last
			} else if id > last {
				last = id
			}
			row["id"] = id
			if !row.Has("created_at") {
				row["created_at"] = s.now().UTC()
			}
			if err := putRow(txn, table, id, row); err != nil {
				return err
			}
			inserted = append(inserted, row)
		}
		return setSeq(txn, table, last)
	})
	if err != nil {
		s.logger.Error("Failed to insert rows into BadgerDB", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	return inserted, nil
}

// Update применяет patch к строкам по фильтру
func (s *BadgerStore) Update(ctx context.Context, table Table, filter Filter, patch Row) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !knownTable(table) {
		return nil, ErrUnknownTable
	}
	if len(filter) == 0 {
		return nil, ErrEmptyFilter
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	for col := range patch {
		if !validColumn(col) {
			return nil, ErrInvalidColumn
		}
	}
	normalized := normalizeRow(patch)
	delete(normalized, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]Row, 0)
	err := s.db.Update(func(txn *badger.Txn) error {
		var matched []Row
		if err := s.scan(txn, table, filter, func(_ []byte, r Row) error {
			matched = append(matched, r)
			return nil
		}); err != nil {
			return err
		}
		for _, r := range matched {
			for k, v := range normalized {
				r[k] = v
			}
			id, _ := r.Int64("id")
			if err := putRow(txn, table, id, r); err != nil {
				return err
			}
			updated = append(updated, r)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update rows in BadgerDB", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

// Delete удаляет строки по фильтру
func (s *BadgerStore) Delete(ctx context.Context, table Table, filter Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !knownTable(table) {
		return ErrUnknownTable
	}
	if len(filter) == 0 {
		return ErrEmptyFilter
	}
	if err := validateFilter(filter); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(txn *badger.Txn) error {
		var keys [][]byte
		if err := s.scan(txn, table, filter, func(key []byte, _ Row) error {
			keys = append(keys, key)
			return nil
		}); err != nil {
			return err
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to delete rows from BadgerDB", zap.String("table", string(table)), zap.Error(err))
		return err
	}
	return nil
}

// Ping проверяет, что база открыта
func (s *BadgerStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return badger.ErrDBClosed
	}
	return nil
}

// RunGC периодически запускает сборку мусора журнала значений до отмены ctx
func (s *BadgerStore) RunGC(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			err := s.db.RunValueLogGC(0.7)
			switch {
			case err == nil:
				s.logger.Debug("BadgerDB GC completed")
			case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
			default:
				s.logger.Warn("BadgerDB GC failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

// Close закрывает базу
func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Error closing BadgerDB", zap.Error(err))
		return err
	}
	s.logger.Info("BadgerDB closed")
	return nil
}

// badgerLogger адаптирует zap к интерфейсу логгера BadgerDB
type badgerLogger struct {
	logger *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(f string, v ...any)   { l.logger.Errorf(f, v...) }
func (l *badgerLogger) Warningf(f string, v ...any) { l.logger.Warnf(f, v...) }
func (l *badgerLogger) Infof(f string, v ...any)    { l.logger.Infof(f, v...) }
func (l *badgerLogger) Debugf(f string, v ...any)   { l.logger.Debugf(f, v...) }
