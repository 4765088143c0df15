package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore реализует интерфейс Store с использованием map
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[Table]map[int64]Row
	nextID map[Table]int64
	now    func() time.Time
}

// NewMemoryStore создаёт новый экземпляр MemoryStore
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		tables: make(map[Table]map[int64]Row),
		nextID: make(map[Table]int64),
		now:    time.Now,
	}
	for _, t := range Tables {
		s.tables[t] = make(map[int64]Row)
	}
	return s
}

// Select возвращает копии строк, удовлетворяющих фильтру, по умолчанию в порядке id
func (s *MemoryStore) Select(ctx context.Context, table Table, filter Filter, opts ...SelectOption) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	result := make([]Row, 0)
	for _, id := range sortedIDs(rows) {
		if filter.Matches(rows[id]) {
			result = append(result, rows[id].Clone())
		}
	}
	return sortRows(result, applyOptions(opts)), nil
}

// Insert сохраняет строки, назначая id и created_at, если они не заданы
func (s *MemoryStore) Insert(ctx context.Context, table Table, rows ...Row) ([]Row, error) {
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
	return s.insertLocked(table, rows)
}

func (s *MemoryStore) insertLocked(table Table, rows []Row) ([]Row, error) {
	stored, ok := s.tables[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	inserted := make([]Row, 0, len(rows))
	for _, r := range rows {
		row := normalizeRow(r)
		id, ok := row.Int64("id")
		if !ok {
			s.nextID[table]++
			id = s.nextID[table]
		} else if id > s.nextID[table] {
			s.nextID[table] = id
		}
		row["id"] = id
		if !row.Has("created_at") {
			row["created_at"] = s.now().UTC()
		}
		stored[id] = row
		inserted = append(inserted, row.Clone())
	}
	return inserted, nil
}

// Update применяет patch к строкам, удовлетворяющим фильтру
func (s *MemoryStore) Update(ctx context.Context, table Table, filter Filter, patch Row) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
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
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(table, filter, patch)
}

func (s *MemoryStore) updateLocked(table Table, filter Filter, patch Row) ([]Row, error) {
	stored, ok := s.tables[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	normalized := normalizeRow(patch)
	delete(normalized, "id")
	updated := make([]Row, 0)
	for _, id := range sortedIDs(stored) {
		row := stored[id]
		if !filter.Matches(row) {
			continue
		}
		for k, v := range normalized {
			row[k] = v
		}
		updated = append(updated, row.Clone())
	}
	return updated, nil
}

// Delete удаляет строки, удовлетворяющие фильтру
func (s *MemoryStore) Delete(ctx context.Context, table Table, filter Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(filter) == 0 {
		return ErrEmptyFilter
	}
	if err := validateFilter(filter); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.deleteLocked(table, filter)
	return err
}

func (s *MemoryStore) deleteLocked(table Table, filter Filter) (int, error) {
	stored, ok := s.tables[table]
	if !ok {
		return 0, ErrUnknownTable
	}
	removed := 0
	for id, row := range stored {
		if filter.Matches(row) {
			delete(stored, id)
			removed++
		}
	}
	return removed, nil
}

// Ping всегда успешен для хранилища в памяти
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close ничего не делает
func (s *MemoryStore) Close() error {
	return nil
}

// Clear очищает все таблицы и счётчики id
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range Tables {
		s.tables[t] = make(map[int64]Row)
		s.nextID[t] = 0
	}
}

func sortedIDs(rows map[int64]Row) []int64 {
	ids := make([]int64, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
