// Package service содержит бизнес-логику работы со ссылками, списками и коллекциями
// поверх табличного хранилища.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tempizhere/linkvault/internal/store"
)

// Service реализует операции над ссылками, списками и коллекциями
type Service struct {
	store      store.Store
	logger     *zap.Logger
	compensate bool
	now        func() time.Time
}

// Option настраивает Service
type Option func(*Service)

// WithCompensation включает удаление уже записанных строк, если одна из
// зависимых вставок при создании ссылки не удалась. По умолчанию выключено:
// основная запись остаётся в хранилище.
func WithCompensation(enabled bool) Option {
	return func(s *Service) {
		s.compensate = enabled
	}
}

// WithClock задаёт источник времени для created_at и modified_at
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService создаёт новый экземпляр Service
func NewService(st store.Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.compensate {
		logger.Info("Write compensation enabled: dependent insert failures remove the created link")
	}
	return s
}

// Ping проверяет доступность хранилища
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// selectRows выполняет выборку и заворачивает ошибку хранилища
func (s *Service) selectRows(ctx context.Context, table store.Table, filter store.Filter, opts ...store.SelectOption) ([]store.Row, error) {
	rows, err := s.store.Select(ctx, table, filter, opts...)
	if err != nil {
		return nil, &StoreWriteError{Step: StepSelect, Table: table, Err: err}
	}
	return rows, nil
}

// selectOne возвращает строку по id или ErrNotFound
func (s *Service) selectOne(ctx context.Context, table store.Table, id int64) (store.Row, error) {
	rows, err := s.selectRows(ctx, table, store.Filter{"id": id}, store.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// insertOne вставляет одну строку и возвращает её сохранённый вид
func (s *Service) insertOne(ctx context.Context, table store.Table, row store.Row) (store.Row, error) {
	inserted, err := s.store.Insert(ctx, table, row)
	if err != nil {
		s.logger.Error("Failed to insert row", zap.String("table", string(table)), zap.Error(err))
		return nil, &StoreWriteError{Step: StepInsert, Table: table, Err: err}
	}
	if len(inserted) == 0 {
		return nil, &StoreWriteError{Step: StepInsert, Table: table, Err: ErrNoRowReturned}
	}
	return inserted[0], nil
}

// updateOne применяет patch к строке по id; пустой patch и отсутствие строки - ошибки
func (s *Service) updateOne(ctx context.Context, table store.Table, id int64, patch store.Row) (store.Row, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyPatch
	}
	updated, err := s.store.Update(ctx, table, store.Filter{"id": id}, patch)
	if err != nil {
		s.logger.Error("Failed to update row", zap.String("table", string(table)), zap.Int64("id", id), zap.Error(err))
		return nil, &StoreWriteError{Step: StepUpdate, Table: table, Err: err}
	}
	if len(updated) == 0 {
		return nil, ErrNotFound
	}
	return updated[0], nil
}

// deleteByID удаляет строку по id; отсутствие строки ошибкой не считается
func (s *Service) deleteByID(ctx context.Context, table store.Table, id int64) error {
	if err := s.store.Delete(ctx, table, store.Filter{"id": id}); err != nil {
		s.logger.Error("Failed to delete row", zap.String("table", string(table)), zap.Int64("id", id), zap.Error(err))
		return &StoreWriteError{Step: StepDelete, Table: table, Err: err}
	}
	return nil
}
