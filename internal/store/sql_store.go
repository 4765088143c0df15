package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

var _ Store = (*SQLStore)(nil)

// SQLStore реализует интерфейс Store поверх database/sql
type SQLStore struct {
	db      Database
	dialect Dialect
	logger  *zap.Logger
}

// NewSQLStore создаёт новый экземпляр SQLStore
func NewSQLStore(db Database, dialect Dialect, logger *zap.Logger) *SQLStore {
	return &SQLStore{
		db:      db,
		dialect: dialect,
		logger:  logger,
	}
}

// quote заключает идентификатор в двойные кавычки
func quote(name string) string {
	return `"` + name + `"`
}

// where строит условие WHERE для фильтра; аргументы нумеруются начиная с start
func (s *SQLStore) where(filter Filter, start int) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	cols := make([]string, 0, len(filter))
	for col := range filter {
		if !validColumn(col) {
			return "", nil, ErrInvalidColumn
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var conditions []string
	var args []any
	n := start
	for _, col := range cols {
		v := filter[col]
		if values, ok := inValues(v); ok {
			if len(values) == 0 {
				conditions = append(conditions, "1 = 0")
				continue
			}
			placeholders := make([]string, len(values))
			for i, value := range values {
				placeholders[i] = s.dialect.Placeholder(n)
				args = append(args, normalizeValue(value))
				n++
			}
			conditions = append(conditions, quote(col)+" IN ("+strings.Join(placeholders, ", ")+")")
			continue
		}
		if v == nil {
			conditions = append(conditions, quote(col)+" IS NULL")
			continue
		}
		conditions = append(conditions, quote(col)+" = "+s.dialect.Placeholder(n))
		args = append(args, normalizeValue(v))
		n++
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// Select выполняет SELECT * по фильтру
func (s *SQLStore) Select(ctx context.Context, table Table, filter Filter, opts ...SelectOption) ([]Row, error) {
	if !knownTable(table) {
		return nil, ErrUnknownTable
	}
	where, args, err := s.where(filter, 1)
	if err != nil {
		return nil, err
	}
	query := "SELECT * FROM " + quote(string(table)) + where

	o := applyOptions(opts)
	if o.OrderBy != "" {
		if !validColumn(o.OrderBy) {
			return nil, ErrInvalidColumn
		}
		query += " ORDER BY " + quote(o.OrderBy)
		if o.Desc {
			query += " DESC"
		}
	}
	if o.Limit > 0 {
		query += " LIMIT " + strconv.Itoa(o.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to select rows", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// Insert вставляет строки по одной с RETURNING *; несколько строк вставляются в транзакции
func (s *SQLStore) Insert(ctx context.Context, table Table, rows ...Row) ([]Row, error) {
	if !knownTable(table) {
		return nil, ErrUnknownTable
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	if len(rows) == 1 {
		return s.insertOne(ctx, s.db, table, rows[0])
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("Failed to start transaction", zap.Error(err))
		return nil, err
	}
	var inserted []Row
	for _, r := range rows {
		out, err := s.insertOne(ctx, tx, table, r)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		inserted = append(inserted, out...)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("Failed to commit transaction", zap.Error(err))
		return nil, err
	}
	return inserted, nil
}

// querier объединяет *sql.Tx и Database для выполнения запросов
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SQLStore) insertOne(ctx context.Context, q querier, table Table, r Row) ([]Row, error) {
	cols := r.Columns()
	var query string
	args := make([]any, 0, len(cols))
	if len(cols) == 0 {
		query = "INSERT INTO " + quote(string(table)) + " DEFAULT VALUES RETURNING *"
	} else {
		quoted := make([]string, len(cols))
		placeholders := make([]string, len(cols))
		for i, col := range cols {
			if !validColumn(col) {
				return nil, ErrInvalidColumn
			}
			quoted[i] = quote(col)
			placeholders[i] = s.dialect.Placeholder(i + 1)
			args = append(args, sqlValue(r[col]))
		}
		query = "INSERT INTO " + quote(string(table)) + " (" + strings.Join(quoted, ", ") +
			") VALUES (" + strings.Join(placeholders, ", ") + ") RETURNING *"
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("Failed to insert row", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// Update выполняет UPDATE ... RETURNING *
func (s *SQLStore) Update(ctx context.Context, table Table, filter Filter, patch Row) ([]Row, error) {
	if !knownTable(table) {
		return nil, ErrUnknownTable
	}
	if len(filter) == 0 {
		return nil, ErrEmptyFilter
	}
	cols := patch.Columns()
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		if !validColumn(col) {
			return nil, ErrInvalidColumn
		}
		if col == "id" {
			continue
		}
		args = append(args, sqlValue(patch[col]))
		sets = append(sets, quote(col)+" = "+s.dialect.Placeholder(len(args)))
	}
	if len(sets) == 0 {
		// Нечего обновлять: возвращаем текущее состояние строк
		return s.Select(ctx, table, filter)
	}
	where, whereArgs, err := s.where(filter, len(args)+1)
	if err != nil {
		return nil, err
	}
	query := "UPDATE " + quote(string(table)) + " SET " + strings.Join(sets, ", ") + where + " RETURNING *"

	rows, err := s.db.QueryContext(ctx, query, append(args, whereArgs...)...)
	if err != nil {
		s.logger.Error("Failed to update rows", zap.String("table", string(table)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// Delete выполняет DELETE по фильтру
func (s *SQLStore) Delete(ctx context.Context, table Table, filter Filter) error {
	if !knownTable(table) {
		return ErrUnknownTable
	}
	if len(filter) == 0 {
		return ErrEmptyFilter
	}
	where, args, err := s.where(filter, 1)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "DELETE FROM "+quote(string(table))+where, args...)
	if err != nil {
		s.logger.Error("Failed to delete rows", zap.String("table", string(table)), zap.Error(err))
		return err
	}
	return nil
}

// Ping проверяет соединение с базой данных
func (s *SQLStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return sql.ErrConnDone
	}
	return s.db.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// sqlValue приводит значение к виду, понятному драйверу
func sqlValue(v any) any {
	switch x := normalizeValue(v).(type) {
	case map[string]any, []any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	default:
		return x
	}
}

// scanRows читает все строки результата в []Row
func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			case time.Time:
				row[col] = v.UTC()
			default:
				row[col] = normalizeValue(v)
			}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}
