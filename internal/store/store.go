// Package store содержит абстракцию табличного хранилища и её реализации:
// in-memory, файловую, SQL (PostgreSQL, SQLite) и BadgerDB.
package store

import (
	"context"
	"errors"
	"regexp"
)

// Table задаёт имя таблицы хранилища
type Table string

// Таблицы, с которыми работает приложение
const (
	TableLinks           Table = "main_table"
	TableLinkStatus      Table = "sub_main_table"
	TableClassifications Table = "categories_tags"
	TableLists           Table = "lists_users"
	TableListItems       Table = "lists_items"
	TableCollections     Table = "collections"
)

// Tables перечисляет все известные таблицы
var Tables = []Table{
	TableLinks,
	TableLinkStatus,
	TableClassifications,
	TableLists,
	TableListItems,
	TableCollections,
}

var (
	// ErrUnknownTable возвращается при обращении к неизвестной таблице
	ErrUnknownTable = errors.New("unknown table")
	// ErrEmptyFilter возвращается при попытке обновить или удалить строки без фильтра
	ErrEmptyFilter = errors.New("empty filter")
	// ErrInvalidColumn возвращается для недопустимого имени столбца
	ErrInvalidColumn = errors.New("invalid column name")
	// ErrNoRows возвращается при вставке без строк
	ErrNoRows = errors.New("no rows to insert")
)

// Filter задаёт условия отбора: столбец -> значение.
// Срез в качестве значения означает проверку на вхождение (IN).
type Filter map[string]any

// Store определяет табличное хранилище. Каждый вызов атомарен сам по себе,
// транзакций между вызовами нет.
type Store interface {
	// Select возвращает строки таблицы, удовлетворяющие фильтру
	Select(ctx context.Context, table Table, filter Filter, opts ...SelectOption) ([]Row, error)
	// Insert вставляет строки и возвращает их в том виде, в каком они сохранены (с id)
	Insert(ctx context.Context, table Table, rows ...Row) ([]Row, error)
	// Update применяет patch к строкам по фильтру и возвращает обновлённые строки
	Update(ctx context.Context, table Table, filter Filter, patch Row) ([]Row, error)
	// Delete удаляет строки по фильтру
	Delete(ctx context.Context, table Table, filter Filter) error
	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error
	// Close освобождает ресурсы хранилища
	Close() error
}

// SelectOptions содержит параметры выборки
type SelectOptions struct {
	OrderBy string
	Desc    bool
	Limit   int
}

// SelectOption изменяет параметры выборки
type SelectOption func(*SelectOptions)

// OrderBy задаёт сортировку по столбцу
func OrderBy(column string, desc bool) SelectOption {
	return func(o *SelectOptions) {
		o.OrderBy = column
		o.Desc = desc
	}
}

// Limit ограничивает количество строк
func Limit(n int) SelectOption {
	return func(o *SelectOptions) {
		o.Limit = n
	}
}

func applyOptions(opts []SelectOption) SelectOptions {
	var o SelectOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validColumn проверяет, что имя столбца безопасно подставлять в запрос
func validColumn(name string) bool {
	return columnPattern.MatchString(name)
}

// knownTable проверяет, что таблица входит в схему
func knownTable(t Table) bool {
	for _, known := range Tables {
		if known == t {
			return true
		}
	}
	return false
}

func validateFilter(f Filter) error {
	for col := range f {
		if !validColumn(col) {
			return ErrInvalidColumn
		}
	}
	return nil
}
