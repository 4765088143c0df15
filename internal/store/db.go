package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:generate mockgen -destination=mock_database.go -package=store github.com/tempizhere/linkvault/internal/store Database

// Database определяет интерфейс для работы с базой данных
type Database interface {
	// PingContext проверяет соединение с базой данных
	PingContext(ctx context.Context) error
	// Close закрывает соединение с базой данных
	Close() error
	// ExecContext выполняет SQL-команду без возврата результатов
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	// QueryContext выполняет SQL-запрос и возвращает результаты
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// BeginTx начинает новую транзакцию
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// ErrUnsupportedDSN возвращается для строки подключения неизвестного формата
var ErrUnsupportedDSN = errors.New("unsupported database DSN")

// DB представляет подключение к базе данных
type DB struct {
	conn    *sql.DB
	dialect Dialect
}

// OpenDB открывает подключение по DSN и выбирает диалект:
// postgres:// и postgresql:// работают через pgx, sqlite:// и file: через modernc sqlite.
func OpenDB(ctx context.Context, dsn string) (*DB, error) {
	driver, source, dialect, err := parseDSN(dsn)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}
	if dialect == SQLite {
		// SQLite не допускает параллельной записи
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	// Создаём таблицы
	for _, ddl := range dialect.Schema() {
		if _, err := conn.ExecContext(ctx, ddl); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return &DB{conn: conn, dialect: dialect}, nil
}

func parseDSN(dsn string) (driver, source string, dialect Dialect, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "pgx", dsn, Postgres, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite", strings.TrimPrefix(dsn, "sqlite://"), SQLite, nil
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:":
		return "sqlite", dsn, SQLite, nil
	default:
		return "", "", Postgres, ErrUnsupportedDSN
	}
}

// Dialect возвращает диалект подключения
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// PingContext проверяет соединение с базой данных
func (db *DB) PingContext(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// ExecContext выполняет SQL-запрос с аргументами
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, query, args...)
}

// QueryContext выполняет SQL-запрос и возвращает множество строк
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, query, args...)
}

// BeginTx начинает транзакцию
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	if db == nil || db.conn == nil {
		return nil, sql.ErrConnDone
	}
	return db.conn.BeginTx(ctx, opts)
}
