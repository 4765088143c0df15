package store

import "strconv"

// Dialect описывает различия SQL-диалектов
type Dialect int

// Поддерживаемые диалекты
const (
	Postgres Dialect = iota
	SQLite
)

// String возвращает имя диалекта
func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Placeholder возвращает плейсхолдер для n-го аргумента (с единицы)
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

// Schema возвращает DDL для всех таблиц приложения.
// Внешних ключей нет: удаление не каскадируется, порядок записи задаёт сервис.
func (d Dialect) Schema() []string {
	id := "BIGSERIAL PRIMARY KEY"
	ts := "TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP"
	boolean := "BOOLEAN"
	if d == SQLite {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
		ts = "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS "main_table" (
			"id" ` + id + `,
			"title" TEXT,
			"url" TEXT,
			"description" TEXT,
			"icon" TEXT,
			"image" TEXT,
			"logo" TEXT,
			"name" TEXT,
			"created_at" ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS "sub_main_table" (
			"id" ` + id + `,
			"id_src" BIGINT NOT NULL,
			"user_id" TEXT,
			"accessible" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"domain_exists" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"html_content_exists" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"is_public" ` + boolean + ` NOT NULL DEFAULT TRUE,
			"secure" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"valid_url" ` + boolean + ` NOT NULL DEFAULT TRUE,
			"AI" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"status_code" INTEGER,
			"type" TEXT,
			"created_at" ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS "categories_tags" (
			"id" ` + id + `,
			"id_src" BIGINT NOT NULL,
			"id_area" BIGINT NOT NULL DEFAULT -1,
			"id_cat" BIGINT NOT NULL DEFAULT -1,
			"tag_3" BIGINT NOT NULL DEFAULT -1,
			"tag_4" BIGINT NOT NULL DEFAULT -1,
			"tag_5" BIGINT NOT NULL DEFAULT -1,
			"id_provider" BIGINT,
			"ratings" TEXT,
			"AI_think" TEXT,
			"AI_Summary" TEXT,
			"created_at" ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS "lists_users" (
			"id" ` + id + `,
			"name" TEXT,
			"description" TEXT,
			"public" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"id_user" TEXT,
			"id_collection" BIGINT,
			"created_at" ` + ts + `,
			"modified_at" ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS "lists_items" (
			"id" ` + id + `,
			"id_list" BIGINT NOT NULL,
			"id_src" BIGINT NOT NULL,
			"created_at" ` + ts + `
		)`,
		`CREATE TABLE IF NOT EXISTS "collections" (
			"id" ` + id + `,
			"name" TEXT,
			"description" TEXT,
			"is_public" ` + boolean + ` NOT NULL DEFAULT FALSE,
			"user_id" TEXT,
			"created_at" ` + ts + `
		)`,
		`CREATE INDEX IF NOT EXISTS "idx_sub_main_table_id_src" ON "sub_main_table" ("id_src")`,
		`CREATE INDEX IF NOT EXISTS "idx_categories_tags_id_src" ON "categories_tags" ("id_src")`,
		`CREATE INDEX IF NOT EXISTS "idx_lists_items_id_list" ON "lists_items" ("id_list")`,
	}
}
