// Package migrations holds the dialect-aware Go migrations for the content
// schema. Column types differ enough between sqlite, postgres and mysql that
// a single SQL file cannot serve all three.
package migrations

import "github.com/jmoiron/sqlx"

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}

// idType is the column type for opaque string identifiers.
func idType() string {
	if dialect == "mysql" {
		return "VARCHAR(191)"
	}
	return "TEXT"
}

// textType is the column type for bundle variants and paths. MySQL rejects
// literal defaults on TEXT columns, so inserts always supply a value there.
func textType() string {
	if dialect == "mysql" {
		return "TEXT NOT NULL"
	}
	return "TEXT NOT NULL DEFAULT ''"
}

// bind rewrites ? placeholders for the active dialect.
func bind(query string) string {
	driver := dialect
	if driver == "" {
		driver = "sqlite3"
	}
	return sqlx.Rebind(sqlx.BindType(driver), query)
}
