// Package dialect defines the target database dialects supported by the
// conversion engine.
//
// # Supported Dialects
//
// The following dialects are supported:
//
//   - MySQL: MySQL/MariaDB database
//   - Postgres: PostgreSQL database
//   - SQLite: SQLite database
//   - MongoDB: MongoDB document database
//
// # Dialect Constants
//
// Each dialect is identified by a constant string:
//
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//	dialect.SQLite   = "sqlite"
//	dialect.MongoDB  = "mongodb"
//
// Input tags are normalized case-insensitively and tolerate common
// aliases ("postgresql", "pg", "mariadb", "sqlite3", "mongo"):
//
//	d, err := dialect.Normalize("PostgreSQL") // dialect.Postgres
//
// The conversion dialect set is independent of the source-definition
// dialects handled by the ingest package.
package dialect

import (
	"fmt"
	"strings"

	"github.com/morphedb/morphe"
)

// Supported conversion dialects.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
	MongoDB  = "mongodb"
)

// aliases maps lowercased input tags to canonical dialect constants.
var aliases = map[string]string{
	MySQL:        MySQL,
	"mariadb":    MySQL,
	Postgres:     Postgres,
	"postgresql": Postgres,
	"pg":         Postgres,
	SQLite:       SQLite,
	"sqlite3":    SQLite,
	MongoDB:      MongoDB,
	"mongo":      MongoDB,
	"documentdb": MongoDB,
}

// All returns the canonical dialect tags in a stable order.
func All() []string {
	return []string{MySQL, Postgres, SQLite, MongoDB}
}

// Normalize resolves a dialect tag case-insensitively, tolerating common
// aliases. It returns an InvalidRequestError wrapping
// morphe.ErrUnsupportedDialect for unknown tags.
func Normalize(tag string) (string, error) {
	if d, ok := aliases[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return d, nil
	}
	return "", morphe.NewInvalidRequestError(
		fmt.Sprintf("unsupported dialect %q", tag),
		morphe.ErrUnsupportedDialect,
	)
}
