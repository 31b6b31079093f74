package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect defines the interface for database-specific operations
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (e.g., ? to $1 for postgres)
	RewriteQuery(query string) string

	// ConfigureConnection applies any database-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir returns the subdirectory name for migrations (e.g., "sqlite", "postgres")
	MigrationsSubdir() string

	// CreateMigrationsTableQuery returns the SQL to create the migrations tracking table
	CreateMigrationsTableQuery() string

	// UpsertSessionStateQuery inserts or replaces one session_states row.
	// Placeholders: learner_id, state_key, day, word, payload, updated_at.
	UpsertSessionStateQuery() string
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// For SQLite
	Path string

	// For PostgreSQL/MySQL
	URL string
}

// placeholderRegexp matches ? placeholders
var placeholderRegexp = regexp.MustCompile(`\?`)

// rewritePlaceholdersToNumbered converts ? placeholders to $1, $2, etc.
func rewritePlaceholdersToNumbered(query string) string {
	counter := 0
	return placeholderRegexp.ReplaceAllStringFunc(query, func(match string) string {
		counter++
		return "$" + strconv.Itoa(counter)
	})
}

// upsertOnConflict is shared by SQLite and PostgreSQL, which both support
// ON CONFLICT ... DO UPDATE with EXCLUDED
const upsertOnConflict = `
	INSERT INTO session_states (learner_id, state_key, day, word, payload, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (learner_id, state_key) DO UPDATE SET
		day = excluded.day,
		word = excluded.word,
		payload = excluded.payload,
		updated_at = excluded.updated_at
`
