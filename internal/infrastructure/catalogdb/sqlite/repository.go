// Package sqlite provides a SQLite implementation of the CatalogDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	msqlite "modernc.org/sqlite" // Pure Go SQLite driver
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
	"github.com/ersonp/pokedex-core/internal/infrastructure/config"
)

// memoryPath is the SQLite path for a private in-memory database.
const memoryPath = ":memory:"

// columnFields maps unique columns to the catalog field they hold.
var columnFields = map[string]string{
	"id":         "id",
	"catalog_no": "no",
	"name":       "name",
}

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.CatalogDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

var _ ports.CatalogDB = (*Repository)(nil)

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	if cfg.Path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, errors.Wrap(err, "creating database directory")
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite database")
	}

	// Every connection to ":memory:" is a separate database
	if cfg.Path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enabling WAL mode")
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "setting busy timeout")
	}

	return newRepository(db, cfg.Path), nil
}

func newRepository(db *sql.DB, path string) *Repository {
	return &Repository{
		db:   db,
		path: path,
	}
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pokemon (
		id TEXT PRIMARY KEY,
		catalog_no INTEGER NOT NULL UNIQUE,
		name TEXT NOT NULL UNIQUE,
		revision INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "creating schema")
	}
	return nil
}

const insertPokemonQuery = `
	INSERT INTO pokemon (id, catalog_no, name, revision, created_at, updated_at)
	VALUES (?, ?, ?, 0, ?, ?)
`

// InsertPokemon inserts a single record and assigns its ID and timestamps.
func (r *Repository) InsertPokemon(ctx context.Context, pokemon *entities.Pokemon) error {
	stamp(pokemon)
	_, err := r.db.ExecContext(ctx, insertPokemonQuery,
		pokemon.ID,
		pokemon.No,
		pokemon.Name,
		pokemon.CreatedAt,
		pokemon.UpdatedAt,
	)
	if err != nil {
		return translateWriteErr(err, "inserting pokemon", pokemon.No, pokemon.Name)
	}
	return nil
}

// InsertPokemonBatch inserts every record in one transaction. Either all
// records are committed or none are.
func (r *Repository) InsertPokemonBatch(ctx context.Context, batch []*entities.Pokemon) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning batch insert")
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.WithSecondaryError(err, rbErr)
			}
		}
	}()

	for _, pokemon := range batch {
		stamp(pokemon)
		if _, err := tx.ExecContext(ctx, insertPokemonQuery,
			pokemon.ID,
			pokemon.No,
			pokemon.Name,
			pokemon.CreatedAt,
			pokemon.UpdatedAt,
		); err != nil {
			return translateWriteErr(err, "inserting pokemon batch", pokemon.No, pokemon.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "committing batch insert")
	}
	return nil
}

const selectPokemonColumns = `SELECT id, catalog_no, name, revision, created_at, updated_at FROM pokemon`

// FindPokemonByNo finds a record by catalog number.
func (r *Repository) FindPokemonByNo(ctx context.Context, no int) (*entities.Pokemon, error) {
	return r.findOne(ctx, selectPokemonColumns+` WHERE catalog_no = ?`, no)
}

// FindPokemonByID finds a record by ID.
func (r *Repository) FindPokemonByID(ctx context.Context, id string) (*entities.Pokemon, error) {
	return r.findOne(ctx, selectPokemonColumns+` WHERE id = ?`, id)
}

// FindPokemonByName finds a record by its normalized name.
func (r *Repository) FindPokemonByName(ctx context.Context, name string) (*entities.Pokemon, error) {
	return r.findOne(ctx, selectPokemonColumns+` WHERE name = ?`, entities.NormalizeName(name))
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*entities.Pokemon, error) {
	row := r.db.QueryRowContext(ctx, query, args...)

	var pokemon entities.Pokemon
	err := row.Scan(
		&pokemon.ID,
		&pokemon.No,
		&pokemon.Name,
		&pokemon.Revision,
		&pokemon.CreatedAt,
		&pokemon.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "scanning pokemon")
	}
	return &pokemon, nil
}

// ListPokemon returns records ordered by catalog number. The revision
// column is not selected.
func (r *Repository) ListPokemon(ctx context.Context, limit, offset int) ([]*entities.Pokemon, error) {
	query := `
		SELECT id, catalog_no, name, created_at, updated_at
		FROM pokemon
		ORDER BY catalog_no ASC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "querying pokemon")
	}
	defer rows.Close()

	// limit is caller-controlled; size from the rows actually returned.
	var result []*entities.Pokemon
	for rows.Next() {
		var pokemon entities.Pokemon
		if err := rows.Scan(
			&pokemon.ID,
			&pokemon.No,
			&pokemon.Name,
			&pokemon.CreatedAt,
			&pokemon.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning pokemon")
		}
		result = append(result, &pokemon)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating pokemon")
	}
	if result == nil {
		result = []*entities.Pokemon{}
	}
	return result, nil
}

// UpdatePokemon applies patch to the record with the given ID and bumps its
// revision. Updating an unknown ID is a no-op.
func (r *Repository) UpdatePokemon(ctx context.Context, id string, patch entities.PokemonPatch) error {
	sets := []string{"revision = revision + 1", "updated_at = ?"}
	args := []any{timeNow()}

	no, name := 0, ""
	if patch.No != nil {
		no = *patch.No
		sets = append(sets, "catalog_no = ?")
		args = append(args, no)
	}
	if patch.Name != nil {
		name = entities.NormalizeName(*patch.Name)
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	args = append(args, id)

	query := `UPDATE pokemon SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return translateWriteErr(err, "updating pokemon", no, name)
	}
	return nil
}

// DeletePokemon deletes a record by exact ID.
func (r *Repository) DeletePokemon(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pokemon WHERE id = ?`, id)
	if err != nil {
		return 0, errors.Wrap(err, "deleting pokemon")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "reading affected rows")
	}
	return n, nil
}

// DeleteAllPokemon empties the catalog.
func (r *Repository) DeleteAllPokemon(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pokemon`)
	if err != nil {
		return 0, errors.Wrap(err, "deleting all pokemon")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "reading affected rows")
	}
	return n, nil
}

// CountPokemon returns the number of records.
func (r *Repository) CountPokemon(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pokemon`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "counting pokemon")
	}
	return count, nil
}

// IsValidID reports whether s is a UUID.
func (r *Repository) IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// stamp assigns a fresh ID and creation timestamps.
func stamp(pokemon *entities.Pokemon) {
	now := timeNow()
	pokemon.ID = generateUUID()
	pokemon.Revision = 0
	pokemon.CreatedAt = now
	pokemon.UpdatedAt = now
}

// translateWriteErr turns a unique constraint failure into a
// *ports.UniqueViolation naming the colliding field and the value written.
func translateWriteErr(err error, op string, no int, name string) error {
	if !isUniqueViolation(err) {
		return errors.Wrap(err, op)
	}

	field := violatedField(err)
	var value string
	switch field {
	case "no":
		value = strconv.Itoa(no)
	case "name":
		value = name
	}
	return &ports.UniqueViolation{Field: field, Value: value, Err: err}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// violatedField reads the column out of "UNIQUE constraint failed: pokemon.<column>".
func violatedField(err error) string {
	msg := err.Error()
	idx := strings.Index(msg, "pokemon.")
	if idx < 0 {
		return "unknown"
	}
	column := msg[idx+len("pokemon."):]
	if end := strings.IndexFunc(column, func(r rune) bool {
		return r != '_' && (r < 'a' || r > 'z')
	}); end >= 0 {
		column = column[:end]
	}
	if field, ok := columnFields[column]; ok {
		return field
	}
	return column
}
