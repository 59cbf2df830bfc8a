package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/derbybracket/internal/bracket"
	"github.com/abrezinsky/derbybracket/internal/models"
)

// timeLayout is how timestamps are stored in TEXT columns
const timeLayout = time.RFC3339Nano

// Repository provides data access methods
type Repository struct {
	db *sql.DB
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db}

	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS tournaments (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			round_labels TEXT,
			data TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tournament_id TEXT NOT NULL,
			type TEXT NOT NULL,
			round INTEGER NOT NULL,
			game INTEGER,
			team INTEGER,
			score REAL,
			payload TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (tournament_id) REFERENCES tournaments(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_tournament ON events(tournament_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tournaments_updated ON tournaments(updated_at)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

// ==================== Tournament Methods ====================

// CreateTournament inserts a new tournament
func (r *Repository) CreateTournament(ctx context.Context, t *models.Tournament) error {
	data, err := json.Marshal(t.Data)
	if err != nil {
		return err
	}
	labels, err := encodeLabels(t.RoundLabels)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO tournaments (id, name, round_labels, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, labels, string(data), t.CreatedAt.UTC().Format(timeLayout), t.UpdatedAt.UTC().Format(timeLayout))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateID
	}
	return err
}

// GetTournament retrieves a tournament by id
func (r *Repository) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, round_labels, data, created_at, updated_at
		FROM tournaments WHERE id = ?
	`, id)
	t, err := scanTournament(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTournaments returns every tournament, most recently updated first
func (r *Repository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, round_labels, data, created_at, updated_at
		FROM tournaments ORDER BY updated_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, *t)
	}
	return tournaments, rows.Err()
}

// SaveTournamentData replaces the stored rounds and appends events atomically
func (r *Repository) SaveTournamentData(ctx context.Context, id string, data bracket.Tournament, updatedAt time.Time, events []models.Event) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE tournaments SET data = ?, updated_at = ? WHERE id = ?`,
		string(encoded), updatedAt.UTC().Format(timeLayout), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	for _, e := range events {
		var payload sql.NullString
		if e.Payload != "" {
			payload = sql.NullString{String: e.Payload, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO events (tournament_id, type, round, game, team, score, payload, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, e.Type, e.Round, e.Game, e.Team, e.Score, payload, e.CreatedAt.UTC().Format(timeLayout))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteTournament removes a tournament and its events
func (r *Repository) DeleteTournament(ctx context.Context, id string) error {
	// Delete the event log first (foreign key constraint)
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE tournament_id = ?`, id); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var (
		t                models.Tournament
		labels           sql.NullString
		data             string
		created, updated string
	)
	if err := row.Scan(&t.ID, &t.Name, &labels, &data, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &t.Data); err != nil {
		return nil, err
	}
	if labels.Valid && labels.String != "" {
		if err := json.Unmarshal([]byte(labels.String), &t.RoundLabels); err != nil {
			return nil, err
		}
	}
	var err error
	if t.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, err
	}
	return &t, nil
}

func encodeLabels(labels []string) (sql.NullString, error) {
	if len(labels) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// ==================== Event Methods ====================

// ListEvents returns the newest events of a tournament in chronological order.
// A limit of zero or less returns every event.
func (r *Repository) ListEvents(ctx context.Context, tournamentID string, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tournament_id, type, round, game, team, score, payload, created_at FROM (
			SELECT * FROM events WHERE tournament_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id
	`, tournamentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			e       models.Event
			game    sql.NullInt64
			team    sql.NullInt64
			score   sql.NullFloat64
			payload sql.NullString
			created string
		)
		if err := rows.Scan(&e.ID, &e.TournamentID, &e.Type, &e.Round, &game, &team, &score, &payload, &created); err != nil {
			return nil, err
		}
		if game.Valid {
			g := int(game.Int64)
			e.Game = &g
		}
		if team.Valid {
			tm := int(team.Int64)
			e.Team = &tm
		}
		if score.Valid {
			s := score.Float64
			e.Score = &s
		}
		e.Payload = payload.String
		if e.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the number of recorded events for a tournament
func (r *Repository) CountEvents(ctx context.Context, tournamentID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE tournament_id = ?`, tournamentID).Scan(&n)
	return n, err
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// ListSettings returns every stored setting
func (r *Repository) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// ==================== Database Management Methods ====================

// validTables defines which tables can be safely cleared
var validTables = map[string]bool{
	"tournaments": true, "events": true, "settings": true,
}

// ClearTable clears all data from a table
// Only allows clearing whitelisted tables to prevent SQL injection
func (r *Repository) ClearTable(ctx context.Context, table string) error {
	if !validTables[table] {
		return ErrInvalidTable
	}

	// Safe to use string concatenation now that we've validated the table name
	_, err := r.db.ExecContext(ctx, "DELETE FROM "+table)
	return err
}
