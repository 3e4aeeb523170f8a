package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/israil64/laptop-galaxy/internal/models"
)

// SQLiteStore keeps one document table per entity kind: records are stored as
// JSON text keyed by a UUID, which keeps the storage contract identical to
// the other strategies while getting row-level atomicity from SQLite.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	for _, table := range []string{"laptops", "reviews", "messages", "users"} {
		query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			doc TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`, table)
		if _, err := s.db.Exec(query); err != nil {
			slog.Error("Error creating schema", "table", table, "error", err)
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Close(ctx context.Context) error { return s.db.Close() }

func sqliteList[T any](ctx context.Context, db *sql.DB, table string) ([]T, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT doc FROM %s ORDER BY rowid`, table))
	if err != nil {
		slog.Warn("sqlitestore: list failed, treating as empty", "table", table, "error", err)
		return []T{}, nil
	}
	defer rows.Close()

	recs := []T{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			slog.Warn("sqlitestore: scan failed, skipping row", "table", table, "error", err)
			continue
		}
		var rec T
		if err := json.Unmarshal([]byte(doc), &rec); err != nil {
			slog.Warn("sqlitestore: unparseable document, skipping row", "table", table, "error", err)
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func sqliteCreate[T any](ctx context.Context, db *sql.DB, table string, rec T, setID func(*T, string)) (T, error) {
	var zero T
	id := uuid.NewString()
	setID(&rec, id)
	doc, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode document: %w", err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?)`, table)
	if _, err := db.ExecContext(ctx, query, id, string(doc)); err != nil {
		return zero, fmt.Errorf("insert into %s: %w", table, err)
	}
	return rec, nil
}

func sqliteUpdate[T any](ctx context.Context, db *sql.DB, table, id string, apply func(*T)) (T, error) {
	var zero T
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()

	var doc string
	err = tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, table), id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("select from %s: %w", table, err)
	}

	var rec T
	if err := json.Unmarshal([]byte(doc), &rec); err != nil {
		return zero, fmt.Errorf("decode document: %w", err)
	}
	apply(&rec)
	updated, err := json.Marshal(rec)
	if err != nil {
		return zero, fmt.Errorf("encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET doc = ? WHERE id = ?`, table), string(updated), id); err != nil {
		return zero, fmt.Errorf("update %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return zero, err
	}
	return rec, nil
}

func sqliteDelete(ctx context.Context, db *sql.DB, table, id string) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	return err
}

type sqliteLaptops struct{ db *sql.DB }

func (s *SQLiteStore) Laptops() LaptopStore { return sqliteLaptops{s.db} }

func (q sqliteLaptops) List(ctx context.Context) ([]models.Laptop, error) {
	return sqliteList[models.Laptop](ctx, q.db, "laptops")
}
func (q sqliteLaptops) Create(ctx context.Context, l models.Laptop) (models.Laptop, error) {
	return sqliteCreate(ctx, q.db, "laptops", l, func(l *models.Laptop, id string) { l.ID = id })
}
func (q sqliteLaptops) Update(ctx context.Context, id string, p models.LaptopPatch) (models.Laptop, error) {
	return sqliteUpdate(ctx, q.db, "laptops", id, func(l *models.Laptop) { p.Apply(l) })
}
func (q sqliteLaptops) Delete(ctx context.Context, id string) error {
	return sqliteDelete(ctx, q.db, "laptops", id)
}

type sqliteReviews struct{ db *sql.DB }

func (s *SQLiteStore) Reviews() ReviewStore { return sqliteReviews{s.db} }

func (q sqliteReviews) List(ctx context.Context) ([]models.Review, error) {
	return sqliteList[models.Review](ctx, q.db, "reviews")
}
func (q sqliteReviews) Create(ctx context.Context, r models.Review) (models.Review, error) {
	return sqliteCreate(ctx, q.db, "reviews", r, func(r *models.Review, id string) { r.ID = id })
}
func (q sqliteReviews) Update(ctx context.Context, id string, p models.ReviewPatch) (models.Review, error) {
	return sqliteUpdate(ctx, q.db, "reviews", id, func(r *models.Review) { p.Apply(r) })
}
func (q sqliteReviews) Delete(ctx context.Context, id string) error {
	return sqliteDelete(ctx, q.db, "reviews", id)
}

type sqliteMessages struct{ db *sql.DB }

func (s *SQLiteStore) Messages() MessageStore { return sqliteMessages{s.db} }

func (q sqliteMessages) List(ctx context.Context) ([]models.Message, error) {
	return sqliteList[models.Message](ctx, q.db, "messages")
}
func (q sqliteMessages) Create(ctx context.Context, m models.Message) (models.Message, error) {
	return sqliteCreate(ctx, q.db, "messages", m, func(m *models.Message, id string) { m.ID = id })
}
func (q sqliteMessages) Delete(ctx context.Context, id string) error {
	return sqliteDelete(ctx, q.db, "messages", id)
}

type sqliteUsers struct{ db *sql.DB }

func (s *SQLiteStore) Users() UserStore { return sqliteUsers{s.db} }

func (q sqliteUsers) List(ctx context.Context) ([]models.User, error) {
	return sqliteList[models.User](ctx, q.db, "users")
}
func (q sqliteUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	return sqliteCreate(ctx, q.db, "users", u, func(u *models.User, id string) { u.ID = id })
}
func (q sqliteUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc string
	err := q.db.QueryRowContext(ctx, `SELECT doc FROM users WHERE json_extract(doc, '$.email') = ?`, email).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	var u models.User
	if err := json.Unmarshal([]byte(doc), &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}
func (q sqliteUsers) Delete(ctx context.Context, id string) error {
	return sqliteDelete(ctx, q.db, "users", id)
}
