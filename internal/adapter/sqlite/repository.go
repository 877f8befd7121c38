package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/neomorfeo/servio/internal/domain"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// ServerRepository implements domain.ServerRepository using SQLite.
type ServerRepository struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready repository.
func New(dataSourceName string) (*ServerRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps in-memory databases coherent and avoids
	// SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and returns
// a ready repository. Use this when the *sql.DB has been pre-configured
// (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*ServerRepository, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &ServerRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *ServerRepository) Close() error {
	return r.db.Close()
}

// DB returns the underlying database connection for use by other adapters (e.g., river).
func (r *ServerRepository) DB() *sql.DB {
	return r.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// dateFormat is the storage and wire format for date_created (date precision only).
const dateFormat = "2006-01-02"

func (r *ServerRepository) Create(ctx context.Context, tenantID int64, name string) (domain.Server, error) {
	created := time.Now().UTC().Truncate(24 * time.Hour)

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO servers (tenant_id, name, status, date_created)
		 VALUES (?, ?, ?, ?)`,
		tenantID, name, string(domain.StatusPending), created.Format(dateFormat),
	)
	if err != nil {
		return domain.Server{}, fmt.Errorf("inserting server: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return domain.Server{}, fmt.Errorf("reading assigned id: %w", err)
	}

	return domain.Server{
		ID:          id,
		TenantID:    tenantID,
		Name:        name,
		Status:      domain.StatusPending,
		DateCreated: created,
	}, nil
}

func (r *ServerRepository) Get(ctx context.Context, tenantID, id int64) (domain.Server, error) {
	return r.scanServer(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, status, date_created
		 FROM servers WHERE tenant_id = ? AND id = ?`, tenantID, id,
	))
}

func (r *ServerRepository) GetByID(ctx context.Context, id int64) (domain.Server, error) {
	return r.scanServer(r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, status, date_created
		 FROM servers WHERE id = ?`, id,
	))
}

func (r *ServerRepository) List(ctx context.Context, tenantID int64) ([]domain.Server, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant_id, name, status, date_created
		 FROM servers WHERE tenant_id = ? ORDER BY id ASC`, tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing servers: %w", err)
	}
	defer rows.Close()

	var servers []domain.Server
	for rows.Next() {
		s, err := r.scanServerFromRows(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}

	return servers, rows.Err()
}

// UpdateStatus persists a new status in a single conditional UPDATE, so the
// existence check and the write are atomic per record: a concurrently deleted
// server is never resurrected, and an absent id is never created.
func (r *ServerRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE servers SET status = ? WHERE id = ?`,
		string(status), id,
	)
	if err != nil {
		return false, fmt.Errorf("updating server status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return rows > 0, nil
}

func (r *ServerRepository) Delete(ctx context.Context, tenantID, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM servers WHERE tenant_id = ? AND id = ?`,
		tenantID, id,
	)
	if err != nil {
		return false, fmt.Errorf("deleting server: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking rows affected: %w", err)
	}

	return rows > 0, nil
}

// scanServer scans a single row from QueryRow into a domain.Server.
func (r *ServerRepository) scanServer(row *sql.Row) (domain.Server, error) {
	var s domain.Server
	var status, dateCreated string

	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &status, &dateCreated)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Server{}, domain.ErrServerNotFound
		}
		return domain.Server{}, fmt.Errorf("scanning server: %w", err)
	}

	s.Status = domain.Status(status)
	s.DateCreated, _ = time.Parse(dateFormat, dateCreated)

	return s, nil
}

// scanServerFromRows scans a single row from Rows (used in List).
func (r *ServerRepository) scanServerFromRows(rows *sql.Rows) (domain.Server, error) {
	var s domain.Server
	var status, dateCreated string

	err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &status, &dateCreated)
	if err != nil {
		return domain.Server{}, fmt.Errorf("scanning server row: %w", err)
	}

	s.Status = domain.Status(status)
	s.DateCreated, _ = time.Parse(dateFormat, dateCreated)

	return s, nil
}
