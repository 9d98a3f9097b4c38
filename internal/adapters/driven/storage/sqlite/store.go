package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/consolidator/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/consolidator/internal/core/domain"
	"github.com/custodia-labs/consolidator/internal/core/ports/driven"
)

// dbFile is the project database name inside the data directory.
const dbFile = "project.db"

// pragmas are applied to every connection.
const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Store is a project database holding assets, consumers and run history.
// The host ports are served by lightweight wrappers over the same handle.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the project database in dataDir,
// or in ~/.consolidator/data when dataDir is empty, and applies pending
// migrations.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".consolidator", "data")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Path is the database file location.
func (s *Store) Path() string { return s.path }

// AssetStore returns an AssetStore interface backed by this store.
func (s *Store) AssetStore() driven.AssetStore {
	return &assetStore{store: s}
}

// Reflection returns a ConsumerReflection interface backed by this store.
func (s *Store) Reflection() driven.ConsumerReflection {
	return &reflection{store: s}
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate applies every NNN_name.up.sql file newer than the recorded
// schema version, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var applied int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&applied); err != nil {
		return fmt.Errorf("migrate: reading schema version: %w", err)
	}

	// Glob returns names in lexical order, which is version order for
	// zero-padded prefixes.
	names, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, name := range names {
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			continue
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= applied {
			continue
		}
		if err := s.apply(fsys, name, version); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) apply(fsys fs.FS, name string, version int) error {
	script, err := fs.ReadFile(fsys, name)
	if err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(string(script)); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// PutAsset stores or replaces an asset.
func (s *Store) PutAsset(ctx context.Context, path, label string, content []byte) error {
	if path == "" {
		return fmt.Errorf("%w: asset path is empty", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (path, label, content) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			label = excluded.label,
			content = excluded.content
	`, path, label, content)
	if err != nil {
		return fmt.Errorf("saving asset: %w", err)
	}
	return nil
}

// PutConsumer stores a consumer and replaces its slots. A new consumer
// is ordered after every existing one.
func (s *Store) PutConsumer(ctx context.Context, id domain.ConsumerID, slots []domain.Slot) error {
	if id == "" {
		return fmt.Errorf("%w: consumer id is empty", domain.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO consumers (id, position)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM consumers))
		ON CONFLICT(id) DO NOTHING
	`, string(id))
	if err != nil {
		return fmt.Errorf("saving consumer: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM slots WHERE consumer_id = ?", string(id)); err != nil {
		return fmt.Errorf("clearing slots: %w", err)
	}

	for i, slot := range slots {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO slots (consumer_id, name, position, asset_path) VALUES (?, ?, ?, ?)
		`, string(id), string(slot.Name), i, refPath(slot.Ref))
		if err != nil {
			return fmt.Errorf("saving slot %s: %w", slot.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing consumer: %w", err)
	}
	return nil
}

// ListConsumers returns consumer ids in insertion order.
func (s *Store) ListConsumers(ctx context.Context) ([]domain.ConsumerID, error) {
	return s.Reflection().ListConsumers(ctx)
}

// DropConsumer deletes a consumer and its slots.
func (s *Store) DropConsumer(ctx context.Context, id domain.ConsumerID) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM consumers WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("deleting consumer: %w", err)
	}
	return nil
}

// consumerExists reports whether a consumer row exists.
func (s *Store) consumerExists(ctx context.Context, id domain.ConsumerID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM consumers WHERE id = ?", string(id)).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking consumer: %w", err)
	}
	return n > 0, nil
}

// missingSlotError distinguishes a missing consumer from a missing slot.
func (s *Store) missingSlotError(ctx context.Context, id domain.ConsumerID, prop domain.PropertyName) error {
	ok, err := s.consumerExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrConsumerNotFound, id)
	}
	return fmt.Errorf("%w: %s.%s", domain.ErrSlotNotFound, id, prop)
}

func refPath(ref *domain.AssetReference) sql.NullString {
	if ref == nil || ref.Path == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: ref.Path, Valid: true}
}

// ==================== Asset Store ====================

// assetStore implements driven.AssetStore.
type assetStore struct {
	store *Store
}

var _ driven.AssetStore = (*assetStore)(nil)

// List returns every asset ordered by path.
func (s *assetStore) List(ctx context.Context) ([]domain.AssetRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT rowid, path, label FROM assets ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	var records []domain.AssetRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			rowid int64
			rec   domain.AssetRecord
		)
		if err := rows.Scan(&rowid, &rec.Ref.Path, &rec.Label); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}
		rec.Ref.Handle = fmt.Sprintf("asset:%d", rowid)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assets: %w", err)
	}
	return records, nil
}

// ReadContent returns the content stored at the reference's path.
func (s *assetStore) ReadContent(ctx context.Context, ref domain.AssetReference) ([]byte, error) {
	var content []byte
	err := s.store.db.QueryRowContext(ctx, "SELECT content FROM assets WHERE path = ?", ref.Path).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: asset %s", domain.ErrNotFound, ref.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading asset: %w", err)
	}
	return content, nil
}

// Delete removes the asset at the reference's path. Slots pointing at it
// keep the dangling path.
func (s *assetStore) Delete(ctx context.Context, ref domain.AssetReference) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM assets WHERE path = ?", ref.Path)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: asset %s", domain.ErrNotFound, ref.Path)
	}
	return nil
}

// ==================== Consumer Reflection ====================

// reflection implements driven.ConsumerReflection.
type reflection struct {
	store *Store
}

var _ driven.ConsumerReflection = (*reflection)(nil)

// ListConsumers returns consumer ids in insertion order.
func (r *reflection) ListConsumers(ctx context.Context) ([]domain.ConsumerID, error) {
	rows, err := r.store.db.QueryContext(ctx, "SELECT id FROM consumers ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("querying consumers: %w", err)
	}
	defer rows.Close()

	var ids []domain.ConsumerID //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning consumer: %w", err)
		}
		ids = append(ids, domain.ConsumerID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating consumers: %w", err)
	}
	return ids, nil
}

// ListPropertySlots returns slot names in declaration order.
func (r *reflection) ListPropertySlots(ctx context.Context, id domain.ConsumerID) ([]domain.PropertyName, error) {
	ok, err := r.store.consumerExists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrConsumerNotFound, id)
	}

	rows, err := r.store.db.QueryContext(ctx,
		"SELECT name FROM slots WHERE consumer_id = ? ORDER BY position, name", string(id))
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	props := []domain.PropertyName{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		props = append(props, domain.PropertyName(name))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}
	return props, nil
}

// GetSlot returns the reference held by a slot, or nil if empty.
func (r *reflection) GetSlot(ctx context.Context, id domain.ConsumerID, prop domain.PropertyName) (*domain.AssetReference, error) {
	var (
		rowid int64
		path  sql.NullString
	)
	err := r.store.db.QueryRowContext(ctx,
		"SELECT rowid, asset_path FROM slots WHERE consumer_id = ? AND name = ?",
		string(id), string(prop)).Scan(&rowid, &path)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.store.missingSlotError(ctx, id, prop)
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot: %w", err)
	}
	if !path.Valid {
		return nil, nil
	}
	return &domain.AssetReference{Handle: fmt.Sprintf("slot:%d", rowid), Path: path.String}, nil
}

// SetSlot points a slot at ref.
func (r *reflection) SetSlot(ctx context.Context, id domain.ConsumerID, prop domain.PropertyName, ref domain.AssetReference) error {
	res, err := r.store.db.ExecContext(ctx,
		"UPDATE slots SET asset_path = ? WHERE consumer_id = ? AND name = ?",
		refPath(&ref), string(id), string(prop))
	if err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}
	if n == 0 {
		return r.store.missingSlotError(ctx, id, prop)
	}
	return nil
}
