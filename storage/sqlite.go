package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iulianpascalau/metrics-registry/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("storage")

// below this number of pending creations the records are inserted one by one,
// capturing the assigned ids directly from the insert calls
const maxIndividualInserts = 2

// sqliteStorage is the sqlite implementation for the metrics registry persistence
type sqliteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates the database file and the registry schema
func NewSQLiteStorage(dbPath string) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &sqliteStorage{
		db: db,
	}, nil
}

func prepareDirectories(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}

	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS metrics_registry (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		component    TEXT    NOT NULL,
		name         TEXT    NOT NULL,
		enabled      INTEGER NOT NULL DEFAULT 0,
		config       TEXT,
		timecreated  INTEGER NOT NULL,
		timemodified INTEGER NOT NULL,
		usermodified TEXT    NOT NULL DEFAULT '',
		UNIQUE(component, name)
	);

	CREATE INDEX IF NOT EXISTS idx_metrics_registry_enabled ON metrics_registry(enabled);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// GetAllRecords returns every registry record, indexed later by the caller
func (s *sqliteStorage) GetAllRecords(ctx context.Context) ([]common.RegistryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, component, name, enabled, config, timecreated, timemodified, usermodified
		FROM metrics_registry
	`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// GetRecords returns, in one query, the records matching the provided composite keys,
// optionally restricted by the enabled flag. An empty key set returns no records and
// issues no query
func (s *sqliteStorage) GetRecords(ctx context.Context, keys []common.MetricKey, enabled *bool) ([]common.RegistryRecord, error) {
	if len(keys) == 0 {
		return make([]common.RegistryRecord, 0), nil
	}

	placeholders := make([]string, 0, len(keys))
	queryArgs := make([]interface{}, 0, len(keys)*2+1)
	for _, key := range keys {
		placeholders = append(placeholders, "(?, ?)")
		queryArgs = append(queryArgs, key.Component, key.Name)
	}

	query := `
		SELECT id, component, name, enabled, config, timecreated, timemodified, usermodified
		FROM metrics_registry
		WHERE (component, name) IN (` + strings.Join(placeholders, ", ") + `)`
	if enabled != nil {
		query += " AND enabled = ?"
		queryArgs = append(queryArgs, boolToInt(*enabled))
	}

	rows, err := s.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanRecords(rows)
}

// SyncRecords makes the stored records match the wanted set inside one transaction.
// Wanted records carrying the key of an existing row leave that row untouched and get
// it back in Matched; the rest are inserted with the provided defaults and returned
// in Created with their assigned ids. Rows claimed by no wanted record are orphans,
// removed in a single statement when deleteOrphans is set. Any failure rolls the whole
// pass back
func (s *sqliteStorage) SyncRecords(ctx context.Context, wanted []common.RegistryRecord, deleteOrphans bool) (*common.SyncResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, existingIDs, err := readExistingRecords(ctx, tx)
	if err != nil {
		return nil, err
	}

	result := &common.SyncResult{
		Matched: make([]common.RegistryRecord, 0, len(wanted)),
		Created: make([]common.RegistryRecord, 0),
	}

	toCreate := make([]common.RegistryRecord, 0)
	for _, record := range wanted {
		existingRecord, found := existing[record.Key()]
		if found {
			result.Matched = append(result.Matched, existingRecord)
			delete(existing, record.Key())
			continue
		}

		toCreate = append(toCreate, record)
	}

	// whatever was not claimed is orphaned
	if deleteOrphans && len(existing) > 0 {
		numDeleted, errDelete := deleteRecords(ctx, tx, existing)
		if errDelete != nil {
			return nil, errDelete
		}
		result.NumDeletedOrphans = numDeleted
	}

	created, err := insertRecords(ctx, tx, toCreate, existingIDs)
	if err != nil {
		return nil, err
	}
	result.Created = created

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

func readExistingRecords(ctx context.Context, tx *sql.Tx) (map[common.MetricKey]common.RegistryRecord, map[int64]struct{}, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, component, name, enabled, config, timecreated, timemodified, usermodified
		FROM metrics_registry
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, nil, err
	}

	indexed := make(map[common.MetricKey]common.RegistryRecord, len(records))
	ids := make(map[int64]struct{}, len(records))
	for _, record := range records {
		indexed[record.Key()] = record
		ids[record.ID] = struct{}{}
	}

	return indexed, ids, nil
}

func deleteRecords(ctx context.Context, tx *sql.Tx, orphans map[common.MetricKey]common.RegistryRecord) (int, error) {
	placeholders := make([]string, 0, len(orphans))
	args := make([]interface{}, 0, len(orphans))
	for _, record := range orphans {
		placeholders = append(placeholders, "?")
		args = append(args, record.ID)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM metrics_registry WHERE id IN ("+strings.Join(placeholders, ", ")+")",
		args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned records: %w", err)
	}

	numDeleted, _ := res.RowsAffected()

	return int(numDeleted), nil
}

func insertRecords(
	ctx context.Context,
	tx *sql.Tx,
	toCreate []common.RegistryRecord,
	existingIDs map[int64]struct{},
) ([]common.RegistryRecord, error) {
	if len(toCreate) == 0 {
		return make([]common.RegistryRecord, 0), nil
	}
	if len(toCreate) <= maxIndividualInserts {
		return insertRecordsIndividually(ctx, tx, toCreate)
	}

	return insertRecordsBulk(ctx, tx, toCreate, existingIDs)
}

func insertRecordsIndividually(ctx context.Context, tx *sql.Tx, toCreate []common.RegistryRecord) ([]common.RegistryRecord, error) {
	created := make([]common.RegistryRecord, 0, len(toCreate))
	for _, record := range toCreate {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO metrics_registry (component, name, enabled, config, timecreated, timemodified, usermodified)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, record.Component, record.Name, boolToInt(record.Enabled), nullableString(record.Config),
			record.TimeCreated, record.TimeModified, record.UserModified)
		if err != nil {
			return nil, fmt.Errorf("failed to insert record %s: %w", record.QualifiedName(), err)
		}

		record.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read inserted id for %s: %w", record.QualifiedName(), err)
		}

		created = append(created, record)
	}

	return created, nil
}

// insertRecordsBulk trades one extra query for avoiding N individual round-trips: a single
// multi-values insert, then one select for the ids that were not present before the insert
func insertRecordsBulk(
	ctx context.Context,
	tx *sql.Tx,
	toCreate []common.RegistryRecord,
	existingIDs map[int64]struct{},
) ([]common.RegistryRecord, error) {
	placeholders := make([]string, 0, len(toCreate))
	args := make([]interface{}, 0, len(toCreate)*7)
	for _, record := range toCreate {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, record.Component, record.Name, boolToInt(record.Enabled), nullableString(record.Config),
			record.TimeCreated, record.TimeModified, record.UserModified)
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO metrics_registry (component, name, enabled, config, timecreated, timemodified, usermodified)
		VALUES `+strings.Join(placeholders, ", "), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert records: %w", err)
	}

	idPlaceholders := make([]string, 0, len(existingIDs))
	idArgs := make([]interface{}, 0, len(existingIDs))
	for id := range existingIDs {
		idPlaceholders = append(idPlaceholders, "?")
		idArgs = append(idArgs, id)
	}

	query := "SELECT id, component, name FROM metrics_registry"
	if len(idArgs) > 0 {
		query += " WHERE id NOT IN (" + strings.Join(idPlaceholders, ", ") + ")"
	}

	rows, err := tx.QueryContext(ctx, query, idArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve inserted ids: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	assignedIDs := make(map[common.MetricKey]int64, len(toCreate))
	for rows.Next() {
		var id int64
		var key common.MetricKey
		err = rows.Scan(&id, &key.Component, &key.Name)
		if err != nil {
			return nil, err
		}

		assignedIDs[key] = id
	}
	err = rows.Err()
	if err != nil {
		return nil, err
	}

	created := make([]common.RegistryRecord, 0, len(toCreate))
	for _, record := range toCreate {
		id, found := assignedIDs[record.Key()]
		if !found {
			return nil, fmt.Errorf("failed to resolve inserted id for %s", record.QualifiedName())
		}

		record.ID = id
		created = append(created, record)
	}

	return created, nil
}

// SetEnabled persists a new enabled flag and the audit fields, leaving everything else untouched
func (s *sqliteStorage) SetEnabled(ctx context.Context, id int64, enabled bool, timeModified int64, actor string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE metrics_registry SET enabled = ?, timemodified = ?, usermodified = ? WHERE id = ?
	`, boolToInt(enabled), timeModified, actor, id)
	if err != nil {
		return fmt.Errorf("failed to update enabled flag: %w", err)
	}

	return checkOneRowAffected(res, id)
}

// UpdateConfig persists a new serialized config and the audit fields, leaving the enabled flag untouched
func (s *sqliteStorage) UpdateConfig(ctx context.Context, id int64, config string, timeModified int64, actor string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE metrics_registry SET config = ?, timemodified = ?, usermodified = ? WHERE id = ?
	`, nullableString(config), timeModified, actor, id)
	if err != nil {
		return fmt.Errorf("failed to update config: %w", err)
	}

	return checkOneRowAffected(res, id)
}

// CountRecords returns the total number of registry records
func (s *sqliteStorage) CountRecords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM metrics_registry").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

// Close closes the database
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}

func scanRecords(rows *sql.Rows) ([]common.RegistryRecord, error) {
	records := make([]common.RegistryRecord, 0)
	for rows.Next() {
		var record common.RegistryRecord
		var enabled int
		var config sql.NullString

		err := rows.Scan(&record.ID, &record.Component, &record.Name, &enabled, &config,
			&record.TimeCreated, &record.TimeModified, &record.UserModified)
		if err != nil {
			return nil, err
		}

		record.Enabled = enabled != 0
		record.Config = config.String

		err = record.Validate()
		if err != nil {
			return nil, fmt.Errorf("%w, id %d", err, record.ID)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func checkOneRowAffected(res sql.Result, id int64) error {
	numAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if numAffected == 0 {
		log.Warn("no registry record was updated", "id", id)
		return fmt.Errorf("%w, id %d", ErrRecordNotFound, id)
	}

	return nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}

	return 0
}

func nullableString(value string) interface{} {
	if len(value) == 0 {
		return nil
	}

	return value
}
