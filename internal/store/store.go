// Package store implements the local transactional object store the
// operations services are built on: named collections with primary keys and
// secondary indexes over an embedded database, versioned schema migration,
// and transaction scoping for multi-collection mutations.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrDuplicateKey      = errors.New("store: duplicate key")
	ErrUnknownCollection = errors.New("store: unknown collection")
	ErrUnknownIndex      = errors.New("store: unknown index")
	ErrUnsupportedDriver = errors.New("store: unsupported driver")
)

// TransactionAbortedError reports that the underlying transaction failed to
// commit. None of the writes inside it have persisted.
type TransactionAbortedError struct {
	Err error
}

func (e *TransactionAbortedError) Error() string {
	return fmt.Sprintf("store: transaction aborted: %v", e.Err)
}

func (e *TransactionAbortedError) Unwrap() error {
	return e.Err
}

// SchemaError is fatal to the session: the store could not be opened or
// migrated to the requested version.
type SchemaError struct {
	Version int
	Err     error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("store: schema version %v: %v", e.Version, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Index declares a secondary index on a collection field.
type Index struct {
	Field  string
	Unique bool
}

// Collection binds a name to its gorm model and declared secondary indexes.
// The model carries the primary key and index definitions as gorm tags; the
// Indexes list is what GetByIndex validates lookups against.
type Collection struct {
	Name    string
	Model   any
	Indexes []Index
}

type Config struct {
	Driver      string // "sqlite" or "postgres"
	DSN         string
	FailOnError bool
}

// Store is a handle on the opened database. Handles derived via Tx are
// scoped to that transaction and must not outlive it.
type Store struct {
	db      *gorm.DB
	indexes map[string]map[string]Index
}

// DB exposes the underlying gorm handle for schema upgrades and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Tx runs fn inside one transaction. Either every write fn issues is durably
// applied or none is; any error from fn rolls the whole group back and is
// returned as-is. A commit failure surfaces as TransactionAbortedError.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&Store{db: tx, indexes: s.indexes})
		return fnErr
	})
	if err != nil {
		if fnErr != nil {
			return fnErr
		}

		return &TransactionAbortedError{Err: err}
	}

	return nil
}

type tabler interface {
	TableName() string
}

func collectionName[T any]() string {
	var t T
	if tab, ok := any(t).(tabler); ok {
		return tab.TableName()
	}

	return ""
}

// Get loads one record by primary key. A missing key is not an error; the
// second return value reports whether the record was found.
func Get[T any](ctx context.Context, s *Store, key uint) (T, bool, error) {
	var record T

	result := s.db.WithContext(ctx).First(&record, key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			var zero T
			return zero, false, nil
		}

		var zero T
		return zero, false, result.Error
	}

	return record, true, nil
}

func GetAll[T any](ctx context.Context, s *Store) ([]T, error) {
	var records []T

	result := s.db.WithContext(ctx).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// GetByIndex loads every record whose indexed field equals value. The field
// must be one of the collection's declared secondary indexes.
func GetByIndex[T any](ctx context.Context, s *Store, field string, value any) ([]T, error) {
	name := collectionName[T]()
	declared, ok := s.indexes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCollection, name)
	}
	if _, ok = declared[field]; !ok {
		return nil, fmt.Errorf("%w: %v.%v", ErrUnknownIndex, name, field)
	}

	var records []T
	result := s.db.WithContext(ctx).Where(field+" = ?", value).Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// Add inserts a record, filling its auto-generated key in place. Inserting
// an already-present or unique-violating key fails with ErrDuplicateKey.
func Add[T any](ctx context.Context, s *Store, record *T) error {
	result := s.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return mapWriteError(result.Error)
	}

	return nil
}

func Update[T any](ctx context.Context, s *Store, record *T) error {
	result := s.db.WithContext(ctx).Save(record)
	if result.Error != nil {
		return mapWriteError(result.Error)
	}

	return nil
}

// Delete removes a record by primary key. Deleting a missing key is a no-op.
func Delete[T any](ctx context.Context, s *Store, key uint) error {
	var record T

	result := s.db.WithContext(ctx).Delete(&record, key)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Clear removes every record in the collection.
func Clear[T any](ctx context.Context, s *Store) error {
	var record T

	result := s.db.WithContext(ctx).Where("1 = 1").Delete(&record)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func mapWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w -> %v", ErrDuplicateKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w -> %v", ErrDuplicateKey, err)
	}

	// The sqlite driver reports unique violations as plain errors.
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w -> %v", ErrDuplicateKey, err)
	}

	return err
}

// Connector owns the process-wide store lifecycle. Open is idempotent:
// concurrent callers before completion share one in-flight open and all
// receive the same ready store. Migrations run exactly once, before the
// first caller gets the handle back.
type Connector struct {
	cfg    Config
	schema Schema

	once  sync.Once
	store *Store
	err   error
}

func NewConnector(cfg Config, schema Schema) *Connector {
	return &Connector{
		cfg:    cfg,
		schema: schema,
	}
}

func (c *Connector) Open(ctx context.Context) (*Store, error) {
	c.once.Do(func() {
		c.store, c.err = open(ctx, c.cfg, c.schema)
	})

	return c.store, c.err
}

func (c *Connector) Close() error {
	if c.store == nil {
		return nil
	}

	sqlDB, err := c.store.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func open(ctx context.Context, cfg Config, sc Schema) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, &SchemaError{Version: sc.Version, Err: fmt.Errorf("%w: %v", ErrUnsupportedDriver, cfg.Driver)}
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, &SchemaError{Version: sc.Version, Err: err}
	}

	indexes := make(map[string]map[string]Index, len(sc.Collections))
	for _, coll := range sc.Collections {
		fields := make(map[string]Index, len(coll.Indexes))
		for _, idx := range coll.Indexes {
			fields[idx.Field] = idx
		}
		indexes[coll.Name] = fields

		if err = db.WithContext(ctx).AutoMigrate(coll.Model); err != nil {
			return nil, &SchemaError{Version: sc.Version, Err: fmt.Errorf("automigrate %v -> %w", coll.Name, err)}
		}
	}

	s := &Store{db: db, indexes: indexes}

	if err = migrate(ctx, s, sc, cfg.FailOnError); err != nil {
		return nil, err
	}

	return s, nil
}
