package stores

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresStore implements RecordStore for PostgreSQL databases
type PostgresStore struct {
	db  *gorm.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(config *StoreConfig) (*PostgresStore, error) {
	if config.Type != "postgres" {
		return nil, fmt.Errorf("invalid store type for PostgreSQL store: %s", config.Type)
	}

	store := &PostgresStore{
		dsn: config.Connection,
	}

	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	return store, nil
}

// NewPostgresStoreSimple creates a new PostgreSQL store with just a DSN
func NewPostgresStoreSimple(dsn string) (*PostgresStore, error) {
	config := NewStoreConfig("postgres", dsn)
	return NewPostgresStore(config)
}

// NewPostgresStoreDefault creates a PostgreSQL store from connection parameters
func NewPostgresStoreDefault(host, user, password, dbname string, port int) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)
	return NewPostgresStoreSimple(dsn)
}

// Connect establishes a connection to the PostgreSQL database
func (s *PostgresStore) Connect() error {
	db, err := gorm.Open(postgres.Open(s.dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	s.db = db

	if err := migrate(s.db); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *PostgresStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// Get returns the value stored under key, or false when no record exists.
func (s *PostgresStore) Get(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, fmt.Errorf("database connection is nil")
	}

	var record Record
	err := s.db.First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch record: %w", err)
	}

	return record.Value, true, nil
}

// Put writes the value under key, replacing any previous value.
func (s *PostgresStore) Put(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	record := Record{Key: key, Value: value}
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// Delete removes the record for key. Deleting a missing key is a no-op.
func (s *PostgresStore) Delete(key string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	if err := s.db.Delete(&Record{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
