package stores

import (
	"time"

	"gorm.io/gorm"
)

// Record is one value kept under a well-known key. The whole session list is
// persisted as a single JSON document under SessionsKey, mirroring a
// single-device key-value medium.
type Record struct {
	Key       string    `gorm:"primaryKey"`
	Value     string    `gorm:"type:text"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SessionsKey is the well-known key under which the session list lives.
const SessionsKey = "love_guru_sessions"

// RecordStore interface for abstracting database operations
type RecordStore interface {
	// Get returns the value for key. The second return is false when no
	// record exists; that is not an error.
	Get(key string) (string, bool, error)
	// Put writes the value for key, replacing any previous value.
	Put(key, value string) error
	// Delete removes the record for key. Deleting a missing key is a no-op.
	Delete(key string) error

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string            `json:"type"`       // "sqlite", "postgres"
	Connection string            `json:"connection"` // connection string
	Options    map[string]string `json:"options"`    // additional options
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	c.Options[key] = value
	return c
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}
