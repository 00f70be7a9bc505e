package premguru

import (
	"log"
	"os"
	"time"

	"github.com/tanmoym/premguru/models"
	"github.com/tanmoym/premguru/stores"
)

// Config holds configuration for a Manager
type Config struct {
	Provider       models.Provider
	Store          stores.RecordStore
	Logger         *log.Logger
	Params         models.GenerationParams
	RequestTimeout time.Duration
}

// NewConfig creates a new configuration with default values. The defaults
// match the original client: temperature 0.9, topK 40, 60s request timeout,
// SQLite persistence.
func NewConfig(provider models.Provider) *Config {
	// Create a default SQLite store
	defaultStore, err := stores.NewSQLiteStoreDefault()
	if err != nil {
		// If we can't create the default store, panic or use a nil store
		// In production, you might want to handle this more gracefully
		panic("Failed to create default SQLite store: " + err.Error())
	}

	return &Config{
		Provider:       provider,
		Store:          defaultStore,
		Logger:         log.New(os.Stdout, "[premguru] ", log.LstdFlags),
		Params:         models.GenerationParams{Temperature: 0.9, TopK: 40},
		RequestTimeout: 60 * time.Second,
	}
}

// WithStore sets the record store for the configuration
func (c *Config) WithStore(store stores.RecordStore) *Config {
	c.Store = store
	return c
}

// WithSQLiteStore sets a SQLite store with the specified database path
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	store, err := stores.NewSQLiteStoreSimple(dbPath)
	if err != nil {
		panic("Failed to create SQLite store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithPostgresStore sets a PostgreSQL store with the specified connection parameters
func (c *Config) WithPostgresStore(host, user, password, dbname string, port int) *Config {
	store, err := stores.NewPostgresStoreDefault(host, user, password, dbname, port)
	if err != nil {
		panic("Failed to create PostgreSQL store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithLogger sets the logger for the configuration
func (c *Config) WithLogger(logger *log.Logger) *Config {
	c.Logger = logger
	return c
}

// WithGenerationParams sets the sampling parameters for provider sessions
func (c *Config) WithGenerationParams(params models.GenerationParams) *Config {
	c.Params = params
	return c
}

// WithRequestTimeout bounds the whole provider round-trip. Zero disables the
// timeout, leaving a hung stream in flight indefinitely.
func (c *Config) WithRequestTimeout(timeout time.Duration) *Config {
	c.RequestTimeout = timeout
	return c
}
