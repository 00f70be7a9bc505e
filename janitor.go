package premguru

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"

	"github.com/tanmoym/premguru/stores"
)

// Janitor periodically health-checks the store and snapshots the saved
// session record to a JSON file, so a corrupted database never takes the
// transcripts with it.
type Janitor struct {
	store      stores.RecordStore
	logger     *log.Logger
	backupPath string
	schedule   string

	scheduler *cron.Cron
	entryID   cron.EntryID
}

// NewJanitor creates a janitor that runs on the given cron schedule
// (standard five-field expressions or descriptors such as "@hourly").
func NewJanitor(store stores.RecordStore, logger *log.Logger, backupPath, schedule string) *Janitor {
	return &Janitor{
		store:      store,
		logger:     logger,
		backupPath: backupPath,
		schedule:   schedule,
	}
}

// Start validates the schedule and begins running. The first run happens at
// the first scheduled tick, not immediately.
func (j *Janitor) Start() error {
	if j.scheduler != nil {
		return fmt.Errorf("janitor already started")
	}

	scheduler := cron.New()
	entryID, err := scheduler.AddFunc(j.schedule, j.run)
	if err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", j.schedule, err)
	}
	j.scheduler = scheduler
	j.entryID = entryID
	scheduler.Start()
	j.logger.Printf("Janitor started with schedule %q", j.schedule)
	return nil
}

// Stop halts the schedule. Safe to call before Start.
func (j *Janitor) Stop() {
	if j.scheduler == nil {
		return
	}
	j.scheduler.Remove(j.entryID)
	j.scheduler.Stop()
	j.scheduler = nil
}

func (j *Janitor) run() {
	if err := j.store.Ping(); err != nil {
		j.logger.Printf("Janitor: store ping failed: %v", err)
		return
	}

	raw, ok, err := j.store.Get(stores.SessionsKey)
	if err != nil {
		j.logger.Printf("Janitor: failed to read sessions for backup: %v", err)
		return
	}
	if !ok {
		return
	}

	if err := j.writeBackup(raw); err != nil {
		j.logger.Printf("Janitor: backup failed: %v", err)
		return
	}
	j.logger.Printf("Janitor: wrote session backup to %s", j.backupPath)
}

// writeBackup writes via a temp file and rename so readers never observe a
// partially written snapshot.
func (j *Janitor) writeBackup(raw string) error {
	dir := filepath.Dir(j.backupPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".sessions-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, j.backupPath)
}
