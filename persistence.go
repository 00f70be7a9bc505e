package premguru

import (
	"encoding/json"
	"log"

	"github.com/tanmoym/premguru/personas"
	"github.com/tanmoym/premguru/stores"
)

// loadSessions reads the session list from the store. Any read failure
// (missing record, malformed JSON, empty array) means "no prior state" and
// returns nil; the caller falls back to creating a fresh first session.
// Legacy persona ids are migrated here, at load time.
func loadSessions(store stores.RecordStore, logger *log.Logger) []*ChatSession {
	raw, ok, err := store.Get(stores.SessionsKey)
	if err != nil {
		logger.Printf("Failed to read saved sessions, starting fresh: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var sessions []*ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		logger.Printf("Saved sessions are malformed, starting fresh: %v", err)
		return nil
	}
	if len(sessions) == 0 {
		return nil
	}

	for _, session := range sessions {
		session.Persona = string(personas.Resolve(session.Persona))
	}
	return sessions
}

// saveSessions writes the full session list back to the store. An empty list
// is never written: no state is better than erasing valid state. Write
// failures are logged, not propagated.
func saveSessions(store stores.RecordStore, logger *log.Logger, sessions []*ChatSession) {
	if len(sessions) == 0 {
		return
	}

	raw, err := json.Marshal(sessions)
	if err != nil {
		logger.Printf("Failed to marshal sessions for persistence: %v", err)
		return
	}
	if err := store.Put(stores.SessionsKey, string(raw)); err != nil {
		logger.Printf("Failed to persist sessions: %v", err)
	}
}
