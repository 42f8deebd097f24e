package utility

import (
	"sync"

	"github.com/google/uuid"
)

type RunID = uuid.UUID

var (
	runID     RunID
	runIDOnce sync.Once
	runIDMu   sync.RWMutex
)

func GetRunID() RunID {
	runIDOnce.Do(func() {
		runIDMu.Lock()
		defer runIDMu.Unlock()
		if runID == uuid.Nil {
			runID = uuid.Must(uuid.NewV7())
		}
	})

	runIDMu.RLock()
	defer runIDMu.RUnlock()
	return runID
}

func ResetRunID() RunID {
	runIDMu.Lock()
	defer runIDMu.Unlock()

	runID = uuid.Must(uuid.NewV7())
	return runID
}
