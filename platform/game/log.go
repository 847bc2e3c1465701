package game

import (
	"fmt"
	"time"

	"github.com/bluemarble/bluemarble-backend/app/models"
)

// logf prepends a formatted entry to the game log (newest first) and trims
// the tail so the log stays bounded.
func logf(state *models.GameState, format string, args ...interface{}) {
	entry := models.GameLog{
		Timestamp: time.Now().UnixNano() / int64(time.Millisecond),
		Message:   fmt.Sprintf(format, args...),
	}
	state.Log = append([]models.GameLog{entry}, state.Log...)
	if len(state.Log) > MaxLogEntries {
		state.Log = state.Log[:MaxLogEntries]
	}
}
