// Package httpapi is the serve-mode REST surface: config, run history,
// screening control and the SSE event stream.
package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"go.uber.org/zap"

	"gitscreen-engine/internal/config"
	"gitscreen-engine/internal/events"
)

type Deps struct {
	DB  *sql.DB
	Hub *events.Hub
	Log *zap.Logger

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScreenStatus *atomic.Value // stores httpapi.ScreenStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Screening entrypoint (injected for testability). Blocks for the
	// whole run; runs-table bookkeeping happens inside.
	RunScreening func(ctx context.Context, cfg config.Config, progress func(done, total int, handle string)) (ScreenResult, error)
}

// ScreenResult is what a finished screening reports back to the API.
type ScreenResult struct {
	RunID      string
	Scored     int
	RunDir     string
	ScoresPath string
}
