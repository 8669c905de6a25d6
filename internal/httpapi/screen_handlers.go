package httpapi

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"gitscreen-engine/internal/config"
	"gitscreen-engine/internal/events"
)

type ScreenHandler struct {
	CfgVal       *atomic.Value // config.Config
	ScreenStatus *atomic.Value // httpapi.ScreenStatus
	Hub          *events.Hub
	RunScreening func(ctx context.Context, cfg config.Config, progress func(done, total int, handle string)) (ScreenResult, error)

	// serializes the running check-and-set so two simultaneous POSTs
	// cannot both start a screening
	mu sync.Mutex
}

func (h *ScreenHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.ScreenStatus.Load().(ScreenStatus)
	writeJSON(w, st)
}

func (h *ScreenHandler) Run(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	st := h.ScreenStatus.Load().(ScreenStatus)
	if st.Running {
		h.mu.Unlock()
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	h.ScreenStatus.Store(ScreenStatus{
		LastRunAt:  time.Now().Format(time.RFC3339),
		Running:    true,
		LastOkAt:   st.LastOkAt,
		LastRunID:  st.LastRunID,
		LastScored: st.LastScored,
	})
	h.mu.Unlock()

	reqID := RequestIDFrom(r.Context())

	go func() {
		start := time.Now()
		cfg := h.CfgVal.Load().(config.Config)

		h.Hub.Publish(events.MakeEvent(reqID, events.TypeScreenStarted, 1, nil))

		res, err := h.RunScreening(context.Background(), cfg, func(done, total int, handle string) {
			h.Hub.Publish(events.MakeEvent(reqID, events.TypeScreenProgress, 1, events.ScreenProgress{
				Done: done, Total: total, Handle: handle,
			}))
		})

		now := time.Now().Format(time.RFC3339)
		next := h.ScreenStatus.Load().(ScreenStatus)
		next.Running = false
		next.LastRunAt = now
		next.LastScored = res.Scored
		next.LastRunID = res.RunID

		fin := events.ScreenFinished{
			Scored:   res.Scored,
			RunID:    res.RunID,
			RunDir:   res.RunDir,
			Duration: time.Since(start).Round(time.Millisecond).String(),
		}
		if err != nil {
			next.LastError = err.Error()
			fin.Error = err.Error()
		} else {
			next.LastError = ""
			next.LastOkAt = now
		}
		h.ScreenStatus.Store(next)
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeScreenFinished, 1, fin))
	}()

	writeJSON(w, map[string]any{"ok": true})
}
