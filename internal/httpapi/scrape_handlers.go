package httpapi

import (
	"net/http"
	"sync/atomic"

	"jobscout-engine/internal/poll"
)

type ScrapeHandler struct {
	ScrapeStatus *atomic.Value // stores poll.ScrapeStatus
	RunPoll      func()
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := poll.ScrapeStatus{}
	if any := h.ScrapeStatus.Load(); any != nil {
		st = any.(poll.ScrapeStatus)
	}
	writeJSON(w, st)
}

func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	st := poll.ScrapeStatus{}
	if any := h.ScrapeStatus.Load(); any != nil {
		st = any.(poll.ScrapeStatus)
	}
	if st.Running {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go h.RunPoll()
	writeJSON(w, map[string]any{"ok": true})
}
