package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/attendly/attendly-backend/internal/handler/http/response"
	"github.com/attendly/attendly-backend/internal/pkg/jwt"
	"github.com/attendly/attendly-backend/internal/pkg/sse"
)

type EventsHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventsHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewEventsHandler(hub *sse.Hub) EventsHandler {
	return &eventsHandlerImpl{
		hub:       hub,
		keepalive: 30 * time.Second,
	}
}

// Stream holds the connection open and forwards the caller's subject changes
// as server-sent events.
func (h *eventsHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cancel := h.hub.Subscribe(userID)
	defer cancel()

	if err := sse.WriteEvent(w, sse.Event{Name: "connected", Data: map[string]string{"user_id": userID}}); err != nil {
		return
	}
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := sse.WriteEvent(w, event); err != nil {
				slog.Error("failed to write event", "error", err, "event", event.Name)
				continue
			}
			flusher.Flush()

		case t := <-keepalive.C:
			if err := sse.WriteEvent(w, sse.Event{Name: "ping", Data: map[string]int64{"timestamp": t.Unix()}}); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
