package status

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carson-networks/budget-tracker/internal/logging"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type sessionCounter interface {
	Len() int
}

type Handler struct {
	Storage  pinger
	Sessions sessionCounter
}

func NewHandler(storage pinger, sessions sessionCounter) Handler {
	return Handler{Storage: storage, Sessions: sessions}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	stopTimer := logData.AddTiming("pingMs")
	err := h.Storage.Ping(req.Context())
	stopTimer()
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return fmt.Errorf("status: ping database: %w", err)
	}

	logData.AddData("sessions", h.Sessions.Len())
	w.WriteHeader(http.StatusOK)
	return nil
}
