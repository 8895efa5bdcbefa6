package viewer

import (
	"sync"

	"github.com/carson-networks/budget-tracker/internal/service"
)

type Notification struct {
	Level   NotificationLevel
	Message string
}

// ViewState is the latest rendered output of an engine.
type ViewState struct {
	Rows          []service.Transaction
	Summary       Summary
	Pagination    PaginationModel
	Notifications []Notification
}

// View records what an engine renders so a request handler can read it back.
// It is both the engine's Renderer and its Notifier.
type View struct {
	mu    sync.Mutex
	state ViewState
}

func NewView() *View {
	return &View{state: ViewState{Rows: []service.Transaction{}}}
}

func (v *View) RenderRows(rows []service.Transaction) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Rows = rows
}

func (v *View) RenderSummary(summary Summary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Summary = summary
}

func (v *View) RenderPagination(model PaginationModel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Pagination = model
}

func (v *View) Notify(level NotificationLevel, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Notifications = append(v.state.Notifications, Notification{Level: level, Message: message})
}

// Snapshot returns the rendered state and drains pending notifications, so each one is shown once.
func (v *View) Snapshot() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := v.state
	state.Rows = make([]service.Transaction, len(v.state.Rows))
	copy(state.Rows, v.state.Rows)
	v.state.Notifications = nil
	return state
}
