// Package viewer holds the transaction list engine: the filtered result set of one owner with
// its page cursor, and everything derived from them for display and export.
package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

const DefaultPageSize = 20

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// Fetcher returns every record matching the filter, most recent date first.
type Fetcher interface {
	FetchTransactions(ctx context.Context, filter service.TransactionFilter) ([]service.Transaction, error)
}

type Mutator interface {
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	UpdateTransaction(ctx context.Context, id uuid.UUID, patch service.TransactionPatch) (*service.Transaction, error)
}

// Renderer receives derived display state. Calls are made one at a time.
type Renderer interface {
	RenderRows(rows []service.Transaction)
	RenderSummary(summary Summary)
	RenderPagination(model PaginationModel)
}

type Notifier interface {
	Notify(level NotificationLevel, message string)
}

type Config struct {
	Fetcher  Fetcher
	Mutator  Mutator
	Renderer Renderer
	Notifier Notifier
	Logger   *logrus.Logger
	PageSize int
}

// Engine owns the filtered result set of one owner. It is safe for concurrent use; overlapping
// loads are resolved in favour of the one started last.
type Engine struct {
	fetcher  Fetcher
	mutator  Mutator
	renderer Renderer
	notifier Notifier
	logger   *logrus.Logger
	pageSize int

	mu       sync.Mutex
	criteria service.TransactionFilter
	records  []service.Transaction
	page     int
	latest   uint64

	// pending is the criteria of the newest load. It becomes criteria once that load commits.
	pending      service.TransactionFilter
	pendingReset bool
}

func NewEngine(cfg Config) *Engine {
	pageSize := cfg.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Engine{
		fetcher:  cfg.Fetcher,
		mutator:  cfg.Mutator,
		renderer: cfg.Renderer,
		notifier: cfg.Notifier,
		logger:   logger,
		pageSize: pageSize,
		page:     1,
	}
}

// ApplyFilters validates the form, then loads the matching records starting from page 1.
// On failure the previous criteria, records and page are kept.
func (e *Engine) ApplyFilters(ctx context.Context, input FilterInput) error {
	criteria, err := input.Criteria()
	if err != nil {
		e.notifier.Notify(LevelWarning, err.Error())
		return err
	}
	return e.load(ctx, &criteria, MsgFilterFailed)
}

func (e *Engine) ClearFilters(ctx context.Context) error {
	return e.ApplyFilters(ctx, FilterInput{})
}

// Reload fetches the most recently requested criteria again and re-renders everything.
// A reload that overtakes an unfinished ApplyFilters carries that filter forward.
func (e *Engine) Reload(ctx context.Context) error {
	return e.load(ctx, nil, MsgLoadFailed)
}

// load fetches applied, or the pending criteria when applied is nil. Only the newest load commits.
func (e *Engine) load(ctx context.Context, applied *service.TransactionFilter, failureMessage string) error {
	e.mu.Lock()
	if applied != nil {
		e.pending = *applied
		e.pendingReset = true
	}
	e.latest++
	seq := e.latest
	criteria := e.pending
	resetPage := e.pendingReset
	e.mu.Unlock()

	var stopTimer func()
	logData := logging.GetLogData(ctx)
	if logData != nil {
		stopTimer = logData.AddToExistingTiming("fetchTransactionsMs")
	}
	records, err := e.fetcher.FetchTransactions(ctx, criteria)
	if stopTimer != nil {
		stopTimer()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq != e.latest {
		e.logger.WithField("seq", seq).Debug("Engine.load.stale")
		return nil
	}

	e.pendingReset = false
	if err != nil {
		e.pending = e.criteria
		e.logger.WithError(err).Error("Engine.load.fetch")
		e.notifier.Notify(LevelError, failureMessage)
		return &FetchError{Op: "fetch transactions", Err: err}
	}

	e.criteria = criteria
	e.records = records
	if resetPage {
		e.page = 1
	}
	e.page = clampPage(e.page, totalPages(len(e.records), e.pageSize))
	if logData != nil {
		logData.AddData("transactionCount", len(records))
	}

	e.renderPageLocked()
	e.renderer.RenderSummary(summarize(e.records))
	return nil
}

// GoToPage moves to page n clamped into range and re-renders the rows and page controls.
func (e *Engine) GoToPage(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.page = clampPage(n, totalPages(len(e.records), e.pageSize))
	e.renderPageLocked()
}

func (e *Engine) renderPageLocked() {
	total := totalPages(len(e.records), e.pageSize)
	e.renderer.RenderRows(visibleSlice(e.records, e.page, e.pageSize))
	e.renderer.RenderPagination(buildPagination(e.page, total))
}

func (e *Engine) Page() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.page
}

func (e *Engine) TotalPages() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return totalPages(len(e.records), e.pageSize)
}

func (e *Engine) PageSize() int {
	return e.pageSize
}

// Criteria returns the filter the current result set was loaded with.
func (e *Engine) Criteria() service.TransactionFilter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.criteria
}

// VisiblePage returns at most one page of records. It is empty, never nil, when there are none.
func (e *Engine) VisiblePage() []service.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return visibleSlice(e.records, e.page, e.pageSize)
}

func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return summarize(e.records)
}

func (e *Engine) PaginationModel() PaginationModel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return buildPagination(e.page, totalPages(len(e.records), e.pageSize))
}

// ExportRows projects the whole filtered result set, one row per record.
func (e *Engine) ExportRows() []ExportRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return exportRows(e.records)
}

// Export is ExportRows for a user action: an empty result set is reported, not exported.
func (e *Engine) Export() ([]ExportRow, error) {
	rows := e.ExportRows()
	if len(rows) == 0 {
		e.notifier.Notify(LevelWarning, MsgNothingToExport)
		return nil, ErrNothingToExport
	}
	return rows, nil
}

// Lookup finds a record of the current result set, for prefilling the edit dialog.
func (e *Engine) Lookup(id uuid.UUID) (service.Transaction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, record := range e.records {
		if record.ID == id {
			return record, true
		}
	}
	return service.Transaction{}, false
}

// Delete removes a transaction and reloads.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) error {
	if err := e.mutator.DeleteTransaction(ctx, id); err != nil {
		e.logger.WithError(err).WithField("transactionID", id).Error("Engine.Delete")
		e.notifier.Notify(LevelError, MsgDeleteFailed)
		return &FetchError{Op: "delete transaction", Err: err}
	}

	e.notifier.Notify(LevelSuccess, MsgDeleted)
	return e.Reload(ctx)
}

// Edit validates the form, updates the transaction and reloads. Invalid input never reaches
// the mutator.
func (e *Engine) Edit(ctx context.Context, id uuid.UUID, form EditForm) error {
	patch, err := form.Patch()
	if err != nil {
		e.notifier.Notify(LevelWarning, err.Error())
		return err
	}

	if _, err := e.mutator.UpdateTransaction(ctx, id, patch); err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			e.notifier.Notify(LevelWarning, validationErr.Error())
			return err
		}
		e.logger.WithError(err).WithField("transactionID", id).Error("Engine.Edit")
		e.notifier.Notify(LevelError, MsgUpdateFailed)
		return &FetchError{Op: "update transaction", Err: err}
	}

	e.notifier.Notify(LevelSuccess, MsgUpdated)
	return e.Reload(ctx)
}
