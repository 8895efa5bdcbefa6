package operator

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/operator/actions"
)

var ErrStopped = errors.New("operator: delegator stopped")

// OperatorDelegator manages the queue, starts/stops Operators (workers), and enqueues items.
// With one worker every mutation is applied by a single writer, in arrival order.
type OperatorDelegator struct {
	storage    WriteOpener
	logger     *logrus.Logger
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
	stateMutex sync.RWMutex
	stopped    bool
}

func NewOperatorDelegator(s WriteOpener, numWorkers int, logger *logrus.Logger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		storage:    s,
		logger:     logger,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.storage, d.queue, d.logger)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop drains the queue and waits for the workers. Process returns ErrStopped afterwards.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		d.stateMutex.Lock()
		d.stopped = true
		close(d.queue)
		d.stateMutex.Unlock()
		d.wg.Wait()
	})
}

func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.stateMutex.RLock()
	if d.stopped {
		d.stateMutex.RUnlock()
		return ErrStopped
	}
	select {
	case d.queue <- item:
		d.stateMutex.RUnlock()
	case <-ctx.Done():
		d.stateMutex.RUnlock()
		return ctx.Err()
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
