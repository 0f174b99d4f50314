package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	dealsvc "jammshop/internal/api/deal/service"

	"github.com/stretchr/testify/assert"
)

type countingRefresher struct {
	runs  atomic.Int32
	panic bool
}

func (r *countingRefresher) Refresh(context.Context) (dealsvc.RefreshResult, error) {
	n := r.runs.Add(1)
	if r.panic && n == 1 {
		panic("boom")
	}
	if n == 2 {
		return dealsvc.RefreshResult{}, errors.New("aggregate failed")
	}
	return dealsvc.RefreshResult{Ranked: 1}, nil
}

func TestNewDealsRefreshWorker_Disabled(t *testing.T) {
	assert.Nil(t, NewDealsRefreshWorker(&countingRefresher{}, 0, 0))
	assert.Nil(t, NewDealsRefreshWorker(nil, time.Second, 0))
}

func TestDealsRefreshWorker_KeepsRunning(t *testing.T) {
	r := &countingRefresher{panic: true}
	w := NewDealsRefreshWorker(r, 10*time.Millisecond, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return r.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestDealsRefreshWorker_CancelDuringDelay(t *testing.T) {
	r := &countingRefresher{}
	w := NewDealsRefreshWorker(r, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	assert.Zero(t, r.runs.Load())
}
