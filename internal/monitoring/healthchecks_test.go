package monitoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	name string
	err  error
}

func (f fakeChecker) Name() string { return f.name }

func (f fakeChecker) HealthCheck(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return f.err
}

func TestCheckAll(t *testing.T) {
	statuses := CheckAll(context.Background(),
		fakeChecker{name: "huggingface"},
		fakeChecker{name: "valkey", err: errors.New("connection refused")},
	)

	require.Len(t, statuses, 2)
	assert.Equal(t, "huggingface", statuses[0].Name)
	assert.True(t, statuses[0].Healthy)
	assert.Empty(t, statuses[0].Error)

	assert.Equal(t, "valkey", statuses[1].Name)
	assert.False(t, statuses[1].Healthy)
	assert.Equal(t, "connection refused", statuses[1].Error)
}

func TestMonitor_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rounds := make(chan []Status, 10)
	done := make(chan struct{})
	go func() {
		Monitor(ctx, 10*time.Millisecond, func(s []Status) { rounds <- s }, fakeChecker{name: "llm"})
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case round := <-rounds:
			require.Len(t, round, 1)
			assert.True(t, round[0].Healthy)
		case <-time.After(time.Second):
			t.Fatal("monitor did not report in time")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}
