package spinner

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStart_DrawsAndClears(t *testing.T) {
	var out syncBuffer
	stop := Start(&out, "waiting")
	time.Sleep(200 * time.Millisecond)
	stop()
	stop()

	s := out.String()
	assert.Contains(t, s, "waiting")
	assert.True(t, len(s) > 0 && s[len(s)-1] == '\r')
}

func TestCountdown_Elapses(t *testing.T) {
	var out syncBuffer
	began := time.Now()
	require.NoError(t, Countdown(context.Background(), &out, "answer", 150*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(began), 150*time.Millisecond)
	assert.Contains(t, out.String(), "answer (")
}

func TestCountdown_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out syncBuffer
	err := Countdown(ctx, &out, "answer", time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
