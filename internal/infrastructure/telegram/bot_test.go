package telegram

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSource struct {
	updates chan tgbotapi.Update
	mu      sync.Mutex
	stopped bool
	timeout int
}

func newFakeSource() *fakeSource {
	return &fakeSource{updates: make(chan tgbotapi.Update, 10)}
}

func (s *fakeSource) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	s.timeout = cfg.Timeout
	return s.updates
}

func (s *fakeSource) StopReceivingUpdates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

func (s *fakeSource) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

type recordingHandler struct {
	mu    sync.Mutex
	seen  []int
	panic int
	done  chan struct{}
	want  int
}

func (h *recordingHandler) HandleUpdate(_ context.Context, update tgbotapi.Update) {
	h.mu.Lock()
	h.seen = append(h.seen, update.UpdateID)
	n := len(h.seen)
	h.mu.Unlock()

	if n == h.want {
		close(h.done)
	}
	if update.UpdateID == h.panic {
		panic("boom")
	}
}

func TestRun_ProcessesInOrderAndStopsOnCancel(t *testing.T) {
	source := newFakeSource()
	core, logs := observer.New(zapcore.InfoLevel)
	bot := newBot(source, 30, zap.New(core))

	handler := &recordingHandler{done: make(chan struct{}), want: 3, panic: 2}
	for i := 1; i <= 3; i++ {
		source.updates <- tgbotapi.Update{UpdateID: i}
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- bot.Run(ctx, handler) }()

	select {
	case <-handler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("updates were not handled")
	}
	cancel()

	require.NoError(t, <-errCh)
	assert.Equal(t, []int{1, 2, 3}, handler.seen)
	assert.Equal(t, 30, source.timeout)
	assert.True(t, source.isStopped())
	assert.Equal(t, 1, logs.FilterMessage("Panic while handling update").Len())
}

func TestRun_ClosedChannel(t *testing.T) {
	source := newFakeSource()
	bot := newBot(source, 0, zap.NewNop())
	close(source.updates)

	err := bot.Run(context.Background(), &recordingHandler{done: make(chan struct{}), want: -1})
	assert.ErrorIs(t, err, ErrUpdatesClosed)
}
