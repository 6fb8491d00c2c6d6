package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pastro-api/internal/application/notify"
	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
	"github.com/jhoicas/pastro-api/pkg/retry"
)

type flakySender struct {
	mu       sync.Mutex
	failures int
	result   ports.Delivery
	calls    int
	sent     []ports.Email
}

func (s *flakySender) Send(_ context.Context, msg ports.Email) (ports.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return "", errors.New("421 service not available")
	}
	s.sent = append(s.sent, msg)
	return s.result, nil
}

type blockingSender struct {
	started chan struct{}
	release chan struct{}
}

func (s *blockingSender) Send(ctx context.Context, _ ports.Email) (ports.Delivery, error) {
	s.started <- struct{}{}
	select {
	case <-s.release:
		return ports.Delivered, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type countingRecorder struct {
	ports.NopRecorder
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) Notification(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[result]++
}

func (r *countingRecorder) get(k string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[k]
}

func testConfig(workers, queue, attempts int) notify.Config {
	return notify.Config{
		Workers:     workers,
		QueueSize:   queue,
		SendTimeout: time.Second,
		Retry:       retry.Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, BackoffFactor: 2},
	}
}

func TestDispatcher_ReintentaYEntrega(t *testing.T) {
	sender := &flakySender{failures: 2, result: ports.Delivered}
	rec := &countingRecorder{}
	d := notify.NewDispatcher(sender, rec, zerolog.Nop(), testConfig(1, 4, 5))

	d.Notify(notify.WelcomeEmail("a@x.com"))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 3, sender.calls)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@x.com", sender.sent[0].To)
	assert.Equal(t, 1, rec.get("delivered"))
}

func TestDispatcher_FalloNoPropaga(t *testing.T) {
	sender := &flakySender{failures: 10}
	rec := &countingRecorder{}
	d := notify.NewDispatcher(sender, rec, zerolog.Nop(), testConfig(1, 4, 2))

	d.Notify(notify.WelcomeEmail("a@x.com"))
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 2, sender.calls)
	assert.Equal(t, 1, rec.get("failed"))
}

func TestDispatcher_Skipped(t *testing.T) {
	sender := &flakySender{result: ports.Skipped}
	rec := &countingRecorder{}
	d := notify.NewDispatcher(sender, rec, zerolog.Nop(), testConfig(2, 4, 3))

	d.Notify(notify.WelcomeEmail("a@x.com"))
	d.Notify(notify.WelcomeEmail("b@x.com"))
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 2, rec.get("skipped"))
}

func TestDispatcher_NotifyNoBloquea(t *testing.T) {
	sender := &blockingSender{started: make(chan struct{}, 1), release: make(chan struct{})}
	rec := &countingRecorder{}
	d := notify.NewDispatcher(sender, rec, zerolog.Nop(), testConfig(1, 1, 1))

	d.Notify(notify.WelcomeEmail("1@x.com"))
	<-sender.started // el worker está ocupado con el primero

	done := make(chan struct{})
	go func() {
		d.Notify(notify.WelcomeEmail("2@x.com")) // ocupa la cola
		d.Notify(notify.WelcomeEmail("3@x.com")) // cola llena: se descarta
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify bloqueó al llamador")
	}
	assert.Equal(t, 1, rec.get("dropped"))

	close(sender.release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 2, rec.get("delivered"))
}

func TestDispatcher_CloseConPlazoVencido(t *testing.T) {
	sender := &blockingSender{started: make(chan struct{}, 1), release: make(chan struct{})}
	d := notify.NewDispatcher(sender, nil, zerolog.Nop(), testConfig(1, 1, 1))
	d.Notify(notify.WelcomeEmail("a@x.com"))
	<-sender.started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)

	// después de cerrar, Notify descarta sin panic
	assert.NotPanics(t, func() { d.Notify(notify.WelcomeEmail("b@x.com")) })
}

func TestStatusEmail(t *testing.T) {
	ok := notify.StatusEmail("o@x.com", "CleanCo", entity.StatusApproved, "")
	assert.Equal(t, "o@x.com", ok.To)
	assert.Contains(t, ok.Text, "CleanCo")
	assert.NotContains(t, ok.Text, "Arsyeja")

	no := notify.StatusEmail("o@x.com", "Clean <Co>", entity.StatusRejected, "dokumente mungojnë")
	assert.Contains(t, no.Text, "Arsyeja: dokumente mungojnë")
	assert.Contains(t, no.HTML, "Clean &lt;Co&gt;")
}
