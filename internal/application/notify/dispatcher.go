// Package notify envía emails fuera del ciclo de la petición.
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/domain"
	"github.com/jhoicas/pastro-api/pkg/retry"
)

var _ ports.Notifier = (*Dispatcher)(nil)

// Config del Dispatcher.
type Config struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
	Retry       retry.Config
}

// DefaultConfig 2 workers, cola de 256, 15s por intento.
func DefaultConfig() Config {
	return Config{Workers: 2, QueueSize: 256, SendTimeout: 15 * time.Second, Retry: retry.DefaultConfig()}
}

// Dispatcher implementa ports.Notifier: Notify encola y vuelve de inmediato;
// los workers envían con reintentos y solo dejan rastro en logs y métricas.
type Dispatcher struct {
	sender   ports.EmailSender
	recorder ports.Recorder
	log      zerolog.Logger
	cfg      Config

	jobs   chan ports.Email
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher arranca los workers. Llamar a Close al apagar.
func NewDispatcher(sender ports.EmailSender, recorder ports.Recorder, log zerolog.Logger, cfg Config) *Dispatcher {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultConfig().SendTimeout
	}
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		sender:   sender,
		recorder: recorder,
		log:      log,
		cfg:      cfg,
		jobs:     make(chan ports.Email, cfg.QueueSize),
		ctx:      ctx,
		cancel:   cancel,
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Notify no bloquea. Con la cola llena o el dispatcher cerrado el mensaje se descarta (y se registra).
func (d *Dispatcher) Notify(msg ports.Email) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.drop(msg, "cerrado")
		return
	}
	select {
	case d.jobs <- msg:
	default:
		d.drop(msg, "cola llena")
	}
}

func (d *Dispatcher) drop(msg ports.Email, why string) {
	d.recorder.Notification("dropped")
	d.log.Warn().Str("to", msg.To).Str("subject", msg.Subject).Str("reason", why).Msg("email descartado")
}

// Close deja de aceptar mensajes y espera a que se vacíe la cola. Si ctx vence antes,
// cancela los envíos en curso y devuelve ctx.Err().
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobs)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.jobs {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg ports.Email) {
	var delivery ports.Delivery
	err := retry.Do(d.ctx, d.cfg.Retry, func() error {
		ctx, cancel := context.WithTimeout(d.ctx, d.cfg.SendTimeout)
		defer cancel()
		res, err := d.sender.Send(ctx, msg)
		if err != nil {
			return err
		}
		delivery = res
		return nil
	}, func(attempt int, err error, next time.Duration) {
		d.log.Debug().Err(err).Int("attempt", attempt).Dur("next", next).Str("to", msg.To).Msg("reintentando email")
	})
	if err != nil {
		d.recorder.Notification("failed")
		d.log.Warn().Err(errors.Join(domain.ErrUpstreamUnavailable, err)).Str("to", msg.To).Str("subject", msg.Subject).Msg("email no enviado")
		return
	}
	d.recorder.Notification(string(delivery))
	if delivery == ports.Skipped {
		d.log.Debug().Str("to", msg.To).Msg("email omitido: sin canal de entrega configurado")
		return
	}
	d.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Str("delivery", string(delivery)).Msg("email enviado")
}
