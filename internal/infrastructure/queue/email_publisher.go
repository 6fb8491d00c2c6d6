// Package queue publica los correos salientes en RabbitMQ para que otro proceso los envíe.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/pastro-api/internal/application/ports"
)

// DefaultQueue cola de correos si no se configura otra.
const DefaultQueue = "pastro.emails"

var _ ports.EmailSender = (*EmailPublisher)(nil)

// EmailPublisher implementa EmailSender publicando un job JSON persistente.
// Un amqp.Channel no admite publicaciones concurrentes: mu las serializa.
type EmailPublisher struct {
	conn  *amqp.Connection
	mu    sync.Mutex
	ch    *amqp.Channel
	queue string
}

// NewEmailPublisher conecta, abre un canal en modo confirm y declara la cola (durable).
func NewEmailPublisher(url, queue string) (*EmailPublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp declare %s: %w", queue, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp confirm mode: %w", err)
	}
	return &EmailPublisher{conn: conn, ch: ch, queue: queue}, nil
}

// Send publica el mensaje y espera la confirmación del broker. Devuelve Queued.
func (p *EmailPublisher) Send(ctx context.Context, msg ports.Email) (ports.Delivery, error) {
	pub, err := Publishing(msg, time.Now())
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, pub)
	if err != nil {
		return "", fmt.Errorf("amqp publish: %w", err)
	}
	ok, err := confirm.WaitContext(ctx)
	if err != nil {
		return "", fmt.Errorf("amqp confirm: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("amqp publish: mensaje rechazado por el broker")
	}
	return ports.Queued, nil
}

// Close cierra canal y conexión.
func (p *EmailPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.ch.Close()
	return p.conn.Close()
}

// Publishing cuerpo JSON del job de correo.
func Publishing(msg ports.Email, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode email job: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Type:         "email",
		Body:         body,
	}, nil
}
