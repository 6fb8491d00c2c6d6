package ports

import "context"

// Email mensaje saliente.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
	ReplyTo string `json:"replyTo,omitempty"`
}

// Delivery resultado de un envío.
type Delivery string

const (
	Delivered Delivery = "delivered"
	// Queued entregado a una cola; el envío real lo hace otro proceso.
	Queued Delivery = "queued"
	// Skipped no es un error: no hay canal de entrega configurado.
	Skipped Delivery = "skipped"
)

// EmailSender canal de entrega síncrono (SMTP, cola, ...).
type EmailSender interface {
	Send(ctx context.Context, msg Email) (Delivery, error)
}

// Notifier envío fire-and-forget: Notify no bloquea ni devuelve error al caller;
// el resultado solo se observa en logs y métricas.
type Notifier interface {
	Notify(msg Email)
}
