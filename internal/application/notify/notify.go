// Package notify despacha eventos de negocio a canales externos (WhatsApp, Pub/Sub) sin
// bloquear ni hacer fallar la operación que los originó.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/masonbass/retail-api/pkg/logger"
)

// Tipos de evento.
const (
	EventStockRequestCreated   = "stock_request.created"
	EventStockRequestApproved  = "stock_request.approved"
	EventStockRequestRejected  = "stock_request.rejected"
	EventStockRequestDelivered = "stock_request.delivered"
	EventStockRequestCompleted = "stock_request.completed"
	EventOrderPlaced           = "order.placed"
	EventOrderStatusChanged    = "order.status_changed"
)

// Event mensaje a operaciones. Subject es el ID del documento; Message el texto legible.
type Event struct {
	Type       string
	Subject    string
	Message    string
	Attributes map[string]string
	OccurredAt time.Time
}

// Notifier canal de salida (puerto implementado en infrastructure/notify).
type Notifier interface {
	Name() string
	Notify(ctx context.Context, ev Event) error
}

// Publisher lo consumen los casos de uso. Publish nunca bloquea ni falla.
type Publisher interface {
	Publish(ev Event)
}

// Dispatcher envía cada evento a todos los canales en goroutines propias con un timeout acotado.
// Los errores se registran y se descartan.
type Dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	log       *logger.Logger
	wg        sync.WaitGroup
}

// NewDispatcher construye el despachador. Sin canales, Publish no hace nada.
func NewDispatcher(log *logger.Logger, timeout time.Duration, notifiers ...Notifier) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{notifiers: notifiers, timeout: timeout, log: log}
}

// Publish dispara el evento en segundo plano.
func (d *Dispatcher) Publish(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}
	for _, n := range d.notifiers {
		d.wg.Add(1)
		go d.send(n, ev)
	}
}

func (d *Dispatcher) send(n Notifier, ev Event) {
	defer d.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("notifier", n.Name()).Str("event", ev.Type).Msg("notificación abortada")
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := n.Notify(ctx, ev); err != nil {
		d.log.Warn().Err(err).
			Str("notifier", n.Name()).
			Str("event", ev.Type).
			Str("subject", ev.Subject).
			Msg("notificación no enviada")
	}
}

// Wait espera los envíos en curso (apagado ordenado y tests).
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

// Nop publisher que descarta los eventos.
type Nop struct{}

// Publish no hace nada.
func (Nop) Publish(Event) {}
