// Package metrics expone contadores e histogramas Prometheus del servicio.
// Todos los métodos toleran receptor nil, de modo que los casos de uso funcionan sin métricas.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics transiciones de solicitudes y órdenes, y movimientos del libro de stock.
type WorkflowMetrics struct {
	stockRequestTransitions *prometheus.CounterVec
	orderTransitions        *prometheus.CounterVec
	ledgerMovements         *prometheus.CounterVec
	ledgerUnits             *prometheus.CounterVec
}

// NewWorkflowMetrics registra las métricas de negocio en reg. Con reg nil devuelve un valor inerte.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	m := &WorkflowMetrics{
		stockRequestTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_request_transitions_total",
			Help: "Transiciones de estado de solicitudes de reposición.",
		}, []string{"from", "to"}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Transiciones de estado de órdenes.",
		}, []string{"from", "to"}),
		ledgerMovements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_ledger_movements_total",
			Help: "Asientos escritos en el libro de stock.",
		}, []string{"kind"}),
		ledgerUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_ledger_units_total",
			Help: "Unidades movidas por tipo de asiento.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.stockRequestTransitions, m.orderTransitions, m.ledgerMovements, m.ledgerUnits)
	return m
}

// StockRequestTransition cuenta una transición de solicitud.
func (m *WorkflowMetrics) StockRequestTransition(from, to string) {
	if m == nil || m.stockRequestTransitions == nil {
		return
	}
	m.stockRequestTransitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// OrderTransition cuenta una transición de orden.
func (m *WorkflowMetrics) OrderTransition(from, to string) {
	if m == nil || m.orderTransitions == nil {
		return
	}
	m.orderTransitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// LedgerMovement cuenta un asiento y las unidades que movió (valor absoluto).
func (m *WorkflowMetrics) LedgerMovement(kind string, units int) {
	if m == nil || m.ledgerMovements == nil {
		return
	}
	m.ledgerMovements.WithLabelValues(normalizeLabel(kind)).Inc()
	if units < 0 {
		units = -units
	}
	m.ledgerUnits.WithLabelValues(normalizeLabel(kind)).Add(float64(units))
}

// HTTPMetrics latencia y conteo de peticiones HTTP.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registra el histograma de latencia en reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration)
	return &HTTPMetrics{duration: duration}
}

// Observe registra una petición. route debe ser el patrón de la ruta, no el path concreto.
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(method, normalizeLabel(route), strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
