// Package metrics expone contadores Prometheus del taller y la duración de las peticiones HTTP.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taller"

// Collector agrupa los colectores en un registro propio (no el global).
// Implementa workshop.Metrics y billing.Metrics.
type Collector struct {
	registry     *prometheus.Registry
	httpDuration *prometheus.HistogramVec
	transitions  *prometheus.CounterVec
	invoices     prometheus.Counter
	orders       prometheus.Counter
}

// New registra los colectores del proceso y los del dominio.
func New() *Collector {
	reg := prometheus.NewRegistry()
	c := &Collector{
		registry: reg,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intervention_transitions_total",
			Help:      "Cambios de estado de intervenciones.",
		}, []string{"from", "to"}),
		invoices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_created_total",
			Help:      "Facturas emitidas.",
		}),
		orders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Pedidos derivados de intervenciones.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.httpDuration, c.transitions, c.invoices, c.orders,
	)
	return c
}

// StatusChanged cuenta una transición de estado.
func (c *Collector) StatusChanged(from, to entity.InterventionStatus) {
	c.transitions.WithLabelValues(string(from), string(to)).Inc()
}

// OrderCreated cuenta un pedido derivado.
func (c *Collector) OrderCreated() { c.orders.Inc() }

// InvoiceCreated cuenta una factura emitida.
func (c *Collector) InvoiceCreated() { c.invoices.Inc() }

// Middleware mide la duración por ruta registrada (no por path, para acotar la cardinalidad).
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		c.httpDuration.
			WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro en formato Prometheus (GET /metrics).
func (c *Collector) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}
