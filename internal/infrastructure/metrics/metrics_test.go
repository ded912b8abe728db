package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Contadores(t *testing.T) {
	c := New()
	c.StatusChanged(entity.StatusPending, entity.StatusInProgress)
	c.StatusChanged(entity.StatusPending, entity.StatusInProgress)
	c.StatusChanged(entity.StatusDone, entity.StatusInvoiced)
	c.OrderCreated()
	c.InvoiceCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.transitions.WithLabelValues("En attente", "En cours")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("Terminée", "Facturée")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.orders))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.invoices))
}

func TestCollector_MiddlewareYHandler(t *testing.T) {
	c := New()
	app := fiber.New()
	app.Use(c.Middleware())
	app.Get("/metrics", c.Handler())
	app.Get("/api/clients/:id", func(ctx *fiber.Ctx) error { return ctx.SendStatus(fiber.StatusNotFound) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/clients/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, testutil.CollectAndCount(c.httpDuration))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `taller_http_request_duration_seconds_count{method="GET",route="/api/clients/:id",status="404"} 1`)
}
