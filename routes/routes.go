package routes

import (
	"github.com/gofiber/fiber/v2"

	"wrenchking-billing/controllers"
	"wrenchking-billing/store"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, s *store.Store) {
	ic := controllers.New(s)

	api := app.Group("/api")

	// Invoices ("new" before ":id" so it isn't captured as an id)
	api.Get("/invoices", ic.GetInvoices)
	api.Get("/invoices/new", ic.NewInvoice)
	api.Get("/invoices/:id", ic.GetInvoice)
	api.Post("/invoices", ic.CreateInvoice)
	api.Put("/invoices/:id", ic.UpdateInvoice)
	api.Delete("/invoices/:id", ic.DeleteInvoice)
	api.Patch("/invoices/:id/paid", ic.MarkInvoicePaid)
	api.Get("/invoices/:id/summary", ic.InvoiceSummary)

	// Dashboard + maintenance
	api.Get("/stats", ic.GetStats)
	api.Post("/reload", ic.ReloadInvoices)
}
