package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"wrenchking-billing/middlewares"
	"wrenchking-billing/models"
	"wrenchking-billing/store"
	"wrenchking-billing/utils"
)

// InvoiceController serves the invoice API off the shared application store.
type InvoiceController struct {
	Store *store.Store
}

func New(s *store.Store) *InvoiceController {
	return &InvoiceController{Store: s}
}

// GetInvoices lists the in-memory collection through the query engine.
// Criteria come from the query string; unset controls keep list defaults.
func (ic *InvoiceController) GetInvoices(c *fiber.Ctx) error {
	crit := models.DefaultCriteria()
	if v := c.Query("status"); v != "" {
		crit.Status = v
	}
	if v := c.Query("sortBy"); v != "" {
		crit.SortBy = v
	}
	if v := c.Query("sortOrder"); v != "" {
		crit.SortOrder = v
	}
	crit.Search = c.Query("search")
	crit.StartDate = c.Query("startDate")
	crit.EndDate = c.Query("endDate")

	invoices := models.Query(ic.Store.Invoices(), crit)
	return c.JSON(fiber.Map{
		"invoices": invoices,
		"message":  "success",
	})
}

// NewInvoice hands the form a blank defaulted draft. Unlike records coming
// from the store, a fresh form draft starts at the form tax-rate default.
func (ic *InvoiceController) NewInvoice(c *fiber.Ctx) error {
	inv := models.NewInvoice()
	inv.TaxRate = models.FormDefaultTaxRate
	return c.JSON(inv)
}

func (ic *InvoiceController) GetInvoice(c *fiber.Ctx) error {
	inv, ok := ic.Store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	return c.JSON(inv)
}

// CreateInvoice normalizes the submitted draft, recomputes every total and
// validates before anything goes near the remote store.
func (ic *InvoiceController) CreateInvoice(c *fiber.Ctx) error {
	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid input"})
	}

	draft := models.Recalculate(models.NormalizeForm(data))
	if err := middlewares.ValidateStruct(draft); err != nil {
		return err // rendered per-field by the global error handler
	}

	inv, err := ic.Store.Create(c.UserContext(), draft)
	if err != nil {
		return err
	}
	return c.JSON(inv)
}

func (ic *InvoiceController) UpdateInvoice(c *fiber.Ctx) error {
	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid input"})
	}

	draft := models.Recalculate(models.NormalizeForm(data))
	if err := middlewares.ValidateStruct(draft); err != nil {
		return err
	}

	inv, err := ic.Store.Update(c.UserContext(), c.Params("id"), draft)
	if err != nil {
		return err
	}
	return c.JSON(inv)
}

func (ic *InvoiceController) DeleteInvoice(c *fiber.Ctx) error {
	if err := ic.Store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (ic *InvoiceController) MarkInvoicePaid(c *fiber.Ctx) error {
	inv, err := ic.Store.MarkPaid(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(inv)
}

// ReloadInvoices re-fetches the whole collection from the remote store.
func (ic *InvoiceController) ReloadInvoices(c *fiber.Ctx) error {
	if err := ic.Store.Load(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "success",
		"count":   ic.Store.Count(),
	})
}

func (ic *InvoiceController) GetStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"stats":   ic.Store.Stats(),
		"message": "success",
	})
}

// InvoiceSummary renders the invoice as shareable plain text. This is the
// display layer, so amounts are rounded to two decimals here and only here.
func (ic *InvoiceController) InvoiceSummary(c *fiber.Ctx) error {
	inv, ok := ic.Store.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invoice not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(summaryText(inv))
}

func summaryText(inv models.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invoice %s\n", inv.InvoiceNumber)
	fmt.Fprintf(&b, "Date: %s\n", utils.FormatDate(inv.Date))
	fmt.Fprintf(&b, "Status: %s\n\n", statusText(inv))
	fmt.Fprintf(&b, "From: %s\n", inv.From.Name)
	fmt.Fprintf(&b, "Billed to: %s\n", inv.To.Name)
	if inv.To.VehicleName != "" || inv.To.VehicleNumber != "" {
		fmt.Fprintf(&b, "Vehicle: %s\n", strings.TrimSpace(inv.To.VehicleName+" "+inv.To.VehicleNumber))
	}
	b.WriteString("\nItems:\n")
	for _, item := range inv.Items {
		fmt.Fprintf(&b, "  %s x%s @ %s", item.Description, trimFloat(item.Quantity), utils.FormatAmount(item.Price))
		if item.ServiceCharge > 0 {
			fmt.Fprintf(&b, " + %s service", utils.FormatAmount(item.ServiceCharge))
		}
		fmt.Fprintf(&b, " = %s\n", utils.FormatAmount(item.Total))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", utils.FormatAmount(inv.Subtotal))
	fmt.Fprintf(&b, "Tax (%s%%): %s\n", trimFloat(inv.TaxRate), utils.FormatAmount(inv.Tax))
	fmt.Fprintf(&b, "Total: %s\n", utils.FormatAmount(inv.Total))
	if inv.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", inv.Notes)
	}
	return b.String()
}

func statusText(inv models.Invoice) string {
	if inv.EffectiveStatus() == models.StatusPaid {
		return "Paid"
	}
	return "Pending"
}

func trimFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
