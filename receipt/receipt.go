// Package receipt lays out invoices as plain text for 58 mm and 80 mm
// thermal printers.
package receipt

import (
	"fmt"
	"strconv"
	"strings"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"
)

// Width is the column count of a receipt layout.
type Width int

const (
	Narrow Width = 32 // 58 mm roll
	Wide   Width = 48 // 80 mm roll
)

// ParseWidth accepts "58mm"/"narrow" and "80mm"/"wide". Anything else,
// including the empty string, selects Narrow.
func ParseWidth(s string) (Width, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "58", "58mm", "narrow", "32":
		return Narrow, true
	case "80", "80mm", "wide", "48":
		return Wide, true
	}
	return Narrow, false
}

// String returns the paper size of w.
func (w Width) String() string {
	if w == Wide {
		return "80mm"
	}
	return "58mm"
}

// Shop is the business identity printed on receipts and documents.
type Shop struct {
	Name    string
	Tagline string
	Phone   string
}

// DefaultShop is used when no shop identity is configured.
var DefaultShop = Shop{
	Name:    "FUSION GEAR",
	Tagline: "Bike Service Center",
	Phone:   "8073670402",
}

// Renderer formats receipts for one shop.
type Renderer struct {
	shop Shop
}

func NewRenderer(shop Shop) *Renderer {
	return &Renderer{shop: shop}
}

// Format renders inv at width w. customer may be nil, in which case the
// customer block is left out. Widths other than Wide render as Narrow.
func (r *Renderer) Format(w Width, inv models.Invoice, customer *models.CustomerProfile) string {
	if w == Wide {
		return r.formatWide(inv, customer)
	}
	return r.formatNarrow(inv, customer)
}

var defaultRenderer = NewRenderer(DefaultShop)

// Format renders inv with DefaultShop.
func Format(w Width, inv models.Invoice, customer *models.CustomerProfile) string {
	return defaultRenderer.Format(w, inv, customer)
}

func (r *Renderer) formatNarrow(inv models.Invoice, customer *models.CustomerProfile) string {
	const W = int(Narrow)
	sr := inv.ServiceRecord
	lines := make([]string, 0, 40)

	lines = append(lines,
		Center(r.shop.Name, W),
		Center(r.shop.Tagline, W),
		Center("Ph: "+r.shop.Phone, W),
		Divider(W, '='),
		FormatLine("Invoice:", inv.ID, W),
		FormatLine("Date:", billing.FormatDay(inv.CreatedAt), W),
		Divider(W, '-'),
	)

	if customer != nil {
		lines = append(lines,
			FormatLine("Name:", truncate(customer.Name, 14), W),
			FormatLine("Phone:", customer.Phone, W),
			FormatLine("Bike:", truncate(customer.BikeModel, 14), W),
			FormatLine("Reg No:", customer.BikeNumber, W),
			FormatLine("KM:", strconv.FormatInt(customer.KMReading, 10), W),
		)
	}

	lines = append(lines,
		Divider(W, '='),
		Center("SERVICES", W),
		Divider(W, '-'),
	)
	for _, s := range billing.DisplayServices(sr.Services) {
		lines = append(lines, PadRight("  "+truncate(s, W-2), W))
	}

	lines = append(lines, Divider(W, '-'))
	lines = append(lines, chargeLines(sr, W, chargeLabels{
		subtotal: "Subtotal:",
		spare:    "Spare Parts:",
		labour:   "Labour:",
		discount: "Discount:",
		gst:      "GST (18%):",
		amount:   func(v int64) string { return fmt.Sprintf("Rs.%d", v) },
	})...)

	// A zero-total bill always prints as PAID here, whatever its stored
	// status. The wide layout and the document print the stored status.
	status := "PAID"
	if sr.Total > 0 {
		status = strings.ToUpper(inv.Status)
	}

	lines = append(lines,
		Divider(W, '='),
		FormatLine("TOTAL:", fmt.Sprintf("Rs.%d", sr.Total), W),
		Divider(W, '='),
		FormatLine("Status:", status, W),
		Divider(W, '-'),
		Center("Thank You!", W),
		Center("Visit Again", W),
		"",
	)
	return strings.Join(lines, "\n")
}

func (r *Renderer) formatWide(inv models.Invoice, customer *models.CustomerProfile) string {
	const W = int(Wide)
	sr := inv.ServiceRecord
	lines := make([]string, 0, 48)

	lines = append(lines,
		Center(r.shop.Name+" - "+strings.ToUpper(r.shop.Tagline), W),
		Center("Contact: "+r.shop.Phone, W),
		Divider(W, '='),
		FormatLine("Invoice No:", inv.ID, W),
		FormatLine("Date & Time:", billing.FormatDate(inv.CreatedAt), W),
		Divider(W, '-'),
	)

	if customer != nil {
		lines = append(lines,
			FormatLine("Customer Name:", customer.Name, W),
			FormatLine("Phone:", customer.Phone, W),
			FormatLine("Address:", truncate(customer.Address, 28), W),
			FormatLine("Bike Model:", customer.BikeModel, W),
			FormatLine("Reg. Number:", customer.BikeNumber, W),
			FormatLine("KM Reading:", strconv.FormatInt(customer.KMReading, 10)+" km", W),
			FormatLine("Fuel Level:", customer.FuelLevel, W),
		)
	}

	lines = append(lines,
		Divider(W, '='),
		Center("SERVICE DETAILS", W),
		Divider(W, '-'),
	)
	services := billing.DisplayServices(sr.Services)
	for _, s := range services {
		lines = append(lines, PadRight("  * "+truncate(s, W-4), W))
	}
	if len(services) == 0 {
		lines = append(lines, PadRight("  No services recorded", W))
	}

	lines = append(lines, Divider(W, '-'))
	lines = append(lines, chargeLines(sr, W, chargeLabels{
		subtotal: "Service Subtotal:",
		spare:    "Spare Parts Cost:",
		labour:   "Labour Charges:",
		discount: "Discount:",
		gst:      "GST @ 18%:",
		amount:   func(v int64) string { return fmt.Sprintf("Rs. %d", v) },
	})...)

	lines = append(lines,
		Divider(W, '='),
		FormatLine("GRAND TOTAL:", fmt.Sprintf("Rs. %d", sr.Total), W),
		Divider(W, '='),
		FormatLine("Payment Status:", strings.ToUpper(inv.Status), W),
		Divider(W, '-'),
		Center("Thank you for choosing "+r.shop.Name+"!", W),
		Center("We look forward to serving you again.", W),
		"",
	)
	return strings.Join(lines, "\n")
}

type chargeLabels struct {
	subtotal, spare, labour, discount, gst string
	amount                                 func(int64) string
}

// chargeLines itemizes the bill. Subtotal always prints; the other rows only
// when they apply.
func chargeLines(sr models.ServiceRecord, w int, l chargeLabels) []string {
	lines := []string{FormatLine(l.subtotal, l.amount(sr.Subtotal), w)}
	if sr.SparePartsCost > 0 {
		lines = append(lines, FormatLine(l.spare, l.amount(sr.SparePartsCost), w))
	}
	if sr.LabourCharges > 0 {
		lines = append(lines, FormatLine(l.labour, l.amount(sr.LabourCharges), w))
	}
	if sr.Discount > 0 {
		lines = append(lines, FormatLine(l.discount, "-"+l.amount(sr.Discount), w))
	}
	if sr.GSTFlag {
		lines = append(lines, FormatLine(l.gst, l.amount(sr.GSTAmount), w))
	}
	return lines
}
