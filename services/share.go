package services

import (
	"net/url"
	"strings"
	"time"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"
	"fusiongear-backend/receipt"
)

// BuildShareMessage is the invoice summary sent to a customer over WhatsApp.
func BuildShareMessage(shop receipt.Shop, inv models.Invoice, customer *models.CustomerProfile) string {
	date := time.Unix(0, inv.CreatedAt).In(billing.DisplayZone).Format("02/01/2006")

	name, bikeModel, bikeNumber := "N/A", "", ""
	if customer != nil {
		if customer.Name != "" {
			name = customer.Name
		}
		bikeModel, bikeNumber = customer.BikeModel, customer.BikeNumber
	}

	services := strings.Join(billing.DisplayServices(inv.ServiceRecord.Services), ", ")
	if services == "" {
		services = "N/A"
	}

	return strings.Join([]string{
		"🔧 *" + shop.Name + "* - Service Invoice",
		"📞 Contact: " + shop.Phone,
		"",
		"Invoice No: *" + inv.ID + "*",
		"Date: " + date,
		"Customer: " + name,
		"Bike: " + bikeModel + " (" + bikeNumber + ")",
		"",
		"Services: " + services,
		"",
		"*Total Amount: " + billing.FormatCurrency(inv.ServiceRecord.Total) + "*",
		"",
		"Thank you for choosing " + shop.Name + "! 🏍️",
		"Please visit us again for your next service.",
		"📞 " + shop.Phone,
	}, "\n")
}

// ShareURL is the click-to-chat link that opens WhatsApp with message
// addressed to phone. Non-digits are stripped from phone.
func ShareURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(message)
}
