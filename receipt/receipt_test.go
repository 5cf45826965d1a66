package receipt

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sp(n int) string { return strings.Repeat(" ", n) }

func sampleInvoice() models.Invoice {
	created := time.Date(2026, time.October, 19, 14, 5, 0, 0, billing.DisplayZone).UnixNano()
	in := billing.Input{
		Services:       billing.ServiceSelection{EngineRepair: true, CustomService: "Brake pads"},
		SparePartsCost: 100,
		GSTEnabled:     true,
	}
	customerID := uuid.New()
	return models.Invoice{
		ID:            "INV-20261019-A1B2C3",
		Status:        models.StatusPending,
		CreatedAt:     created,
		CustomerID:    customerID,
		ServiceRecord: models.NewServiceRecord(customerID, "Ravi", in, billing.Calculate(in), created),
	}
}

func sampleCustomer() *models.CustomerProfile {
	return &models.CustomerProfile{
		Name:       "Ramesh Kumar",
		Phone:      "9876543210",
		Address:    "12 MG Road, Indiranagar, Bengaluru 560038",
		BikeModel:  "Bajaj Pulsar NS200",
		BikeNumber: "KA01AB1234",
		KMReading:  15230,
		FuelLevel:  "Half",
	}
}

func TestFormatNarrow(t *testing.T) {
	want := strings.Join([]string{
		sp(10) + "FUSION GEAR" + sp(11),
		sp(6) + "Bike Service Center" + sp(7),
		sp(9) + "Ph: 8073670402" + sp(9),
		strings.Repeat("=", 32),
		"Invoice:" + sp(5) + "INV-20261019-A1B2C3",
		"Date:" + sp(16) + "19 Oct 2026",
		strings.Repeat("-", 32),
		"Name:" + sp(15) + "Ramesh Kumar",
		"Phone:" + sp(16) + "9876543210",
		"Bike:" + sp(13) + "Bajaj Pulsar N",
		"Reg No:" + sp(15) + "KA01AB1234",
		"KM:" + sp(24) + "15230",
		strings.Repeat("=", 32),
		sp(12) + "SERVICES" + sp(12),
		strings.Repeat("-", 32),
		"  Engine Repair" + sp(17),
		"  Brake pads" + sp(20),
		strings.Repeat("-", 32),
		"Subtotal:" + sp(16) + "Rs.1200",
		"Spare Parts:" + sp(14) + "Rs.100",
		"GST (18%):" + sp(16) + "Rs.234",
		strings.Repeat("=", 32),
		"TOTAL:" + sp(19) + "Rs.1534",
		strings.Repeat("=", 32),
		"Status:" + sp(18) + "PENDING",
		strings.Repeat("-", 32),
		sp(11) + "Thank You!" + sp(11),
		sp(10) + "Visit Again" + sp(11),
		"",
	}, "\n")

	assert.Equal(t, want, Format(Narrow, sampleInvoice(), sampleCustomer()))
}

func TestFormatWideCustomerBlock(t *testing.T) {
	out := Format(Wide, sampleInvoice(), sampleCustomer())
	lines := strings.Split(out, "\n")

	assert.Equal(t, sp(7)+"FUSION GEAR - BIKE SERVICE CENTER"+sp(8), lines[0])
	assert.Equal(t, "Date & Time:"+sp(15)+"19 Oct 2026, 02:05 pm", lines[4])
	assert.Contains(t, lines, "Address:"+sp(12)+"12 MG Road, Indiranagar, Ben")
	assert.Contains(t, lines, "KM Reading:"+sp(29)+"15230 km")
	assert.Contains(t, lines, "Fuel Level:"+sp(33)+"Half")
	assert.Contains(t, lines, PadRight("  * Engine Repair", 48))
	assert.Contains(t, lines, "Payment Status:"+sp(26)+"PENDING")
	assert.Contains(t, lines, "GRAND TOTAL:"+sp(28)+"Rs. 1534")
	assert.Equal(t, "", lines[len(lines)-1])
}

func TestEveryLineFillsTheWidth(t *testing.T) {
	inv := sampleInvoice()
	inv.ID = "INV-" + strings.Repeat("9", 60)
	inv.ServiceRecord.Services = billing.ServiceSelection{
		OilChange: true, GeneralService: true, EngineRepair: true, SpareParts: true,
		CustomService: strings.Repeat("Full fairing repaint and polish ", 3),
	}
	inv.ServiceRecord.LabourCharges = 350
	inv.ServiceRecord.Discount = 75

	long := sampleCustomer()
	long.Name = "Venkatasubramanian Raghavendra Iyengar"
	long.Address = strings.Repeat("Flat 4B, ", 10)
	long.BikeModel = "Royal Enfield Continental GT 650 Chrome"
	long.FuelLevel = "Reserve - running on fumes, please refill"

	broken := sampleCustomer()
	broken.Name = "Ravi\nKumar"
	broken.Address = "12 MG Road\r\nBengaluru"
	broken.FuelLevel = "Half\ttank"

	for _, w := range []Width{Narrow, Wide} {
		for _, customer := range []*models.CustomerProfile{nil, sampleCustomer(), long, broken} {
			for _, invoice := range []models.Invoice{sampleInvoice(), inv} {
				out := Format(w, invoice, customer)
				require.True(t, strings.HasSuffix(out, "\n"))
				for i, line := range strings.Split(out, "\n") {
					if line == "" {
						continue
					}
					require.Equal(t, int(w), utf8.RuneCountInString(line), "width %s line %d: %q", w, i, line)
				}
			}
		}
	}
}

// The narrow receipt shows PAID for a zero-total bill even while the stored
// status is pending. The wide receipt prints the stored status.
func TestZeroTotalStatus(t *testing.T) {
	in := billing.Input{LabourCharges: 200, Discount: 500}
	inv := sampleInvoice()
	inv.ServiceRecord = models.NewServiceRecord(inv.CustomerID, "", in, billing.Calculate(in), inv.CreatedAt)
	require.Zero(t, inv.ServiceRecord.Total)
	require.Equal(t, models.StatusPending, inv.Status)

	narrow := Format(Narrow, inv, sampleCustomer())
	assert.Contains(t, narrow, "Status:"+sp(21)+"PAID")
	assert.NotContains(t, narrow, "PENDING")

	wide := Format(Wide, inv, sampleCustomer())
	assert.Contains(t, wide, "Payment Status:"+sp(26)+"PENDING")
}

func TestConditionalChargeLines(t *testing.T) {
	inv := sampleInvoice()
	inv.ServiceRecord.SparePartsCost = 0
	inv.ServiceRecord.LabourCharges = 250
	inv.ServiceRecord.Discount = 50
	inv.ServiceRecord.GSTFlag = false
	inv.ServiceRecord.GSTAmount = 0

	out := Format(Narrow, inv, nil)
	assert.NotContains(t, out, "Spare Parts:")
	assert.NotContains(t, out, "GST")
	assert.Contains(t, out, "Labour:"+sp(19)+"Rs.250")
	assert.Contains(t, out, "Discount:"+sp(17)+"-Rs.50")
	assert.NotContains(t, out, "Name:")

	wide := Format(Wide, inv, nil)
	assert.Contains(t, wide, "Labour Charges:"+sp(26)+"Rs. 250")
	assert.Contains(t, wide, "Discount:"+sp(32)+"-Rs. 50")
	assert.NotContains(t, wide, "Spare Parts Cost:")
}

func TestControlCharactersAreBlanked(t *testing.T) {
	c := sampleCustomer()
	c.Name = "Ravi\nKumar"

	assert.Contains(t, Format(Narrow, sampleInvoice(), c), "Name:"+sp(17)+"Ravi Kumar\n")
	assert.Contains(t, Format(Wide, sampleInvoice(), c), "Customer Name:"+sp(24)+"Ravi Kumar\n")
	assert.Equal(t, "Ravi\nKumar", c.Name, "input is not modified")
	assert.Equal(t, "a b ", PadRight("a\tb", 4))
}

// GST was switched on but there was nothing to tax: the GST row still prints
// with a zero amount.
func TestGSTLineWithZeroAmount(t *testing.T) {
	in := billing.Input{GSTEnabled: true}
	inv := sampleInvoice()
	inv.ServiceRecord = models.NewServiceRecord(inv.CustomerID, "", in, billing.Calculate(in), inv.CreatedAt)
	require.Zero(t, inv.ServiceRecord.GSTAmount)
	require.True(t, inv.ServiceRecord.GSTFlag)

	assert.Contains(t, Format(Narrow, inv, nil), "GST (18%):"+sp(18)+"Rs.0\n")
	assert.Contains(t, Format(Wide, inv, nil), "GST @ 18%:"+sp(33)+"Rs. 0\n")
}

func TestWideWithoutServices(t *testing.T) {
	inv := sampleInvoice()
	inv.ServiceRecord.Services = billing.ServiceSelection{}

	assert.Contains(t, Format(Wide, inv, nil), PadRight("  No services recorded", 48))
	assert.NotContains(t, Format(Narrow, inv, nil), "No services")
}

func TestFormatIsDeterministic(t *testing.T) {
	inv, customer := sampleInvoice(), sampleCustomer()
	for _, w := range []Width{Narrow, Wide} {
		assert.Equal(t, Format(w, inv, customer), Format(w, inv, customer))
	}
}

func TestCustomShop(t *testing.T) {
	r := NewRenderer(Shop{Name: "SPEEDY", Tagline: "Motor Works", Phone: "080-1234"})
	out := r.Format(Wide, sampleInvoice(), nil)
	assert.True(t, strings.HasPrefix(out, Center("SPEEDY - MOTOR WORKS", 48)+"\n"))
	assert.Contains(t, out, Center("Thank you for choosing SPEEDY!", 48))
}

func TestParseWidth(t *testing.T) {
	w, ok := ParseWidth("80mm")
	assert.True(t, ok)
	assert.Equal(t, Wide, w)

	w, ok = ParseWidth("")
	assert.True(t, ok)
	assert.Equal(t, Narrow, w)

	_, ok = ParseWidth("112mm")
	assert.False(t, ok)
}
