package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"
	"fusiongear-backend/receipt"
	"fusiongear-backend/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type fakeCreator struct {
	params []*twilioApi.CreateMessageParams
	err    error
}

func (f *fakeCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

type recordingMessenger struct {
	to, body string
}

func (m *recordingMessenger) Send(_ context.Context, to, body string) (string, error) {
	m.to, m.body = to, body
	return "SM1", nil
}

func TestWhatsAppServiceSend(t *testing.T) {
	api := &fakeCreator{}
	svc := &WhatsAppService{api: api, from: "+14155238886", logger: zap.NewNop()}

	sid, err := svc.Send(context.Background(), "+919876543210", "hello")
	require.NoError(t, err)
	assert.Equal(t, "SM123", sid)

	require.Len(t, api.params, 1)
	assert.Equal(t, "whatsapp:+919876543210", *api.params[0].To)
	assert.Equal(t, "whatsapp:+14155238886", *api.params[0].From)
	assert.Equal(t, "hello", *api.params[0].Body)

	_, err = svc.Send(context.Background(), "9876543210", "sms")
	require.NoError(t, err)
	assert.Equal(t, "9876543210", *api.params[1].To)
	assert.Equal(t, "+14155238886", *api.params[1].From)
}

func TestWhatsAppServiceErrors(t *testing.T) {
	disabled := NewWhatsAppService("", "", "", zap.NewNop())
	assert.False(t, disabled.Enabled())
	_, err := disabled.Send(context.Background(), "+91", "x")
	assert.ErrorIs(t, err, ErrMessagingDisabled)

	boom := errors.New("boom")
	svc := &WhatsAppService{api: &fakeCreator{err: boom}, from: "+1", logger: zap.NewNop()}
	_, err = svc.Send(context.Background(), "+919876543210", "x")
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.Send(ctx, "+919876543210", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildShareMessage(t *testing.T) {
	inv := models.Invoice{
		ID:        "INV-20261019-ABC123",
		CreatedAt: time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC).UnixNano(),
		ServiceRecord: models.ServiceRecord{
			Services: billing.ServiceSelection{OilChange: true, EngineRepair: true, CustomService: "Chain lube"},
			Total:    123456,
		},
	}
	cust := &models.CustomerProfile{Name: "Ravi", BikeModel: "Pulsar 150", BikeNumber: "KA01AB1234"}

	msg := BuildShareMessage(receipt.DefaultShop, inv, cust)
	lines := strings.Split(msg, "\n")
	assert.Equal(t, "🔧 *FUSION GEAR* - Service Invoice", lines[0])
	assert.Contains(t, lines, "Invoice No: *INV-20261019-ABC123*")
	assert.Contains(t, lines, "Date: 20/10/2026")
	assert.Contains(t, lines, "Customer: Ravi")
	assert.Contains(t, lines, "Bike: Pulsar 150 (KA01AB1234)")
	assert.Contains(t, lines, "Services: Oil Change, Engine Repair, Chain lube")
	assert.Contains(t, lines, "*Total Amount: ₹1,23,456*")
	assert.Equal(t, "📞 8073670402", lines[len(lines)-1])

	bare := BuildShareMessage(receipt.DefaultShop, models.Invoice{ID: "INV-1"}, nil)
	assert.Contains(t, bare, "Customer: N/A\n")
	assert.Contains(t, bare, "Bike:  ()\n")
	assert.Contains(t, bare, "Services: N/A\n")
	assert.Contains(t, bare, "*Total Amount: ₹0*")
}

func TestShareURL(t *testing.T) {
	u := ShareURL("+91 98765-43210", "Total: ₹500 & more")
	assert.True(t, strings.HasPrefix(u, "https://wa.me/919876543210?text="))
	assert.NotContains(t, u, " ")
	assert.NotContains(t, u[len("https://wa.me/919876543210?text="):], "&")
}

func invoiceAt(t time.Time, total int64, status string, sel billing.ServiceSelection) models.Invoice {
	return models.Invoice{
		ID:        uuid.NewString(),
		Status:    status,
		CreatedAt: t.UnixNano(),
		ServiceRecord: models.ServiceRecord{
			Services: sel,
			Total:    total,
		},
	}
}

func TestSummarizeSales(t *testing.T) {
	// 10:00 IST on 19 Oct.
	now := time.Date(2026, 10, 19, 4, 30, 0, 0, time.UTC)
	oil := billing.ServiceSelection{OilChange: true}
	both := billing.ServiceSelection{OilChange: true, GeneralService: true}

	today := invoiceAt(now.Add(-time.Hour), 800, models.StatusPaid, both)
	// 23:00 IST on 18 Oct: same month, previous day.
	yesterday := invoiceAt(time.Date(2026, 10, 18, 17, 30, 0, 0, time.UTC), 300, models.StatusPending, oil)
	// 00:10 IST on 19 Oct counts as today even though it is the 18th in UTC.
	earlyToday := invoiceAt(time.Date(2026, 10, 18, 18, 40, 0, 0, time.UTC), 500, models.StatusPending, oil)

	s := SummarizeSales(
		[]models.Invoice{today, yesterday, earlyToday},
		[]models.Invoice{yesterday, earlyToday},
		now,
	)
	assert.Equal(t, int64(1300), s.DailyTotal)
	assert.Equal(t, 2, s.DailyInvoices)
	assert.Equal(t, int64(1600), s.MonthlyTotal)
	assert.Equal(t, 2, s.PendingInvoices)
	assert.Equal(t, int64(800), s.PendingAmount)
	assert.Equal(t, []ServiceCount{
		{Name: billing.NameOilChange, Count: 3},
		{Name: billing.NameGeneralService, Count: 1},
	}, s.ServiceFrequency)
}

func TestSummarizeSalesIgnoresPreviousMonth(t *testing.T) {
	now := time.Date(2026, 11, 1, 0, 0, 0, 0, billing.DisplayZone)
	old := invoiceAt(now.Add(-time.Minute), 999, models.StatusPaid, billing.ServiceSelection{})

	s := SummarizeSales([]models.Invoice{old}, nil, now)
	assert.Zero(t, s.MonthlyTotal)
	assert.Zero(t, s.DailyTotal)
	assert.NotNil(t, s.ServiceFrequency)
	assert.Equal(t, now.UnixNano(), MonthStart(now))
}

func TestSalesReporterSendDailyReport(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC) // 21:00 IST
	st := store.NewMemoryStore().WithClock(func() time.Time { return now.Add(-2 * time.Hour) })

	in := billing.Input{Services: billing.ServiceSelection{GeneralService: true}}
	_, err := st.CreateInvoice(ctx, models.NewServiceRecord(uuid.New(), "", in, billing.Calculate(in), 0))
	require.NoError(t, err)

	m := &recordingMessenger{}
	r := NewSalesReporter(st, m, receipt.DefaultShop, "+919900000000", zap.NewNop())
	r.now = func() time.Time { return now }

	require.NoError(t, r.SendDailyReport(ctx))
	assert.Equal(t, "+919900000000", m.to)
	assert.Contains(t, m.body, "*FUSION GEAR* - Daily Sales")
	assert.Contains(t, m.body, "19 Oct 2026")
	assert.Contains(t, m.body, "Today: ₹500 (1 invoices)")
	assert.Contains(t, m.body, "Pending: 1 (₹500)")
	assert.Contains(t, m.body, "1. General Service x1")
}

func TestSalesReporterStart(t *testing.T) {
	r := NewSalesReporter(store.NewMemoryStore(), &recordingMessenger{}, receipt.DefaultShop, "+919900000000", zap.NewNop())
	assert.Error(t, r.Start("not a schedule"))

	require.NoError(t, r.Start("0 21 * * *"))
	r.Stop()

	noOwner := NewSalesReporter(store.NewMemoryStore(), &recordingMessenger{}, receipt.DefaultShop, "", zap.NewNop())
	assert.NoError(t, noOwner.Start("not a schedule"))
}
