// services/sales_reporter.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fusiongear-backend/billing"
	"fusiongear-backend/receipt"
	"fusiongear-backend/store"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SalesReporter pushes the day's sales summary to the shop owner on a cron
// schedule evaluated in shop time.
type SalesReporter struct {
	store     store.Store
	messenger Messenger
	shop      receipt.Shop
	owner     string
	logger    *zap.Logger
	now       func() time.Time

	cron *cron.Cron
}

func NewSalesReporter(st store.Store, messenger Messenger, shop receipt.Shop, owner string, logger *zap.Logger) *SalesReporter {
	return &SalesReporter{
		store:     st,
		messenger: messenger,
		shop:      shop,
		owner:     owner,
		logger:    logger,
		now:       time.Now,
		cron:      cron.New(cron.WithLocation(billing.DisplayZone)),
	}
}

// Start registers the report on schedule (standard five-field cron syntax)
// and starts the scheduler.
func (r *SalesReporter) Start(schedule string) error {
	if r.owner == "" {
		r.logger.Info("sales report disabled: no owner number configured")
		return nil
	}
	if _, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.SendDailyReport(ctx); err != nil {
			r.logger.Error("daily sales report failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule sales report %q: %w", schedule, err)
	}
	r.cron.Start()
	r.logger.Info("sales report scheduler started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the scheduler and waits for a running report to finish.
func (r *SalesReporter) Stop() {
	<-r.cron.Stop().Done()
}

// SendDailyReport summarizes the current month's invoices and sends the
// report to the owner.
func (r *SalesReporter) SendDailyReport(ctx context.Context) error {
	now := r.now()
	invoices, err := r.store.ListInvoicesSince(ctx, MonthStart(now))
	if err != nil {
		return fmt.Errorf("list invoices: %w", err)
	}
	pending, err := r.store.ListPendingInvoices(ctx)
	if err != nil {
		return fmt.Errorf("list pending invoices: %w", err)
	}

	summary := SummarizeSales(invoices, pending, now)
	sid, err := r.messenger.Send(ctx, r.owner, BuildSalesReport(r.shop, summary, now))
	if err != nil {
		return err
	}
	r.logger.Info("daily sales report sent",
		zap.String("sid", sid),
		zap.Int64("dailyTotal", summary.DailyTotal),
		zap.Int("pending", summary.PendingInvoices),
	)
	return nil
}

// BuildSalesReport renders summary as a chat message.
func BuildSalesReport(shop receipt.Shop, summary SalesSummary, now time.Time) string {
	lines := []string{
		"📊 *" + shop.Name + "* - Daily Sales",
		billing.FormatDay(now.UnixNano()),
		"",
		fmt.Sprintf("Today: %s (%d invoices)", billing.FormatCurrency(summary.DailyTotal), summary.DailyInvoices),
		"This month: " + billing.FormatCurrency(summary.MonthlyTotal),
		fmt.Sprintf("Pending: %d (%s)", summary.PendingInvoices, billing.FormatCurrency(summary.PendingAmount)),
	}
	if len(summary.ServiceFrequency) > 0 {
		lines = append(lines, "", "Top services:")
		for i, sc := range summary.ServiceFrequency {
			if i == 3 {
				break
			}
			lines = append(lines, fmt.Sprintf("%d. %s x%d", i+1, sc.Name, sc.Count))
		}
	}
	return strings.Join(lines, "\n")
}
