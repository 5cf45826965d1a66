package services

import (
	"sort"
	"time"

	"fusiongear-backend/billing"
	"fusiongear-backend/models"
	"fusiongear-backend/utils"
)

// ServiceCount is how many invoices included a service.
type ServiceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SalesSummary backs the dashboard and the daily owner report.
type SalesSummary struct {
	DailyTotal       int64          `json:"dailyTotal"`
	MonthlyTotal     int64          `json:"monthlyTotal"`
	DailyInvoices    int            `json:"dailyInvoices"`
	PendingInvoices  int            `json:"pendingInvoices"`
	PendingAmount    int64          `json:"pendingAmount"`
	ServiceFrequency []ServiceCount `json:"serviceFrequency"`
}

// MonthStart is the first instant of now's month in shop time, in Unix
// nanoseconds. Invoices older than this never count towards a summary.
func MonthStart(now time.Time) int64 {
	return utils.StartOfMonth(now, billing.DisplayZone).UnixNano()
}

// SummarizeSales aggregates invoices as of now. Day and month boundaries are
// taken in shop time; comparisons use the raw nanosecond timestamps.
func SummarizeSales(invoices []models.Invoice, pending []models.Invoice, now time.Time) SalesSummary {
	dayStart := utils.StartOfDay(now, billing.DisplayZone).UnixNano()
	monthStart := utils.StartOfMonth(now, billing.DisplayZone).UnixNano()

	var s SalesSummary
	counts := make(map[string]int)
	for _, inv := range invoices {
		if inv.CreatedAt >= monthStart {
			s.MonthlyTotal += inv.ServiceRecord.Total
		}
		if inv.CreatedAt >= dayStart {
			s.DailyTotal += inv.ServiceRecord.Total
			s.DailyInvoices++
		}
		for _, name := range billing.DisplayServices(inv.ServiceRecord.Services) {
			counts[name]++
		}
	}
	for _, inv := range pending {
		s.PendingInvoices++
		s.PendingAmount += inv.ServiceRecord.Total
	}

	s.ServiceFrequency = make([]ServiceCount, 0, len(counts))
	for name, n := range counts {
		s.ServiceFrequency = append(s.ServiceFrequency, ServiceCount{Name: name, Count: n})
	}
	sort.Slice(s.ServiceFrequency, func(i, j int) bool {
		a, b := s.ServiceFrequency[i], s.ServiceFrequency[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	return s
}
