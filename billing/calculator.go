// Package billing prices garage bills and formats amounts and timestamps
// for display.
package billing

import "github.com/shopspring/decimal"

// gstRate is the Goods and Services Tax applied when a bill opts in.
var gstRate = decimal.RequireFromString("0.18")

// Input is a bill as entered by the operator.
type Input struct {
	Services       ServiceSelection `json:"services"`
	LabourCharges  int64            `json:"labourCharges"`
	SparePartsCost int64            `json:"sparePartsCost"`
	Discount       int64            `json:"discount"`
	GSTEnabled     bool             `json:"gstEnabled"`
}

// Result is the priced breakdown of an Input.
type Result struct {
	Subtotal       int64 `json:"subtotal"`
	SparePartsCost int64 `json:"sparePartsCost"`
	LabourCharges  int64 `json:"labourCharges"`
	Discount       int64 `json:"discount"`
	GSTAmount      int64 `json:"gstAmount"`
	Total          int64 `json:"total"`
}

// Calculator prices bills against a fixed price table.
type Calculator struct {
	prices PriceTable
}

// NewCalculator returns a Calculator bound to prices.
func NewCalculator(prices PriceTable) *Calculator {
	return &Calculator{prices: prices}
}

// Prices returns the table the calculator was built with.
func (c *Calculator) Prices() PriceTable {
	return c.prices
}

// Calculate prices in. It never fails: manual charges are clamped to
// [0, MaxAmount] and a discount larger than the bill yields a zero total.
func (c *Calculator) Calculate(in Input) Result {
	subtotal := c.prices.Subtotal(in.Services)

	spare := clampAmount(in.SparePartsCost)
	labour := clampAmount(in.LabourCharges)
	discount := clampAmount(in.Discount)

	// GST is taken on the discounted amount before the final floor, so it
	// goes negative together with preTax.
	preTax := subtotal + spare + labour - discount
	var gst int64
	if in.GSTEnabled {
		gst = decimal.NewFromInt(preTax).Mul(gstRate).Round(0).IntPart()
	}

	return Result{
		Subtotal:       subtotal,
		SparePartsCost: spare,
		LabourCharges:  labour,
		Discount:       discount,
		GSTAmount:      gst,
		Total:          max(0, preTax+gst),
	}
}

// MaxAmount caps each manual charge. Capped sums and their GST stay far
// inside int64.
const MaxAmount int64 = 1_000_000_000_000

func clampAmount(v int64) int64 {
	return min(max(0, v), MaxAmount)
}

var defaultCalculator = NewCalculator(DefaultPrices)

// Calculate prices in against DefaultPrices.
func Calculate(in Input) Result {
	return defaultCalculator.Calculate(in)
}
