package billing

// PriceTable holds the fixed price, in whole rupees, of each service kind.
type PriceTable struct {
	OilChange      int64
	GeneralService int64
	EngineRepair   int64
	SpareParts     int64 // flat fee for the spare parts flag; parts themselves go through SparePartsCost
}

// DefaultPrices is the price list every invoice of this build is computed with.
var DefaultPrices = PriceTable{
	OilChange:      300,
	GeneralService: 500,
	EngineRepair:   1200,
	SpareParts:     0,
}

// Subtotal sums the fixed prices of the selected services.
func (p PriceTable) Subtotal(sel ServiceSelection) int64 {
	var subtotal int64
	if sel.OilChange {
		subtotal += p.OilChange
	}
	if sel.GeneralService {
		subtotal += p.GeneralService
	}
	if sel.EngineRepair {
		subtotal += p.EngineRepair
	}
	if sel.SpareParts {
		subtotal += p.SpareParts
	}
	return subtotal
}
