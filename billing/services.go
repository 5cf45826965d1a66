package billing

// ServiceSelection is the set of services ticked on a bill.
type ServiceSelection struct {
	OilChange      bool   `json:"oilChange"`
	GeneralService bool   `json:"generalService"`
	EngineRepair   bool   `json:"engineRepair"`
	SpareParts     bool   `json:"spareParts"`
	CustomService  string `json:"customService"`
}

// Display names of the fixed services, in print order.
const (
	NameOilChange      = "Oil Change"
	NameGeneralService = "General Service"
	NameEngineRepair   = "Engine Repair"
	NameSpareParts     = "Spare Parts"
)

// ServiceNames returns the display names of the selected fixed services.
// The order is part of every printed layout and must not change.
func ServiceNames(sel ServiceSelection) []string {
	names := make([]string, 0, 4)
	if sel.OilChange {
		names = append(names, NameOilChange)
	}
	if sel.GeneralService {
		names = append(names, NameGeneralService)
	}
	if sel.EngineRepair {
		names = append(names, NameEngineRepair)
	}
	if sel.SpareParts {
		names = append(names, NameSpareParts)
	}
	return names
}

// DisplayServices is ServiceNames followed by the custom service label, if any.
func DisplayServices(sel ServiceSelection) []string {
	names := ServiceNames(sel)
	if sel.CustomService != "" {
		names = append(names, sel.CustomService)
	}
	return names
}
