package models

// Draft holds user-entered values before a record is built from them.
type Draft struct {
	BatchNumber   string        `json:"batchNumber"`
	ProductName   string        `json:"productName"`
	Category      Category      `json:"category"`
	Technician    string        `json:"technician"`
	Status        Status        `json:"status"`
	Notes         string        `json:"notes"`
	Parameters    []QCParameter `json:"parameters"`
	ReportPurpose ReportPurpose `json:"reportPurpose"`
	CustomerName  string        `json:"customerName"`
	TruckNumber   string        `json:"truckNumber"`
	DriverName    string        `json:"driverName"`
}

// Draft defaults used when a field is left empty.
const (
	DefaultCategory = CategoryFinalProduct
	DefaultStatus   = StatusPending
	DefaultPurpose  = PurposeStandard
)

// NewDraft returns a draft pre-filled with the entry form defaults.
func NewDraft() Draft {
	return Draft{
		Category:      DefaultCategory,
		Status:        DefaultStatus,
		ReportPurpose: DefaultPurpose,
		Parameters: []QCParameter{
			{Name: "Density @ 15°C", Value: Numeric(0), Unit: "g/cm3", Method: "ASTM D4052", Min: Bound(0), Max: Bound(2)},
		},
	}
}
