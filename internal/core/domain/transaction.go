package domain

// Transaction is one row of the read-only purchase datasets. Field names
// follow the bundled JSON files.
type Transaction struct {
	StudentID       string  `json:"StudentID"`
	Category        string  `json:"Category"`
	Item            string  `json:"Item"`
	Quantity        int     `json:"Quantity"`
	PricePerUnit    float64 `json:"PricePerUnit"`
	TotalAmount     float64 `json:"TotalAmount"`
	TransactionDate string  `json:"TransactionDate"`
}

type Dataset string

const (
	DatasetStudent Dataset = "student"
	DatasetVendor  Dataset = "vendor"
)

func (d Dataset) Valid() bool {
	return d == DatasetStudent || d == DatasetVendor
}
