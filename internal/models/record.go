package models

// RecordRow is one line of the month listing: an intake ticket with its
// derived status and, when present, the matching inventory report's outcome.
type RecordRow struct {
	TicketID     string  `json:"ticketId"`
	PurchaseDate string  `json:"purchaseDate"`
	Species      string  `json:"species"`
	Person       string  `json:"person"`
	Factory      string  `json:"factory"`
	Supplier     string  `json:"supplier,omitempty"`
	Status       string  `json:"status"` // intake-only | reported | closed
	ReportDate   string  `json:"reportDate,omitempty"`
	ReportKg     float64 `json:"reportKg,omitempty"`
	// CanReport is true only for intake-only tickets; the listing UI hides
	// the "open inventory" action otherwise.
	CanReport bool `json:"canReport"`
}

// MonthRecords is the upstream payload for action=list: all intake tickets
// and inventory reports whose date falls in the requested month.
type MonthRecords struct {
	Tickets []IntakeTicket    `json:"tickets"`
	Reports []InventoryReport `json:"reports"`
}
