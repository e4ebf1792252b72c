package models

// Depletion outcome of a batch.
const (
	DepletionConsumed    = "使い切った"
	DepletionCarriedOver = "次の日に残した"
)

// InventoryReport records the disposition of a ticket's fish and conceptually
// closes the ticket. Kg carries the leftover weight when the batch was carried
// over, 0 when it was used up.
type InventoryReport struct {
	TicketID       string  `json:"ticketId"`
	PurchaseDate   string  `json:"purchaseDate"`
	Date           string  `json:"date"` // processing date, yyyy-mm-dd
	Person         string  `json:"person"`
	Factory        string  `json:"factory"`
	Species        string  `json:"species"`
	Origin         string  `json:"origin,omitempty"`
	State          string  `json:"state,omitempty"` // single choice from the processing-state list
	Kg             float64 `json:"kg"`
	Depletion      string  `json:"depletion"`
	LeftoverKg     float64 `json:"leftoverKg"`
	VisualParasite string  `json:"visual_parasite"`
	VisualForeign  string  `json:"visual_foreign"`
}

// RequiredValues returns the fields that must be non-blank before a report
// may be submitted, keyed by field name.
func (r *InventoryReport) RequiredValues() map[string]string {
	return map[string]string{
		"ticketId":     r.TicketID,
		"purchaseDate": r.PurchaseDate,
		"date":         r.Date,
		"person":       r.Person,
		"factory":      r.Factory,
		"species":      r.Species,
	}
}

// Photo is one base64-encoded image attached to a report.
type Photo struct {
	FileName   string `json:"fileName"`
	ContentB64 string `json:"contentB64"`
	MimeType   string `json:"mimeType,omitempty"`
}

// InventorySubmission is the request body for an inventory report: the report
// itself plus the anomaly photos per inspection category. RecordDelivered is
// set on queued submissions whose report row already reached the sheet, so a
// replay only retries the photos.
type InventorySubmission struct {
	Report          InventoryReport `json:"report"`
	ParasitePhotos  []Photo         `json:"parasitePhotos,omitempty"`
	ForeignPhotos   []Photo         `json:"foreignPhotos,omitempty"`
	RecordDelivered bool            `json:"recordDelivered,omitempty"`
}
