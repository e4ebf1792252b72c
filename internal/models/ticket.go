package models

// Yes/no values used by the visual-inspection and ozone flags. The upstream
// sheet stores the Japanese literals, so they are the canonical values.
const (
	FlagPresent = "あり"
	FlagAbsent  = "なし"
)

// Derived ticket status for the month listing. A ticket is reported iff a
// report referencing its ticketId exists remotely; "closed" is a local,
// explicit override and is terminal.
const (
	StatusIntakeOnly = "intake-only"
	StatusReported   = "reported"
	StatusClosed     = "closed"
)

// IntakeTicket is one purchase event. Immutable once recorded.
type IntakeTicket struct {
	TicketID        string `json:"ticketId"`
	Factory         string `json:"factory"`
	Date            string `json:"date"`         // report date, yyyy-mm-dd
	PurchaseDate    string `json:"purchaseDate"` // yyyy-mm-dd
	Person          string `json:"person"`
	Species         string `json:"species"`
	Supplier        string `json:"supplier"`
	Ozone           string `json:"ozone"`        // あり / なし
	OzonePerson     string `json:"ozone_person"` // なし when ozone is なし
	VisualToxic     string `json:"visual_toxic"`
	VisualToxicNote string `json:"visual_toxic_note,omitempty"`
	Admin           string `json:"admin,omitempty"`
}

// RequiredValues returns the fields that must be non-blank before an intake
// ticket may be submitted, keyed by field name.
func (t *IntakeTicket) RequiredValues() map[string]string {
	return map[string]string{
		"factory":      t.Factory,
		"purchaseDate": t.PurchaseDate,
		"date":         t.Date,
		"person":       t.Person,
		"species":      t.Species,
		"supplier":     t.Supplier,
	}
}
