package handoff

// Event types exchanged with the hosting page.
const (
	EventOpenPricingForm       = "OPEN_PRICING_FORM"
	EventQuoteSubmittedSuccess = "QUOTE_SUBMITTED_SUCCESS"
)

// Message attribute names carried alongside published events.
const (
	AttrEventType = "event_type"
	AttrOrigin    = "origin"
	AttrMessageID = "message_id"
	AttrSession   = "session"
)

// Payload carries the contact fields the hosting page needs to prefill its
// own pricing form.
type Payload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Message is the named event dispatched to the hosting page.
type Message struct {
	Type string  `json:"type"`
	Data Payload `json:"data"`
}

// NewOpenPricingForm wraps a payload in the event envelope the hosting page
// listens for.
func NewOpenPricingForm(p Payload) Message {
	return Message{Type: EventOpenPricingForm, Data: p}
}
