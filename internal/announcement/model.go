package announcement

// Request is one announcement as supplied by the caller. It is treated as
// immutable once validated.
type Request struct {
	Source       string `json:"source"`
	EventType    string `json:"event_type"`
	SubjectLabel string `json:"subject_label"` // "NAME (NUMBER)"
	Outcome      string `json:"outcome"`
	Location     string `json:"location"`
	Tier         string `json:"tier"`
	Date         string `json:"date"` // DD/MM/YYYY
}

// Subject is the member named in an announcement, derived from SubjectLabel.
type Subject struct {
	DisplayName string `json:"display_name"`
	ID          int    `json:"id"`
	Tier        string `json:"tier"`
	Location    string `json:"location"`
}

// Fields returns the request's values keyed by their JSON names, in
// top-to-bottom drawing order.
func (r Request) Fields() []Field {
	return []Field{
		{Name: "source", Value: r.Source},
		{Name: "event_type", Value: r.EventType},
		{Name: "subject_label", Value: r.SubjectLabel},
		{Name: "outcome", Value: r.Outcome},
		{Name: "location", Value: r.Location},
		{Name: "tier", Value: r.Tier},
		{Name: "date", Value: r.Date},
	}
}

// Field is a named request value.
type Field struct {
	Name  string
	Value string
}
