package domain

import "time"

type PitchState string

const (
	PitchDraft    PitchState = "draft"
	PitchSent     PitchState = "sent"
	PitchAccepted PitchState = "accepted"
	PitchRejected PitchState = "rejected"
)

// Pitch is one outreach email drafted for a placement.
type Pitch struct {
	ID         string     `json:"id"`
	CampaignID string     `json:"campaign_id"`
	Podcast    string     `json:"podcast"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	State      PitchState `json:"state"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (p Pitch) RecordID() string { return p.ID }

func (Pitch) RecordResource() string { return "pitches" }

type PitchSection string

const (
	PitchContent PitchSection = "content"
)

func PitchSections() []PitchSection {
	return []PitchSection{PitchContent}
}

const (
	PitchSubjectMaxLen = 120
	PitchBodyMaxLen    = 5000
)

type PitchBuffer struct {
	Subject string
	Body    string
}

func NewPitchBuffer(p Pitch, section PitchSection) *PitchBuffer {
	b := &PitchBuffer{}
	whole := section == ""
	if whole || section == PitchContent {
		b.Subject = p.Subject
		b.Body = p.Body
	}
	return b
}

func (b *PitchBuffer) Validate(section PitchSection) error {
	var fields []FieldError
	whole := section == ""
	if whole || section == PitchContent {
		fields = requireNonEmpty(fields, "subject", b.Subject)
		fields = requireMaxLen(fields, "subject", b.Subject, PitchSubjectMaxLen)
		fields = requireNonEmpty(fields, "body", b.Body)
		fields = requireMaxLen(fields, "body", b.Body, PitchBodyMaxLen)
	}
	return validationError(fields)
}

func (b *PitchBuffer) Payload(section PitchSection) map[string]any {
	fields := map[string]any{}
	whole := section == ""
	if whole || section == PitchContent {
		fields["subject"] = b.Subject
		fields["body"] = b.Body
	}
	return fields
}
