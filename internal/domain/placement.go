package domain

import (
	"fmt"
	"time"
)

// PlacementStatus is one stage of the booking pipeline, in order.
type PlacementStatus string

const (
	PlacementProspect  PlacementStatus = "prospect"
	PlacementPitched   PlacementStatus = "pitched"
	PlacementResponded PlacementStatus = "responded"
	PlacementBooked    PlacementStatus = "booked"
	PlacementRecorded  PlacementStatus = "recorded"
	PlacementLive      PlacementStatus = "live"
)

// PlacementPipeline lists the stages in pipeline order.
func PlacementPipeline() []PlacementStatus {
	return []PlacementStatus{
		PlacementProspect,
		PlacementPitched,
		PlacementResponded,
		PlacementBooked,
		PlacementRecorded,
		PlacementLive,
	}
}

func (s PlacementStatus) Valid() bool {
	for _, v := range PlacementPipeline() {
		if s == v {
			return true
		}
	}
	return false
}

// Next returns the following pipeline stage, or false when s is the last
// stage or unknown.
func (s PlacementStatus) Next() (PlacementStatus, bool) {
	stages := PlacementPipeline()
	for i, v := range stages {
		if s == v && i+1 < len(stages) {
			return stages[i+1], true
		}
	}
	return "", false
}

// Placement tracks one campaign's progress on one podcast.
type Placement struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Podcast    string          `json:"podcast"`
	Status     PlacementStatus `json:"status"`
	Notes      string          `json:"notes"`
	AirDate    *time.Time      `json:"air_date,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (p Placement) RecordID() string { return p.ID }

func (Placement) RecordResource() string { return "placements" }

type PlacementSection string

const (
	PlacementStatusSection PlacementSection = "status"
	PlacementNotesSection  PlacementSection = "notes"
)

func PlacementSections() []PlacementSection {
	return []PlacementSection{PlacementStatusSection, PlacementNotesSection}
}

const PlacementNotesMaxLen = 2000

type PlacementBuffer struct {
	Status PlacementStatus
	Notes  string
}

func NewPlacementBuffer(p Placement, section PlacementSection) *PlacementBuffer {
	b := &PlacementBuffer{}
	whole := section == ""
	if whole || section == PlacementStatusSection {
		b.Status = p.Status
	}
	if whole || section == PlacementNotesSection {
		b.Notes = p.Notes
	}
	return b
}

func (b *PlacementBuffer) Validate(section PlacementSection) error {
	var fields []FieldError
	whole := section == ""
	if whole || section == PlacementStatusSection {
		if !b.Status.Valid() {
			fields = append(fields, FieldError{
				Field:   "status",
				Message: fmt.Sprintf("unknown status %q", b.Status),
			})
		}
	}
	if whole || section == PlacementNotesSection {
		fields = requireMaxLen(fields, "notes", b.Notes, PlacementNotesMaxLen)
	}
	return validationError(fields)
}

func (b *PlacementBuffer) Payload(section PlacementSection) map[string]any {
	fields := map[string]any{}
	whole := section == ""
	if whole || section == PlacementStatusSection {
		fields["status"] = string(b.Status)
	}
	if whole || section == PlacementNotesSection {
		fields["notes"] = b.Notes
	}
	return fields
}
