package domain

import (
	"fmt"
	"time"

	"github.com/podlift/podlift/internal/editor"
)

// Campaign is one client's outreach campaign.
type Campaign struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Goal      string    `json:"goal"`
	Bio       string    `json:"bio"`
	Keywords  []string  `json:"keywords"`
	Angles    []string  `json:"angles"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Campaign) RecordID() string { return c.ID }

func (Campaign) RecordResource() string { return "campaigns" }

// CampaignSection names one independently editable part of a campaign. The
// empty section means the whole record.
type CampaignSection string

const (
	CampaignSummary  CampaignSection = "summary"
	CampaignKeywords CampaignSection = "keywords"
	CampaignAngles   CampaignSection = "angles"
)

func CampaignSections() []CampaignSection {
	return []CampaignSection{CampaignSummary, CampaignKeywords, CampaignAngles}
}

const (
	CampaignNameMaxLen    = 120
	CampaignGoalMaxLen    = 500
	CampaignBioMaxLen     = 2000
	CampaignKeywordsMin   = 3
	CampaignKeywordsMax   = 20
	CampaignKeywordMaxLen = 30
	CampaignAnglesMax     = 10
	CampaignAngleMaxLen   = 200
)

// CampaignBuffer is the working copy of one campaign section. Only the fields
// of the section the buffer was seeded for are populated; the others stay at
// their zero value and never enter the payload.
type CampaignBuffer struct {
	Name string
	Goal string
	Bio  string

	Keywords *editor.List[string]
	Angles   *editor.List[string]
}

func NewCampaignBuffer(c Campaign, section CampaignSection) *CampaignBuffer {
	b := &CampaignBuffer{}
	whole := section == ""
	if whole || section == CampaignSummary {
		b.Name = c.Name
		b.Goal = c.Goal
		b.Bio = c.Bio
	}
	if whole || section == CampaignKeywords {
		b.Keywords = editor.NewStringList(c.Keywords, "keywords", CampaignKeywordsMin, CampaignKeywordsMax, CampaignKeywordMaxLen)
	}
	if whole || section == CampaignAngles {
		b.Angles = editor.NewStringList(c.Angles, "angles", 0, CampaignAnglesMax, CampaignAngleMaxLen)
	}
	return b
}

func (b *CampaignBuffer) Validate(section CampaignSection) error {
	var fields []FieldError
	whole := section == ""
	if whole || section == CampaignSummary {
		fields = requireNonEmpty(fields, "name", b.Name)
		fields = requireMaxLen(fields, "name", b.Name, CampaignNameMaxLen)
		fields = requireMaxLen(fields, "goal", b.Goal, CampaignGoalMaxLen)
		fields = requireMaxLen(fields, "bio", b.Bio, CampaignBioMaxLen)
	}
	if whole || section == CampaignKeywords {
		if b.Keywords.Len() < CampaignKeywordsMin {
			fields = append(fields, FieldError{
				Field:   "keywords",
				Message: fmt.Sprintf("at least %d required", CampaignKeywordsMin),
			})
		}
	}
	return validationError(fields)
}

func (b *CampaignBuffer) Payload(section CampaignSection) map[string]any {
	fields := map[string]any{}
	whole := section == ""
	if whole || section == CampaignSummary {
		fields["name"] = b.Name
		fields["goal"] = b.Goal
		fields["bio"] = b.Bio
	}
	if whole || section == CampaignKeywords {
		fields["keywords"] = b.Keywords.Items()
	}
	if whole || section == CampaignAngles {
		fields["angles"] = b.Angles.Items()
	}
	return fields
}
