package domain

import (
	"strings"
	"time"

	"github.com/podlift/podlift/internal/editor"
)

// Achievement is one credential line in a media kit.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MediaKit is the one-sheet sent to podcast hosts for a campaign.
type MediaKit struct {
	ID            string        `json:"id"`
	CampaignID    string        `json:"campaign_id"`
	Title         string        `json:"title"`
	Tagline       string        `json:"tagline"`
	Bio           string        `json:"bio"`
	Achievements  []Achievement `json:"achievements"`
	TalkingPoints []string      `json:"talking_points"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (m MediaKit) RecordID() string { return m.ID }

func (MediaKit) RecordResource() string { return "media-kits" }

type MediaKitSection string

const (
	MediaKitHeader        MediaKitSection = "header"
	MediaKitBio           MediaKitSection = "bio"
	MediaKitAchievements  MediaKitSection = "achievements"
	MediaKitTalkingPoints MediaKitSection = "talking_points"
)

func MediaKitSections() []MediaKitSection {
	return []MediaKitSection{MediaKitHeader, MediaKitBio, MediaKitAchievements, MediaKitTalkingPoints}
}

const (
	MediaKitTitleMaxLen       = 120
	MediaKitTaglineMaxLen     = 160
	MediaKitBioMaxLen         = 4000
	MediaKitAchievementsMax   = 10
	MediaKitAchievementMaxLen = 140
	MediaKitTalkingPointsMax  = 12
	MediaKitTalkingPointLen   = 140
)

type MediaKitBuffer struct {
	Title   string
	Tagline string
	Bio     string

	Achievements  *editor.List[Achievement]
	TalkingPoints *editor.List[string]
}

func achievementRules() editor.Rules[Achievement] {
	return editor.Rules[Achievement]{
		Label: "achievements",
		Max:   MediaKitAchievementsMax,
		Normalize: func(a Achievement) Achievement {
			a.Title = strings.TrimSpace(a.Title)
			a.Description = strings.TrimSpace(a.Description)
			return a
		},
		// Achievements are unique by title, case-insensitively.
		Key: func(a Achievement) string { return strings.ToLower(a.Title) },
		Validate: func(a Achievement) error {
			if a.Title == "" {
				return &editor.ConstraintError{Reason: editor.Empty, Message: "achievement title cannot be empty"}
			}
			if len([]rune(a.Title)) > MediaKitAchievementMaxLen {
				return &editor.ConstraintError{Reason: editor.TooLong, Message: "achievement title too long"}
			}
			return nil
		},
	}
}

// talking points keep their case; only surrounding whitespace is dropped.
func talkingPointRules() editor.Rules[string] {
	return editor.Rules[string]{
		Label:     "talking points",
		Max:       MediaKitTalkingPointsMax,
		Normalize: strings.TrimSpace,
		Key:       strings.ToLower,
		Validate: func(s string) error {
			if s == "" {
				return &editor.ConstraintError{Reason: editor.Empty, Message: "talking point cannot be empty"}
			}
			if len([]rune(s)) > MediaKitTalkingPointLen {
				return &editor.ConstraintError{Reason: editor.TooLong, Message: "talking point too long"}
			}
			return nil
		},
	}
}

func NewMediaKitBuffer(m MediaKit, section MediaKitSection) *MediaKitBuffer {
	b := &MediaKitBuffer{}
	whole := section == ""
	if whole || section == MediaKitHeader {
		b.Title = m.Title
		b.Tagline = m.Tagline
	}
	if whole || section == MediaKitBio {
		b.Bio = m.Bio
	}
	if whole || section == MediaKitAchievements {
		b.Achievements = editor.NewList(achievementRules(), m.Achievements)
	}
	if whole || section == MediaKitTalkingPoints {
		b.TalkingPoints = editor.NewList(talkingPointRules(), m.TalkingPoints)
	}
	return b
}

func (b *MediaKitBuffer) Validate(section MediaKitSection) error {
	var fields []FieldError
	whole := section == ""
	if whole || section == MediaKitHeader {
		fields = requireNonEmpty(fields, "title", b.Title)
		fields = requireMaxLen(fields, "title", b.Title, MediaKitTitleMaxLen)
		fields = requireMaxLen(fields, "tagline", b.Tagline, MediaKitTaglineMaxLen)
	}
	if whole || section == MediaKitBio {
		fields = requireMaxLen(fields, "bio", b.Bio, MediaKitBioMaxLen)
	}
	return validationError(fields)
}

func (b *MediaKitBuffer) Payload(section MediaKitSection) map[string]any {
	fields := map[string]any{}
	whole := section == ""
	if whole || section == MediaKitHeader {
		fields["title"] = b.Title
		fields["tagline"] = b.Tagline
	}
	if whole || section == MediaKitBio {
		fields["bio"] = b.Bio
	}
	if whole || section == MediaKitAchievements {
		fields["achievements"] = b.Achievements.Items()
	}
	if whole || section == MediaKitTalkingPoints {
		fields["talking_points"] = b.TalkingPoints.Items()
	}
	return fields
}
