package domain

import (
	"fmt"
	"time"
)

// Settings is the account-level profile. It has no sections; edits always
// cover the whole record.
type Settings struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	Timezone           string    `json:"timezone"`
	EmailNotifications bool      `json:"email_notifications"`
	WeeklyDigest       bool      `json:"weekly_digest"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s Settings) RecordID() string { return s.ID }

func (Settings) RecordResource() string { return "settings" }

type SettingsSection string

func SettingsSections() []SettingsSection { return nil }

const SettingsFullNameMaxLen = 255

type SettingsBuffer struct {
	FullName           string
	Timezone           string
	EmailNotifications bool
	WeeklyDigest       bool
}

func NewSettingsBuffer(s Settings, _ SettingsSection) *SettingsBuffer {
	return &SettingsBuffer{
		FullName:           s.FullName,
		Timezone:           s.Timezone,
		EmailNotifications: s.EmailNotifications,
		WeeklyDigest:       s.WeeklyDigest,
	}
}

func (b *SettingsBuffer) Validate(_ SettingsSection) error {
	var fields []FieldError
	fields = requireNonEmpty(fields, "full_name", b.FullName)
	fields = requireMaxLen(fields, "full_name", b.FullName, SettingsFullNameMaxLen)
	if _, err := time.LoadLocation(b.Timezone); err != nil || b.Timezone == "" {
		fields = append(fields, FieldError{
			Field:   "timezone",
			Message: fmt.Sprintf("unknown timezone %q", b.Timezone),
		})
	}
	return validationError(fields)
}

func (b *SettingsBuffer) Payload(_ SettingsSection) map[string]any {
	return map[string]any{
		"full_name":           b.FullName,
		"timezone":            b.Timezone,
		"email_notifications": b.EmailNotifications,
		"weekly_digest":       b.WeeklyDigest,
	}
}
