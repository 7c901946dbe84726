package services

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/domain"
	"github.com/podlift/podlift/internal/session"
)

type CampaignService struct {
	*Entity[domain.Campaign, *domain.CampaignBuffer, domain.CampaignSection]
}

func NewCampaignService(deps Deps) *CampaignService {
	return &CampaignService{newEntity(deps, "campaign", domain.Campaign{}.RecordResource(),
		domain.CampaignSections(), domain.NewCampaignBuffer)}
}

type MediaKitService struct {
	*Entity[domain.MediaKit, *domain.MediaKitBuffer, domain.MediaKitSection]
}

func NewMediaKitService(deps Deps) *MediaKitService {
	return &MediaKitService{newEntity(deps, "media kit", domain.MediaKit{}.RecordResource(),
		domain.MediaKitSections(), domain.NewMediaKitBuffer)}
}

type PlacementService struct {
	*Entity[domain.Placement, *domain.PlacementBuffer, domain.PlacementSection]
}

func NewPlacementService(deps Deps) *PlacementService {
	return &PlacementService{newEntity(deps, "placement", domain.Placement{}.RecordResource(),
		domain.PlacementSections(), domain.NewPlacementBuffer)}
}

// Advance moves a placement to the next pipeline stage through a regular
// status edit, so the same validation and cache invalidation apply.
func (s *PlacementService) Advance(ctx context.Context, id string) error {
	sess, err := s.Edit(id)
	if err != nil {
		return err
	}

	rec, err := sess.Record(ctx)
	if err != nil {
		return err
	}
	next, ok := rec.Status.Next()
	if !ok {
		return fmt.Errorf("placement is already %s", rec.Status)
	}

	if err := sess.EnterEdit(ctx, domain.PlacementStatusSection); err != nil {
		return err
	}
	if err := sess.Mutate(func(b *domain.PlacementBuffer) { b.Status = next }); err != nil {
		return err
	}
	return sess.Submit(ctx)
}

type PitchService struct {
	*Entity[domain.Pitch, *domain.PitchBuffer, domain.PitchSection]
}

func NewPitchService(deps Deps) *PitchService {
	return &PitchService{newEntity(deps, "pitch", domain.Pitch{}.RecordResource(),
		domain.PitchSections(), domain.NewPitchBuffer)}
}

type QuestionnaireService struct {
	*Entity[domain.Questionnaire, *domain.QuestionnaireBuffer, domain.QuestionnaireSection]
}

func NewQuestionnaireService(deps Deps) *QuestionnaireService {
	return &QuestionnaireService{newEntity(deps, "questionnaire", domain.Questionnaire{}.RecordResource(),
		domain.QuestionnaireSections(), domain.NewQuestionnaireBuffer)}
}

// SettingsID is the fixed resource id of the account settings record.
const SettingsID = "me"

type SettingsService struct {
	*Entity[domain.Settings, *domain.SettingsBuffer, domain.SettingsSection]
}

func NewSettingsService(deps Deps) *SettingsService {
	return &SettingsService{newEntity(deps, "settings", domain.Settings{}.RecordResource(),
		domain.SettingsSections(), domain.NewSettingsBuffer)}
}

// Get returns the account settings record.
func (s *SettingsService) Get(ctx context.Context) (domain.Settings, error) {
	return s.Entity.Get(ctx, SettingsID)
}

// Edit opens a whole-record edit session for the account settings.
func (s *SettingsService) Edit() (*session.Session[domain.Settings, *domain.SettingsBuffer, domain.SettingsSection], error) {
	return s.Entity.Edit(SettingsID)
}
