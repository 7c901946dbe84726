package domain

import (
	"strings"
	"time"

	"github.com/podlift/podlift/internal/editor"
)

// Questionnaire collects the guest's interview preparation material.
type Questionnaire struct {
	ID              string    `json:"id"`
	CampaignID      string    `json:"campaign_id"`
	About           string    `json:"about"`
	Topics          []string  `json:"topics"`
	SampleQuestions []string  `json:"sample_questions"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (q Questionnaire) RecordID() string { return q.ID }

func (Questionnaire) RecordResource() string { return "questionnaires" }

type QuestionnaireSection string

const (
	QuestionnaireAbout           QuestionnaireSection = "about"
	QuestionnaireTopics          QuestionnaireSection = "topics"
	QuestionnaireSampleQuestions QuestionnaireSection = "sample_questions"
)

func QuestionnaireSections() []QuestionnaireSection {
	return []QuestionnaireSection{QuestionnaireAbout, QuestionnaireTopics, QuestionnaireSampleQuestions}
}

const (
	QuestionnaireAboutMaxLen    = 3000
	QuestionnaireTopicsMin      = 1
	QuestionnaireTopicsMax      = 15
	QuestionnaireTopicMaxLen    = 60
	QuestionnaireQuestionsMax   = 10
	QuestionnaireQuestionMaxLen = 200
)

type QuestionnaireBuffer struct {
	About string

	Topics          *editor.List[string]
	SampleQuestions *editor.List[string]
}

func sampleQuestionRules() editor.Rules[string] {
	return editor.Rules[string]{
		Label:     "sample questions",
		Max:       QuestionnaireQuestionsMax,
		Normalize: strings.TrimSpace,
		Key:       strings.ToLower,
		Validate: func(s string) error {
			if s == "" {
				return &editor.ConstraintError{Reason: editor.Empty, Message: "sample question cannot be empty"}
			}
			if len([]rune(s)) > QuestionnaireQuestionMaxLen {
				return &editor.ConstraintError{Reason: editor.TooLong, Message: "sample question too long"}
			}
			return nil
		},
	}
}

func NewQuestionnaireBuffer(q Questionnaire, section QuestionnaireSection) *QuestionnaireBuffer {
	b := &QuestionnaireBuffer{}
	whole := section == ""
	if whole || section == QuestionnaireAbout {
		b.About = q.About
	}
	if whole || section == QuestionnaireTopics {
		b.Topics = editor.NewStringList(q.Topics, "topics", QuestionnaireTopicsMin, QuestionnaireTopicsMax, QuestionnaireTopicMaxLen)
	}
	if whole || section == QuestionnaireSampleQuestions {
		b.SampleQuestions = editor.NewList(sampleQuestionRules(), q.SampleQuestions)
	}
	return b
}

func (b *QuestionnaireBuffer) Validate(section QuestionnaireSection) error {
	var fields []FieldError
	whole := section == ""
	if whole || section == QuestionnaireAbout {
		fields = requireMaxLen(fields, "about", b.About, QuestionnaireAboutMaxLen)
	}
	if whole || section == QuestionnaireTopics {
		if b.Topics.Len() < QuestionnaireTopicsMin {
			fields = append(fields, FieldError{Field: "topics", Message: "at least 1 required"})
		}
	}
	return validationError(fields)
}

func (b *QuestionnaireBuffer) Payload(section QuestionnaireSection) map[string]any {
	fields := map[string]any{}
	whole := section == ""
	if whole || section == QuestionnaireAbout {
		fields["about"] = b.About
	}
	if whole || section == QuestionnaireTopics {
		fields["topics"] = b.Topics.Items()
	}
	if whole || section == QuestionnaireSampleQuestions {
		fields["sample_questions"] = b.SampleQuestions.Items()
	}
	return fields
}
