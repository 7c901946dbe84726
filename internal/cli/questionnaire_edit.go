package cli

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/domain"
)

func (a *App) editQuestionnaire(ctx context.Context, id string, section domain.QuestionnaireSection) {
	sess, err := a.questionnaires.Edit(id)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", err.Error())
		return
	}

	rctx, cancel := a.requestCtx(ctx)
	err = sess.EnterEdit(rctx, section)
	cancel()
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", err.Error())
		return
	}

	buf := func() *domain.QuestionnaireBuffer {
		b, _ := sess.Buffer()
		return b
	}
	mutate := sess.Mutate

	fields := map[string]*fieldSpec{}
	var order []string
	whole := section == ""

	if whole || section == domain.QuestionnaireAbout {
		fields["about"] = &fieldSpec{
			get: func() string { return buf().About },
			set: func(v string) error { return mutate(func(b *domain.QuestionnaireBuffer) { b.About = v }) },
		}
		order = append(order, "about")
	}
	if whole || section == domain.QuestionnaireTopics {
		fields["topics"] = &fieldSpec{
			get: func() string { return joinList(buf().Topics.Items()) },
			add: func(v string) error {
				var opErr error
				if err := mutate(func(b *domain.QuestionnaireBuffer) { opErr = b.Topics.Add(v) }); err != nil {
					return err
				}
				return opErr
			},
			rm: func(i int) error {
				var opErr error
				if err := mutate(func(b *domain.QuestionnaireBuffer) { opErr = b.Topics.Remove(i) }); err != nil {
					return err
				}
				return opErr
			},
		}
		order = append(order, "topics")
	}
	if whole || section == domain.QuestionnaireSampleQuestions {
		fields["questions"] = &fieldSpec{
			get: func() string { return joinList(buf().SampleQuestions.Items()) },
			add: func(v string) error {
				var opErr error
				if err := mutate(func(b *domain.QuestionnaireBuffer) { opErr = b.SampleQuestions.Add(v) }); err != nil {
					return err
				}
				return opErr
			},
			rm: func(i int) error {
				var opErr error
				if err := mutate(func(b *domain.QuestionnaireBuffer) { opErr = b.SampleQuestions.Remove(i) }); err != nil {
					return err
				}
				return opErr
			},
		}
		order = append(order, "questions")
	}

	a.runEditLoop(ctx, "questionnaire "+id, order, fields, sess)
}
