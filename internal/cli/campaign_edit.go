package cli

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/domain"
)

func (a *App) editCampaign(ctx context.Context, id string, section domain.CampaignSection) {
	sess, err := a.campaigns.Edit(id)
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

	buf := func() *domain.CampaignBuffer {
		b, _ := sess.Buffer()
		return b
	}
	mutate := sess.Mutate

	fields := map[string]*fieldSpec{}
	var order []string
	whole := section == ""

	if whole || section == domain.CampaignSummary {
		fields["name"] = &fieldSpec{
			get: func() string { return buf().Name },
			set: func(v string) error { return mutate(func(b *domain.CampaignBuffer) { b.Name = v }) },
		}
		fields["goal"] = &fieldSpec{
			get: func() string { return buf().Goal },
			set: func(v string) error { return mutate(func(b *domain.CampaignBuffer) { b.Goal = v }) },
		}
		fields["bio"] = &fieldSpec{
			get: func() string { return buf().Bio },
			set: func(v string) error { return mutate(func(b *domain.CampaignBuffer) { b.Bio = v }) },
		}
		order = append(order, "name", "goal", "bio")
	}
	if whole || section == domain.CampaignKeywords {
		fields["keywords"] = &fieldSpec{
			get: func() string { return joinList(buf().Keywords.Items()) },
			add: func(v string) error {
				var opErr error
				if err := mutate(func(b *domain.CampaignBuffer) { opErr = b.Keywords.Add(v) }); err != nil {
					return err
				}
				return opErr
			},
			rm: func(i int) error {
				var opErr error
				if err := mutate(func(b *domain.CampaignBuffer) { opErr = b.Keywords.Remove(i) }); err != nil {
					return err
				}
				return opErr
			},
		}
		order = append(order, "keywords")
	}
	if whole || section == domain.CampaignAngles {
		fields["angles"] = &fieldSpec{
			get: func() string { return joinList(buf().Angles.Items()) },
			add: func(v string) error {
				var opErr error
				if err := mutate(func(b *domain.CampaignBuffer) { opErr = b.Angles.Add(v) }); err != nil {
					return err
				}
				return opErr
			},
			rm: func(i int) error {
				var opErr error
				if err := mutate(func(b *domain.CampaignBuffer) { opErr = b.Angles.Remove(i) }); err != nil {
					return err
				}
				return opErr
			},
		}
		order = append(order, "angles")
	}

	a.runEditLoop(ctx, "campaign "+id, order, fields, sess)
}
