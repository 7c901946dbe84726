package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/podlift/podlift/internal/domain"
)

// parseAchievement splits "Title | Description" user input.
func parseAchievement(v string) domain.Achievement {
	title, desc, _ := strings.Cut(v, "|")
	return domain.Achievement{Title: strings.TrimSpace(title), Description: strings.TrimSpace(desc)}
}

func (a *App) editMediaKit(ctx context.Context, id string, section domain.MediaKitSection) {
	sess, err := a.mediaKits.Edit(id)
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

	buf := func() *domain.MediaKitBuffer {
		b, _ := sess.Buffer()
		return b
	}
	mutate := sess.Mutate

	fields := map[string]*fieldSpec{}
	var order []string
	whole := section == ""

	if whole || section == domain.MediaKitHeader {
		fields["title"] = &fieldSpec{
			get: func() string { return buf().Title },
			set: func(v string) error { return mutate(func(b *domain.MediaKitBuffer) { b.Title = v }) },
		}
		fields["tagline"] = &fieldSpec{
			get: func() string { return buf().Tagline },
			set: func(v string) error { return mutate(func(b *domain.MediaKitBuffer) { b.Tagline = v }) },
		}
		order = append(order, "title", "tagline")
	}
	if whole || section == domain.MediaKitBio {
		fields["bio"] = &fieldSpec{
			get: func() string { return buf().Bio },
			set: func(v string) error { return mutate(func(b *domain.MediaKitBuffer) { b.Bio = v }) },
		}
		order = append(order, "bio")
	}
	if whole || section == domain.MediaKitAchievements {
		fields["achievements"] = &fieldSpec{
			get: func() string {
				items := buf().Achievements.Items()
				lines := make([]string, len(items))
				for i, ach := range items {
					lines[i] = ach.Title
				}
				return joinList(lines)
			},
			// Achievements are entered as "Title | Description".
			add: func(v string) error {
				var opErr error
				if err := mutate(func(b *domain.MediaKitBuffer) { opErr = b.Achievements.Add(parseAchievement(v)) }); err != nil {
					return err
				}
				return opErr
			},
			rm: func(i int) error {
				var opErr error
				if err := mutate(func(b *domain.MediaKitBuffer) { opErr = b.Achievements.Remove(i) }); err != nil {
					return err
				}
				return opErr
			},
		}
		order = append(order, "achievements")
	}
	if whole || section == domain.MediaKitTalkingPoints {
		fields["points"] = &fieldSpec{
			get: func() string { return joinList(buf().TalkingPoints.Items()) },
			add: func(v string) error {
				var opErr error
				if err := mutate(func(b *domain.MediaKitBuffer) { opErr = b.TalkingPoints.Add(v) }); err != nil {
					return err
				}
				return opErr
			},
			rm: func(i int) error {
				var opErr error
				if err := mutate(func(b *domain.MediaKitBuffer) { opErr = b.TalkingPoints.Remove(i) }); err != nil {
					return err
				}
				return opErr
			},
		}
		order = append(order, "points")
	}

	a.runEditLoop(ctx, "kit "+id, order, fields, sess)
}
