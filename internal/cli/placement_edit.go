package cli

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/domain"
)

func (a *App) editPlacement(ctx context.Context, id string, section domain.PlacementSection) {
	sess, err := a.placements.Edit(id)
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

	buf := func() *domain.PlacementBuffer {
		b, _ := sess.Buffer()
		return b
	}
	mutate := sess.Mutate

	fields := map[string]*fieldSpec{}
	var order []string
	whole := section == ""

	if whole || section == domain.PlacementStatusSection {
		fields["status"] = &fieldSpec{
			get: func() string { return string(buf().Status) },
			set: func(v string) error {
				return mutate(func(b *domain.PlacementBuffer) { b.Status = domain.PlacementStatus(v) })
			},
		}
		order = append(order, "status")
	}
	if whole || section == domain.PlacementNotesSection {
		fields["notes"] = &fieldSpec{
			get: func() string { return buf().Notes },
			set: func(v string) error { return mutate(func(b *domain.PlacementBuffer) { b.Notes = v }) },
		}
		order = append(order, "notes")
	}

	a.runEditLoop(ctx, "placement "+id, order, fields, sess)
}
