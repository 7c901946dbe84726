package cli

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/domain"
)

func (a *App) editPitch(ctx context.Context, id string, section domain.PitchSection) {
	if section == "" {
		section = domain.PitchContent
	}

	sess, err := a.pitches.Edit(id)
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

	buf := func() *domain.PitchBuffer {
		b, _ := sess.Buffer()
		return b
	}
	mutate := sess.Mutate

	fields := map[string]*fieldSpec{
		"subject": {
			get: func() string { return buf().Subject },
			set: func(v string) error { return mutate(func(b *domain.PitchBuffer) { b.Subject = v }) },
		},
		"body": {
			get: func() string { return buf().Body },
			set: func(v string) error { return mutate(func(b *domain.PitchBuffer) { b.Body = v }) },
		},
	}

	a.runEditLoop(ctx, "pitch "+id, []string{"subject", "body"}, fields, sess)
}
