package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/podlift/podlift/internal/domain"
)

func (a *App) editSettings(ctx context.Context) {
	sess, err := a.settings.Edit()
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", err.Error())
		return
	}

	rctx, cancel := a.requestCtx(ctx)
	err = sess.EnterEdit(rctx, "")
	cancel()
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", err.Error())
		return
	}

	buf := func() *domain.SettingsBuffer {
		b, _ := sess.Buffer()
		return b
	}
	mutate := sess.Mutate

	boolSet := func(assign func(*domain.SettingsBuffer, bool)) func(string) error {
		return func(v string) error {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("expected true or false, got %q", v)
			}
			return mutate(func(b *domain.SettingsBuffer) { assign(b, parsed) })
		}
	}

	fields := map[string]*fieldSpec{
		"name": {
			get: func() string { return buf().FullName },
			set: func(v string) error { return mutate(func(b *domain.SettingsBuffer) { b.FullName = v }) },
		},
		"timezone": {
			get: func() string { return buf().Timezone },
			set: func(v string) error { return mutate(func(b *domain.SettingsBuffer) { b.Timezone = v }) },
		},
		"email_notifications": {
			get: func() string { return strconv.FormatBool(buf().EmailNotifications) },
			set: boolSet(func(b *domain.SettingsBuffer, v bool) { b.EmailNotifications = v }),
		},
		"weekly_digest": {
			get: func() string { return strconv.FormatBool(buf().WeeklyDigest) },
			set: boolSet(func(b *domain.SettingsBuffer, v bool) { b.WeeklyDigest = v }),
		},
	}

	a.runEditLoop(ctx, "settings", []string{"name", "timezone", "email_notifications", "weekly_digest"}, fields, sess)
}
