package cli

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/domain"
)

func (a *App) list(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: list <campaigns|kits|placements|pitches|questionnaires>")
		return
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	switch args[0] {
	case "campaigns":
		rows, err := a.campaigns.List(rctx)
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		for _, r := range rows {
			fmt.Fprintf(a.out, "  %s  %s (%s)\n", r.ID, r.Name, r.Goal)
		}
	case "kits":
		rows, err := a.mediaKits.List(rctx)
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		for _, r := range rows {
			fmt.Fprintf(a.out, "  %s  %s\n", r.ID, r.Title)
		}
	case "placements":
		rows, err := a.placements.List(rctx)
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		for _, r := range rows {
			fmt.Fprintf(a.out, "  %s  %s [%s]\n", r.ID, r.Podcast, r.Status)
		}
	case "pitches":
		rows, err := a.pitches.List(rctx)
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		for _, r := range rows {
			fmt.Fprintf(a.out, "  %s  %s -> %s [%s]\n", r.ID, r.Subject, r.Podcast, r.State)
		}
	case "questionnaires":
		rows, err := a.questionnaires.List(rctx)
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		for _, r := range rows {
			fmt.Fprintf(a.out, "  %s  campaign=%s topics=%d\n", r.ID, r.CampaignID, len(r.Topics))
		}
	default:
		fmt.Fprintln(a.out, "Unknown collection:", args[0])
	}
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: show <campaign|kit|placement|pitch|questionnaire> <id>")
		return
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	switch args[0] {
	case "campaign":
		r, err := a.campaigns.Get(rctx, args[1])
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		a.printCampaign(r)
	case "kit":
		r, err := a.mediaKits.Get(rctx, args[1])
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		a.printMediaKit(r)
	case "placement":
		r, err := a.placements.Get(rctx, args[1])
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		a.printPlacement(r)
	case "pitch":
		r, err := a.pitches.Get(rctx, args[1])
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		a.printPitch(r)
	case "questionnaire":
		r, err := a.questionnaires.Get(rctx, args[1])
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", err.Error())
			return
		}
		a.printQuestionnaire(r)
	default:
		fmt.Fprintln(a.out, "Unknown record type:", args[0])
	}
}

func (a *App) edit(ctx context.Context, args []string) {
	if len(args) == 1 && args[0] == "settings" {
		a.editSettings(ctx)
		return
	}
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(a.out, "Usage: edit <campaign|kit|placement|pitch|questionnaire> <id> [section]")
		return
	}

	section := ""
	if len(args) == 3 {
		section = args[2]
	}

	switch args[0] {
	case "campaign":
		a.editCampaign(ctx, args[1], domain.CampaignSection(section))
	case "kit":
		a.editMediaKit(ctx, args[1], domain.MediaKitSection(section))
	case "placement":
		a.editPlacement(ctx, args[1], domain.PlacementSection(section))
	case "pitch":
		a.editPitch(ctx, args[1], domain.PitchSection(section))
	case "questionnaire":
		a.editQuestionnaire(ctx, args[1], domain.QuestionnaireSection(section))
	default:
		fmt.Fprintln(a.out, "Unknown record type:", args[0])
	}
}

func (a *App) advance(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: advance <placement-id>")
		return
	}

	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	if err := a.placements.Advance(rctx, args[0]); err != nil {
		fmt.Fprintf(a.out, "! %s\n", err.Error())
	}
}

func (a *App) showSettings(ctx context.Context) {
	rctx, cancel := a.requestCtx(ctx)
	defer cancel()

	s, err := a.settings.Get(rctx)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", err.Error())
		return
	}
	fmt.Fprintf(a.out, "Name:     %s\n", s.FullName)
	fmt.Fprintf(a.out, "Timezone: %s\n", s.Timezone)
	fmt.Fprintf(a.out, "Email notifications: %t, weekly digest: %t\n", s.EmailNotifications, s.WeeklyDigest)
}

func (a *App) printCampaign(r domain.Campaign) {
	fmt.Fprintf(a.out, "Campaign %s\n", r.ID)
	fmt.Fprintf(a.out, "  name:     %s\n", r.Name)
	fmt.Fprintf(a.out, "  goal:     %s\n", r.Goal)
	fmt.Fprintf(a.out, "  bio:      %s\n", r.Bio)
	fmt.Fprintf(a.out, "  keywords: %s\n", joinList(r.Keywords))
	fmt.Fprintf(a.out, "  angles:   %s\n", joinList(r.Angles))
}

func (a *App) printMediaKit(r domain.MediaKit) {
	fmt.Fprintf(a.out, "Media kit %s\n", r.ID)
	fmt.Fprintf(a.out, "  title:   %s\n", r.Title)
	fmt.Fprintf(a.out, "  tagline: %s\n", r.Tagline)
	fmt.Fprintf(a.out, "  bio:     %s\n", r.Bio)
	for i, ach := range r.Achievements {
		fmt.Fprintf(a.out, "  achievement[%d]: %s (%s)\n", i, ach.Title, ach.Description)
	}
	fmt.Fprintf(a.out, "  talking points: %s\n", joinList(r.TalkingPoints))
}

func (a *App) printPlacement(r domain.Placement) {
	fmt.Fprintf(a.out, "Placement %s\n", r.ID)
	fmt.Fprintf(a.out, "  podcast: %s\n", r.Podcast)
	fmt.Fprintf(a.out, "  status:  %s\n", r.Status)
	fmt.Fprintf(a.out, "  notes:   %s\n", r.Notes)
	if r.AirDate != nil {
		fmt.Fprintf(a.out, "  airs:    %s\n", r.AirDate.Format("2006-01-02"))
	}
}

func (a *App) printPitch(r domain.Pitch) {
	fmt.Fprintf(a.out, "Pitch %s [%s]\n", r.ID, r.State)
	fmt.Fprintf(a.out, "  podcast: %s\n", r.Podcast)
	fmt.Fprintf(a.out, "  subject: %s\n", r.Subject)
	fmt.Fprintf(a.out, "  body:    %s\n", r.Body)
}

func (a *App) printQuestionnaire(r domain.Questionnaire) {
	fmt.Fprintf(a.out, "Questionnaire %s\n", r.ID)
	fmt.Fprintf(a.out, "  about:  %s\n", r.About)
	fmt.Fprintf(a.out, "  topics: %s\n", joinList(r.Topics))
	fmt.Fprintf(a.out, "  sample questions: %s\n", joinList(r.SampleQuestions))
}
