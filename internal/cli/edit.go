package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// fieldSpec describes one editable buffer field in the edit sub-loop. Scalar
// fields implement set; list fields implement add and rm.
type fieldSpec struct {
	get func() string
	set func(value string) error
	add func(value string) error
	rm  func(index int) error
}

// editSession is the slice of a session the sub-loop drives. Every generic
// session satisfies it.
type editSession interface {
	Submit(ctx context.Context) error
	Cancel()
}

// runEditLoop drives one section edit: local mutations, then save or cancel.
// A failed save keeps the loop (and the working copy) alive for correction.
func (a *App) runEditLoop(ctx context.Context, label string, order []string, fields map[string]*fieldSpec, sess editSession) {
	fmt.Fprintf(a.out, "Editing %s. Commands: show, set <field> <value>, add <field> <value>, rm <field> <index>, save, cancel\n", label)

	for {
		fmt.Fprintf(a.out, "edit %s> ", label)
		line, err := a.reader.ReadString('\n')
		if err != nil {
			sess.Cancel()
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "show":
			for _, name := range order {
				fmt.Fprintf(a.out, "  %s: %s\n", name, fields[name].get())
			}

		case "set":
			if len(args) < 2 {
				fmt.Fprintln(a.out, "Usage: set <field> <value>")
				continue
			}
			f, ok := fields[args[0]]
			if !ok || f.set == nil {
				fmt.Fprintf(a.out, "Cannot set %q here\n", args[0])
				continue
			}
			if err := f.set(strings.Join(args[1:], " ")); err != nil {
				fmt.Fprintf(a.out, "! %s\n", err.Error())
			}

		case "add":
			if len(args) < 2 {
				fmt.Fprintln(a.out, "Usage: add <field> <value>")
				continue
			}
			f, ok := fields[args[0]]
			if !ok || f.add == nil {
				fmt.Fprintf(a.out, "Cannot add to %q here\n", args[0])
				continue
			}
			if err := f.add(strings.Join(args[1:], " ")); err != nil {
				fmt.Fprintf(a.out, "! %s\n", err.Error())
			}

		case "rm":
			if len(args) != 2 {
				fmt.Fprintln(a.out, "Usage: rm <field> <index>")
				continue
			}
			f, ok := fields[args[0]]
			if !ok || f.rm == nil {
				fmt.Fprintf(a.out, "Cannot remove from %q here\n", args[0])
				continue
			}
			i, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintln(a.out, "Usage: rm <field> <index>")
				continue
			}
			if err := f.rm(i); err != nil {
				fmt.Fprintf(a.out, "! %s\n", err.Error())
			}

		case "save":
			rctx, cancel := a.requestCtx(ctx)
			err := sess.Submit(rctx)
			cancel()
			if err == nil {
				return
			}
			fmt.Fprintf(a.out, "! %s\n", err.Error())

		case "cancel":
			sess.Cancel()
			fmt.Fprintln(a.out, "Changes discarded")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// joinList renders list items with their indexes for rm commands.
func joinList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("[%d] %s", i, it)
	}
	return strings.Join(parts, "  ")
}
