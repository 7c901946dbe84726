package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/podlift/podlift/internal/notify"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode())
	return fmt.Sprintf("(%s)", s)
}

// flushNotifications prints everything queued by services since the last
// command: save confirmations, rejected saves, connectivity notes.
func (a *App) flushNotifications() {
	for _, n := range a.queue.Drain() {
		switch n.Level {
		case notify.LevelError:
			fmt.Fprintf(a.out, "! %s\n", n.Message)
		case notify.LevelSuccess:
			fmt.Fprintf(a.out, "✓ %s\n", n.Message)
		default:
			fmt.Fprintf(a.out, "- %s\n", n.Message)
		}
	}
}

func (a *App) printHelp() {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Available commands: login, exit")
		return
	}
	fmt.Fprintln(a.out, "Available commands:")
	fmt.Fprintln(a.out, "  list <campaigns|kits|placements|pitches|questionnaires>")
	fmt.Fprintln(a.out, "  show <campaign|kit|placement|pitch|questionnaire> <id>")
	fmt.Fprintln(a.out, "  edit <campaign|kit|placement|pitch|questionnaire> <id> [section]")
	fmt.Fprintln(a.out, "  advance <placement-id>")
	fmt.Fprintln(a.out, "  settings | edit settings")
	fmt.Fprintln(a.out, "  logout, exit")
}

// Root runs the top-level command loop until EOF or exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to podlift CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if !a.isLoggedIn() {
		a.Login(ctx)
	}

	for {
		a.flushNotifications()
		fmt.Fprintf(a.out, "podlift %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "l", "list":
			a.list(ctx, args)
		case "show":
			a.show(ctx, args)
		case "edit":
			a.edit(ctx, args)
		case "advance":
			a.advance(ctx, args)
		case "settings":
			a.showSettings(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
