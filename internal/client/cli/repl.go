package cli

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	OAuth(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	ShowView(ctx context.Context, v models.View) error
	Open(ctx context.Context, args []string) error
	Back(ctx context.Context) error
	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, oauth <provider>, exit"
	helpSignedIn  = "Available commands: (l)ist [text], search <text>, filter <category>, home, favorites, library, " +
		"settings, open <n|id>, back, new, edit [n|id], fav [n|id], delete [n|id], refresh, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the PromptBook CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The remaining tokens are passed as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Commands other than help, register, login, oauth and exit require a
// signed-in user. Errors returned by handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("pb %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		case "oauth":
			report(a.OAuth(ctx, args))
			continue
		}

		if !a.isLoggedIn() {
			if isKnownCommand(cmd) {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "l", "list":
			report(a.List(ctx, args))
		case "search":
			report(a.Search(ctx, args))
		case "filter":
			report(a.Filter(ctx, args))
		case "home", "dashboard":
			report(a.ShowView(ctx, models.ViewLanding))
		case "favorites", "favs":
			report(a.ShowView(ctx, models.ViewFavorites))
		case "library", "lib":
			report(a.ShowView(ctx, models.ViewLibrary))
		case "settings":
			report(a.ShowView(ctx, models.ViewSettings))
		case "whoami":
			report(a.Whoami(ctx))
		case "open":
			report(a.Open(ctx, args))
		case "back":
			report(a.Back(ctx))
		case "new":
			report(a.New(ctx))
		case "edit":
			report(a.Edit(ctx, args))
		case "fav":
			report(a.Favorite(ctx, args))
		case "delete", "rm":
			report(a.Delete(ctx, args))
		case "refresh":
			report(a.Refresh(ctx))
		case "logout":
			report(a.Logout(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var signedInCommands = []string{
	"l", "list", "search", "filter", "home", "dashboard", "favorites", "favs", "library", "lib",
	"settings", "whoami", "open", "back", "new", "edit", "fav", "delete", "rm", "refresh", "logout",
}

func isKnownCommand(cmd string) bool {
	return slices.Contains(signedInCommands, cmd)
}

func report(err error) {
	if err != nil {
		printlnFn(errorText("error: " + err.Error()))
	}
}
