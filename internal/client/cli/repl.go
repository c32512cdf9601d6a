package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Token(ctx context.Context, arg string) error
	Register(ctx context.Context) error
	Profile(ctx context.Context) error
	Level(ctx context.Context, level string) error
	Photo(ctx context.Context, path string) error
	Queue(ctx context.Context, want bool) error
	Find(ctx context.Context) error
	Leave(ctx context.Context) error
	Send(ctx context.Context, text string) error
	Messages(ctx context.Context) error
	History(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the langmatch CLI.
//
// Each line is split into a command and its arguments and dispatched to a.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
//	Without a token:
//	  - help             show available commands
//	  - token <t|userId> set the access token
//	  - exit | quit      leave the program
//
//	With a token:
//	  - register         create the profile
//	  - profile          show the profile
//	  - level <lvl>      set the proficiency level
//	  - photo <file>     upload a profile picture
//	  - queue on|off     join or leave the waiting queue
//	  - find             request a partner
//	  - leave            end the current match
//	  - send <text>      send a message to the current match
//	  - messages         show the current match's messages
//	  - history          list past matches
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("lm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: register, profile, level, photo, queue on|off, find, leave, send, messages, history, token, exit")
			} else {
				printlnFn("Available commands: token, exit")
			}

		case "token":
			if len(args) != 1 {
				printlnFn("Usage: token <access token | user id>")
				continue
			}
			err = a.Token(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if !a.isLoggedIn() {
				printlnFn("Set a token first: token <access token | user id>")
				continue
			}
			err = dispatch(ctx, a, cmd, args, line)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, line string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)

	case "profile":
		return a.Profile(ctx)

	case "level":
		if len(args) != 1 {
			printlnFn("Usage: level <A1|A2|B1|B2|C1|C2|Native>")
			return nil
		}
		return a.Level(ctx, args[0])

	case "photo":
		if len(args) != 1 {
			printlnFn("Usage: photo <file>")
			return nil
		}
		return a.Photo(ctx, args[0])

	case "queue":
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			printlnFn("Usage: queue on|off")
			return nil
		}
		return a.Queue(ctx, args[0] == "on")

	case "find":
		return a.Find(ctx)

	case "leave":
		return a.Leave(ctx)

	case "send":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))
		if text == "" {
			printlnFn("Usage: send <text>")
			return nil
		}
		return a.Send(ctx, text)

	case "messages":
		return a.Messages(ctx)

	case "history":
		return a.History(ctx)
	}

	printlnFn("Unknown command:", cmd)
	return nil
}
