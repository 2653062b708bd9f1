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
	ListNotes(ctx context.Context) error
	ReadNote(ctx context.Context) error
	AddNote(ctx context.Context) error
	EditNote(ctx context.Context) error
	MoveNote(ctx context.Context) error
	RemoveNote(ctx context.Context) error
	SearchNotes(ctx context.Context) error
	ListCategories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	RenameCategory(ctx context.Context) error
	ReorderCategories(ctx context.Context) error
	RemoveCategory(ctx context.Context) error
	Sync(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Notelance CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current sync status (from statusFn) and accepts:
//
//	- help           — show available commands
//	- notes | l      — list notes
//	- read           — show a single note (interactive ID prompt)
//	- add            — create a note
//	- edit           — edit a note's title or content
//	- move           — move a note to a category
//	- rm             — trash a note
//	- search         — full-text search over notes
//	- cats           — list categories
//	- addcat         — create a category
//	- rename         — rename a category
//	- reorder        — reorder categories
//	- rmcat          — trash a category
//	- sync           — synchronize with the remote
//	- status         — show last sync outcome
//	- exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nl> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Notes: (l)ist, read, add, edit, move, rm, search")
			printlnFn("Categories: cats, addcat, rename, reorder, rmcat")
			printlnFn("Sync: sync, status")
			printlnFn("Other: help, exit")

		case "l", "notes":
			_ = a.ListNotes(ctx)

		case "read":
			_ = a.ReadNote(ctx)

		case "add":
			_ = a.AddNote(ctx)

		case "edit":
			_ = a.EditNote(ctx)

		case "move":
			_ = a.MoveNote(ctx)

		case "rm":
			_ = a.RemoveNote(ctx)

		case "search":
			_ = a.SearchNotes(ctx)

		case "cats":
			_ = a.ListCategories(ctx)

		case "addcat":
			_ = a.AddCategory(ctx)

		case "rename":
			_ = a.RenameCategory(ctx)

		case "reorder":
			_ = a.ReorderCategories(ctx)

		case "rmcat":
			_ = a.RemoveCategory(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
