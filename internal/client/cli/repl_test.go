package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records which commands the REPL dispatched.
type stubExec struct {
	calls []string
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) ListNotes(ctx context.Context) error         { return s.record("notes") }
func (s *stubExec) ReadNote(ctx context.Context) error          { return s.record("read") }
func (s *stubExec) AddNote(ctx context.Context) error           { return s.record("add") }
func (s *stubExec) EditNote(ctx context.Context) error          { return s.record("edit") }
func (s *stubExec) MoveNote(ctx context.Context) error          { return s.record("move") }
func (s *stubExec) RemoveNote(ctx context.Context) error        { return s.record("rm") }
func (s *stubExec) SearchNotes(ctx context.Context) error       { return s.record("search") }
func (s *stubExec) ListCategories(ctx context.Context) error    { return s.record("cats") }
func (s *stubExec) AddCategory(ctx context.Context) error       { return s.record("addcat") }
func (s *stubExec) RenameCategory(ctx context.Context) error    { return s.record("rename") }
func (s *stubExec) ReorderCategories(ctx context.Context) error { return s.record("reorder") }
func (s *stubExec) RemoveCategory(ctx context.Context) error    { return s.record("rmcat") }
func (s *stubExec) Sync(ctx context.Context) error              { return s.record("sync") }
func (s *stubExec) Status(ctx context.Context) error            { return s.record("status") }

func runScript(t *testing.T, script string) (*stubExec, []string) {
	t.Helper()

	var output []string
	origPrintln := printlnFn
	printlnFn = func(a ...any) (int, error) {
		output = append(output, fmt.Sprintln(a...))
		return 0, nil
	}
	defer func() { printlnFn = origPrintln }()

	stub := &stubExec{}
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "idle" }, scanner)
	return stub, output
}

func TestREPLDispatch(t *testing.T) {
	script := "notes\nread\nadd\nedit\nmove\nrm\nsearch\ncats\naddcat\nrename\nreorder\nrmcat\nsync\nstatus\nexit\n"
	stub, output := runScript(t, script)

	want := []string{
		"notes", "read", "add", "edit", "move", "rm", "search",
		"cats", "addcat", "rename", "reorder", "rmcat", "sync", "status",
	}
	assert.Equal(t, want, stub.calls)
	assert.Contains(t, output[len(output)-1], "Bye!")
}

func TestREPLAliases(t *testing.T) {
	stub, _ := runScript(t, "l\nquit\n")
	assert.Equal(t, []string{"notes"}, stub.calls)
}

func TestREPLUnknownCommand(t *testing.T) {
	stub, output := runScript(t, "frobnicate\nexit\n")
	assert.Empty(t, stub.calls)

	found := false
	for _, line := range output {
		if strings.Contains(line, "Unknown command") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestREPLEmptyLinesAndEOF(t *testing.T) {
	stub, _ := runScript(t, "\n\nnotes\n")
	assert.Equal(t, []string{"notes"}, stub.calls)
}
