package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/notelance/notelance/internal/client/models"
)

func (a *App) readID(prompt string) (int64, error) {
	raw, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Not a valid id: %s\n", raw)
		return 0, err
	}
	return id, nil
}

// readCategoryID reads an optional category id. An empty answer means
// "uncategorized" and yields nil.
func (a *App) readCategoryID(prompt string) (*int64, error) {
	raw, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintf(a.out, "Not a valid id: %s\n", raw)
		return nil, err
	}
	return &id, nil
}

func (a *App) printNotes(ctx context.Context, items []models.Note) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No notes found")
		return
	}
	for _, n := range items {
		cat := "-"
		if n.CategoryID != nil {
			if c, err := a.categories.Get(ctx, *n.CategoryID); err == nil {
				cat = c.Name
			}
		}
		title := n.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(a.out, "%4d  %-30s  %-15s  %s\n",
			n.ID, title, cat, n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func (a *App) ListNotes(ctx context.Context) error {
	items, err := a.notes.List(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing notes", "error", err)
		return err
	}
	a.printNotes(ctx, items)
	return nil
}

func (a *App) ReadNote(ctx context.Context) error {
	id, err := a.readID("Note id")
	if err != nil {
		return err
	}
	n, err := a.notes.Get(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "# %s\n\n%s\n\n(updated %s)\n",
		n.Title, n.Content, n.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (a *App) AddNote(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	categoryID, err := a.readCategoryID("Category id (empty for none)")
	if err != nil {
		return err
	}
	n, err := a.notes.Create(ctx, title, content, categoryID)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Created note %d\n", n.ID)
	return nil
}

func (a *App) EditNote(ctx context.Context) error {
	id, err := a.readID("Note id")
	if err != nil {
		return err
	}

	var title, content *string

	rawTitle, err := GetSimpleText(a.reader, "New title (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if rawTitle != "" {
		title = &rawTitle
	}

	rawContent, err := GetMultiline(a.reader, "New content (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if rawContent != "" {
		content = &rawContent
	}

	if _, err := a.notes.Edit(ctx, id, title, content); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) MoveNote(ctx context.Context) error {
	id, err := a.readID("Note id")
	if err != nil {
		return err
	}
	categoryID, err := a.readCategoryID("Category id (empty to uncategorize)")
	if err != nil {
		return err
	}
	if _, err := a.notes.Move(ctx, id, categoryID); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Moved")
	return nil
}

func (a *App) RemoveNote(ctx context.Context) error {
	id, err := a.readID("Note id")
	if err != nil {
		return err
	}
	if err := a.notes.Delete(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Trashed")
	return nil
}

func (a *App) SearchNotes(ctx context.Context) error {
	query, err := GetSimpleText(a.reader, "Search for", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(a.out, "Empty query")
		return nil
	}
	items, err := a.notes.Search(ctx, query)
	if err != nil {
		a.log.Error(ctx, "error searching notes", "error", err)
		return err
	}
	a.printNotes(ctx, items)
	return nil
}
