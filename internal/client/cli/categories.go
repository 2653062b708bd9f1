package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) ListCategories(ctx context.Context) error {
	items, err := a.categories.List(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing categories", "error", err)
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return nil
	}
	for _, c := range items {
		count, err := a.categories.NotesCount(ctx, c.ID)
		if err != nil {
			count = 0
		}
		fmt.Fprintf(a.out, "%4d  %-20s  %d note(s)\n", c.ID, c.Name, count)
	}
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Category name", a.out)
	if err != nil {
		return err
	}
	c, err := a.categories.Create(ctx, name)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Created category %d\n", c.ID)
	return nil
}

func (a *App) RenameCategory(ctx context.Context) error {
	id, err := a.readID("Category id")
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "New name", a.out)
	if err != nil {
		return err
	}
	if _, err := a.categories.Rename(ctx, id, name); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Renamed")
	return nil
}

// ReorderCategories prompts for the full category order as a list of ids.
func (a *App) ReorderCategories(ctx context.Context) error {
	if err := a.ListCategories(ctx); err != nil {
		return err
	}
	raw, err := GetSimpleText(a.reader, "New order (all ids, comma-separated)", a.out)
	if err != nil {
		return err
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			fmt.Fprintf(a.out, "Not a valid id: %s\n", part)
			return err
		}
		ids = append(ids, id)
	}
	if err := a.categories.Reorder(ctx, ids); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Reordered")
	return nil
}

func (a *App) RemoveCategory(ctx context.Context) error {
	id, err := a.readID("Category id")
	if err != nil {
		return err
	}
	count, err := a.categories.NotesCount(ctx, id)
	if err == nil && count > 0 {
		fmt.Fprintf(a.out, "Category still has %d note(s); they will become uncategorized\n", count)
	}
	if err := a.categories.Delete(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Trashed")
	return nil
}
