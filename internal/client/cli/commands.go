package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/client/services"
)

// List shows the current list view, or the dashboard when another screen is
// open. Arguments, when given, become the search text.
func (a *App) List(ctx context.Context, args []string) error {
	if len(args) > 0 {
		a.filter.Query = strings.Join(args, " ")
	}
	if err := a.ensureListView(); err != nil {
		return err
	}
	a.render()
	return nil
}

// Search sets the search text of the list screens. No arguments clear it.
func (a *App) Search(ctx context.Context, args []string) error {
	a.filter.Query = strings.Join(args, " ")
	return a.List(ctx, nil)
}

// Filter selects the category chip. "Todos", "all" or no argument select
// every category.
func (a *App) Filter(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	switch {
	case name == "" || strings.EqualFold(name, "all") || strings.EqualFold(name, services.AllCategories):
		a.filter.Category = services.AllCategories
	default:
		c, ok := lookupCategory(name)
		if !ok {
			return fmt.Errorf("unknown category %q", name)
		}
		a.filter.Category = string(c)
	}
	return a.List(ctx, nil)
}

func lookupCategory(name string) (models.Category, bool) {
	for _, c := range models.Categories {
		if strings.EqualFold(string(c), name) {
			return c, true
		}
	}
	return "", false
}

// ShowView switches to one of the bottom navigation screens.
func (a *App) ShowView(ctx context.Context, v models.View) error {
	if err := a.nav.Show(v); err != nil {
		return err
	}
	a.render()
	return nil
}

// ensureListView leaves the detail and settings screens for the dashboard so
// list-scoped commands have a list to work on.
func (a *App) ensureListView() error {
	switch a.state.View() {
	case models.ViewDetail:
		return a.nav.Back()
	case models.ViewSettings:
		return a.nav.Show(models.ViewLanding)
	}
	return nil
}

// resolve finds the prompt a command refers to: a position in the last list
// shown, a prompt id, or the prompt open in the detail view when args is
// empty.
func (a *App) resolve(args []string) (models.Prompt, error) {
	if len(args) == 0 {
		if sel := a.state.Selected(); sel != nil && a.state.View() == models.ViewDetail {
			return *sel, nil
		}
		return models.Prompt{}, fmt.Errorf("%w: give a list number or a prompt id", errUsage)
	}

	ref := args[0]
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.listed) {
			return models.Prompt{}, fmt.Errorf("no prompt number %d in the last list", n)
		}
		if p, ok := a.state.Find(a.listed[n-1].ID); ok {
			return p, nil
		}
		return models.Prompt{}, fmt.Errorf("prompt %d is gone, run list again", n)
	}
	if p, ok := a.state.Find(ref); ok {
		return p, nil
	}
	return models.Prompt{}, fmt.Errorf("no prompt with id %q", ref)
}

// Open shows a prompt in the detail view.
func (a *App) Open(ctx context.Context, args []string) error {
	p, err := a.resolve(args)
	if err != nil {
		return err
	}
	if err := a.ensureListView(); err != nil {
		return err
	}
	if err := a.nav.Open(p); err != nil {
		return err
	}
	a.render()
	return nil
}

// Back returns from the detail view to the dashboard.
func (a *App) Back(ctx context.Context) error {
	if err := a.nav.Back(); err != nil {
		return err
	}
	a.render()
	return nil
}

// New opens a blank editor.
func (a *App) New(ctx context.Context) error {
	if err := a.nav.Create(); err != nil {
		return err
	}
	return a.runEditor(ctx)
}

// Edit opens the editor on the prompt in the detail view or on the one args
// refers to.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 && a.state.View() == models.ViewDetail {
		if sel := a.state.Selected(); sel != nil && !a.prompts.CanModify(*sel) {
			return services.ErrNotOwner
		}
		if err := a.nav.Edit(nil); err != nil {
			return err
		}
		return a.runEditor(ctx)
	}

	p, err := a.resolve(args)
	if err != nil {
		return err
	}
	if !a.prompts.CanModify(p) {
		return services.ErrNotOwner
	}
	if err := a.ensureListView(); err != nil {
		return err
	}
	if err := a.nav.Edit(&p); err != nil {
		return err
	}
	return a.runEditor(ctx)
}

// Favorite toggles the favorite flag of a prompt.
func (a *App) Favorite(ctx context.Context, args []string) error {
	p, err := a.resolve(args)
	if err != nil {
		return err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.prompts.ToggleFavorite(ctx, p); err != nil {
		return err
	}
	if p.IsFavorite {
		fmt.Fprintln(a.out, okText("Removed from favorites: "+p.Title))
	} else {
		fmt.Fprintln(a.out, okText("Added to favorites: "+p.Title))
	}
	a.render()
	return nil
}

// Delete removes a prompt after a confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	p, err := a.resolve(args)
	if err != nil {
		return err
	}

	ok, err := GetYesNo(a.reader, fmt.Sprintf("Delete %q?", p.Title), false, a.out)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.prompts.Remove(ctx, p.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, okText("Deleted: "+p.Title))
	a.render()
	return nil
}

// Refresh reloads the collection from the server.
func (a *App) Refresh(ctx context.Context) error {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	if err := a.prompts.FetchAll(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}
