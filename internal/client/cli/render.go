package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/client/services"
)

var (
	titleText  = color.New(color.FgCyan, color.Bold).SprintFunc()
	mutedText  = color.New(color.FgHiBlack).SprintFunc()
	accentText = color.New(color.FgYellow).SprintFunc()
	okText     = color.New(color.FgGreen).SprintFunc()
	errorText  = color.New(color.FgRed).SprintFunc()
)

const createdAtLayout = "02/01/2006 15:04"

var listTitles = map[models.View]string{
	models.ViewLanding:   "Dashboard",
	models.ViewFavorites: "Favorites",
	models.ViewLibrary:   "Library",
}

// render draws the screen for the current view.
func (a *App) render() {
	snap := a.state.Snapshot()
	switch snap.View {
	case models.ViewLanding, models.ViewFavorites, models.ViewLibrary:
		a.listed = renderList(a.out, snap.View, snap.UserID, snap.Prompts, a.filter)
	case models.ViewDetail:
		if snap.Selected != nil {
			renderDetail(a.out, *snap.Selected)
		}
	case models.ViewSettings:
		renderSettings(a.out, snap.Identity, snap.UserID, snap.Prompts)
	case models.ViewUnauthenticated:
		fmt.Fprintln(a.out, mutedText("Not signed in"))
	}
}

// renderList prints the prompts of a list view narrowed by f and returns them
// in the order shown.
func renderList(w io.Writer, view models.View, userID string, all []models.Prompt, f services.Filter) []models.Prompt {
	base := services.ForView(all, view, userID)
	shown := services.Browse(base, f)

	fmt.Fprintf(w, "%s %s\n", titleText(listTitles[view]), mutedText(fmt.Sprintf("(%d of %d)", len(shown), len(base))))
	fmt.Fprintln(w, renderFacets(services.CategoryFacets(base), f.Category))
	if f.Query != "" {
		fmt.Fprintln(w, mutedText("search: "+f.Query))
	}

	if len(shown) == 0 {
		fmt.Fprintln(w, mutedText("  no prompts"))
		return shown
	}
	for i, p := range shown {
		fmt.Fprintf(w, "%3d. %s %s %s\n", i+1, favoriteMark(p.IsFavorite), p.Title,
			mutedText(fmt.Sprintf("[%s · %s · %d tokens]", p.Category, p.Model, p.Tokens)))
	}
	return shown
}

func renderFacets(facets []string, selected string) string {
	if selected == "" {
		selected = services.AllCategories
	}
	parts := make([]string, len(facets))
	for i, f := range facets {
		if f == selected {
			parts[i] = accentText("[" + f + "]")
		} else {
			parts[i] = f
		}
	}
	return strings.Join(parts, "  ")
}

func favoriteMark(fav bool) string {
	if fav {
		return accentText("★")
	}
	return "☆"
}

func renderDetail(w io.Writer, p models.Prompt) {
	visibility := "private"
	if p.IsPublic {
		visibility = "public"
	}
	fmt.Fprintf(w, "%s %s\n", favoriteMark(p.IsFavorite), titleText(p.Title))
	fmt.Fprintln(w, mutedText(fmt.Sprintf("%s · %s · %d tokens · %s · %s",
		p.Category, p.Model, p.Tokens, visibility, p.CreatedAt.Local().Format(createdAtLayout))))
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
	fmt.Fprintln(w)
	fmt.Fprintln(w, mutedText("id: "+p.ID))
}

// renderSettings prints the profile and counts over the prompts userID owns.
func renderSettings(w io.Writer, id *models.Identity, userID string, prompts []models.Prompt) {
	if id == nil {
		fmt.Fprintln(w, mutedText("Not signed in"))
		return
	}
	prompts = services.Browse(prompts, services.Filter{Owner: userID})
	favorites := len(services.Browse(prompts, services.Filter{FavoritesOnly: true}))
	public := len(services.Browse(prompts, services.Filter{PublicOnly: true}))

	fmt.Fprintln(w, titleText(id.Name))
	fmt.Fprintln(w, id.Email)
	fmt.Fprintln(w, mutedText(id.Avatar))
	fmt.Fprintf(w, "%d prompts, %d favorites, %d public\n", len(prompts), favorites, public)
}
