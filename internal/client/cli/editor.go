package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/client/services"
)

// runEditor fills a draft from the prompt being edited (or a blank one),
// saves it and shows the saved prompt. When validation or the save fails the
// editor stays open and the form can be filled again with the values kept.
func (a *App) runEditor(ctx context.Context) error {
	draft := models.NewDraft(a.state.Selected())
	if draft.Base != nil {
		fmt.Fprintln(a.out, "Editing "+draft.Base.Title+" (Enter keeps the current value)")
	} else {
		fmt.Fprintln(a.out, "New prompt")
	}

	for retry := false; ; retry = true {
		if err := a.fillDraft(&draft, retry); err != nil {
			_ = a.nav.Cancel()
			return err
		}

		saved, err := a.saveDraft(ctx, draft)
		if err == nil {
			fmt.Fprintln(a.out, okText("Saved"))
			if a.state.View() == models.ViewDetail {
				renderDetail(a.out, saved)
			}
			return nil
		}
		if a.state.View() != models.ViewEditor || errors.Is(err, services.ErrNotOwner) {
			_ = a.nav.Cancel()
			return err
		}

		fmt.Fprintln(a.out, errorText(err.Error()))
		again, aerr := GetYesNo(a.reader, "Keep editing? (Enter keeps the values)", true, a.out)
		if aerr != nil {
			_ = a.nav.Cancel()
			return err
		}
		if !again {
			_ = a.nav.Cancel()
			fmt.Fprintln(a.out, mutedText("Discarded"))
			return nil
		}
	}
}

func (a *App) saveDraft(ctx context.Context, d models.Draft) (models.Prompt, error) {
	p, err := d.Build(time.Now())
	if err != nil {
		return models.Prompt{}, err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()
	return a.prompts.Save(ctx, p)
}

// fillDraft asks for every field. Enter keeps the current value when editing
// an existing prompt or refilling a form that failed.
func (a *App) fillDraft(d *models.Draft, refill bool) error {
	editing := d.Base != nil || refill

	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title != "" || !editing {
		d.Title = title
	}

	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	if content != "" || !editing {
		d.Content = content
	}

	categories := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = string(c)
	}
	category, err := GetChoice(a.reader, "Category", categories, string(d.Category), a.out)
	if err != nil {
		return err
	}
	d.Category = models.Category(category)

	aiModels := make([]string, len(models.AIModels))
	for i, m := range models.AIModels {
		aiModels[i] = string(m)
	}
	model, err := GetChoice(a.reader, "Model", aiModels, string(d.Model), a.out)
	if err != nil {
		return err
	}
	d.Model = models.AIModel(model)

	d.IsPublic, err = GetYesNo(a.reader, "Share in the public library?", d.IsPublic, a.out)
	return err
}
