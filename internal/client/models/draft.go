package models

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/promptbook/internal/common"
)

// ErrValidation is returned when a draft is missing its title or content.
var ErrValidation = errors.New("title and content are required")

// placeholderIDLength matches the length of ids the editor hands out before
// the store assigns a real one.
const placeholderIDLength = 9

// Draft is the editor form. Base is the prompt being edited, nil in create mode.
type Draft struct {
	Base     *Prompt
	Title    string
	Content  string
	Category Category
	Model    AIModel
	IsPublic bool
}

// NewDraft returns a form prefilled from base, or a blank form with the
// default category and model when base is nil.
func NewDraft(base *Prompt) Draft {
	if base == nil {
		return Draft{Category: CategoryAdministration, Model: ModelGPT}
	}
	b := *base
	return Draft{
		Base:     &b,
		Title:    b.Title,
		Content:  b.Content,
		Category: b.Category,
		Model:    b.Model,
		IsPublic: b.IsPublic,
	}
}

// Validate rejects empty titles and contents. Whitespace-only values count as
// present.
func (d Draft) Validate() error {
	if d.Title == "" || d.Content == "" {
		return ErrValidation
	}
	return nil
}

// Build turns the form into the prompt that gets saved. Tokens are recomputed
// from Content; a new prompt gets a placeholder id and CreatedAt=now, an
// existing one keeps its id, CreatedAt and favorite flag.
func (d Draft) Build(now time.Time) (Prompt, error) {
	if err := d.Validate(); err != nil {
		return Prompt{}, err
	}

	p := Prompt{
		Title:    d.Title,
		Content:  d.Content,
		Category: d.Category,
		Model:    d.Model,
		Tokens:   EstimateTokens(d.Content),
		IsPublic: d.IsPublic,
	}

	if d.Base != nil && d.Base.ID != "" {
		p.ID = d.Base.ID
		p.UserID = d.Base.UserID
		p.IsFavorite = d.Base.IsFavorite
	} else {
		p.ID = common.RandBase36(placeholderIDLength)
	}

	if d.Base != nil && !d.Base.CreatedAt.IsZero() {
		p.CreatedAt = d.Base.CreatedAt
	} else {
		p.CreatedAt = now
	}
	return p, nil
}
