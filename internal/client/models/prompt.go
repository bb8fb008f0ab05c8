// Package models defines the client-side prompt library types: prompts and
// their labels, the editor draft, the derived user identity and the closed
// set of views the navigator moves between.
package models

import (
	"math"
	"regexp"
	"time"
	"unicode/utf16"
)

// Category is one of the fixed prompt classification labels.
type Category string

const (
	CategoryAdministration Category = "Administração"
	CategoryHR             Category = "RH"
	CategoryInvestigation  Category = "Investigação"
	CategoryInquiry        Category = "Inquérito"
	CategoryIncident       Category = "Boletim de Ocorrência"
	CategoryTemplates      Category = "Modelos"
)

// Categories lists every Category in display order.
var Categories = []Category{
	CategoryAdministration,
	CategoryHR,
	CategoryInvestigation,
	CategoryInquiry,
	CategoryIncident,
	CategoryTemplates,
}

// Valid reports whether c belongs to Categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// AIModel is the label of the assistant a prompt was written for.
type AIModel string

const (
	ModelGPT        AIModel = "GPT"
	ModelClaude     AIModel = "Claude"
	ModelGemini     AIModel = "Gemini"
	ModelCopilot    AIModel = "Copilot"
	ModelPerplexity AIModel = "Perplexity"
	ModelDeepSeek   AIModel = "DeepSeek"
	ModelOther      AIModel = "Outros"
)

// AIModels lists every AIModel in display order.
var AIModels = []AIModel{
	ModelGPT,
	ModelClaude,
	ModelGemini,
	ModelCopilot,
	ModelPerplexity,
	ModelDeepSeek,
	ModelOther,
}

// Valid reports whether m belongs to AIModels.
func (m AIModel) Valid() bool {
	for _, v := range AIModels {
		if v == m {
			return true
		}
	}
	return false
}

// Prompt is a single library record.
//
// ID is either a client placeholder (unsaved) or the canonical identifier the
// store assigned on first insert (persisted); see IsCanonicalID. UserID is
// the owner's account id, empty until the store has returned the row.
type Prompt struct {
	ID         string
	UserID     string
	Title      string
	Content    string
	Category   Category
	Model      AIModel
	Tokens     int
	CreatedAt  time.Time
	IsPublic   bool
	IsFavorite bool
}

// Persisted reports whether p carries a store-assigned identifier.
func (p Prompt) Persisted() bool {
	return IsCanonicalID(p.ID)
}

// OwnedBy reports whether userID may change p. Rows without an owner are
// drafts and belong to whoever holds them.
func (p Prompt) OwnedBy(userID string) bool {
	return p.UserID == "" || p.UserID == userID
}

// tokenDivisor is the characters-per-token ratio used for estimates. Stored
// rows were computed with this exact value.
const tokenDivisor = 4.5

// EstimateTokens returns floor(chars/4.5). chars counts UTF-16 code units, so
// a character outside the BMP counts twice, the same as in existing rows.
func EstimateTokens(content string) int {
	units := 0
	for _, r := range content {
		units += utf16.RuneLen(r)
	}
	return int(math.Floor(float64(units) / tokenDivisor))
}

var canonicalID = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsCanonicalID reports whether id has the 8-4-4-4-12 hex shape of the UUIDs
// assigned by the store. Anything else is a client placeholder.
func IsCanonicalID(id string) bool {
	return canonicalID.MatchString(id)
}
