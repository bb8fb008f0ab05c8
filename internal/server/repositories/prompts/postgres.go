package prompts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/dbx"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
)

const promptColumns = "id, user_id, title, content, category, model, tokens, created_at, is_public, is_favorite"

const (
	listDesc = `SELECT ` + promptColumns + ` FROM prompts
		WHERE user_id = $1 OR is_public
		ORDER BY created_at DESC`
	listAsc = `SELECT ` + promptColumns + ` FROM prompts
		WHERE user_id = $1 OR is_public
		ORDER BY created_at ASC`
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPrompt(s scanner) (*models.Prompt, error) {
	p := &models.Prompt{}
	err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.Category, &p.Model,
		&p.Tokens, &p.CreatedAt, &p.IsPublic, &p.IsFavorite)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) ListVisible(ctx context.Context, userID string, ascending bool) ([]models.Prompt, error) {
	query := listDesc
	if ascending {
		query = listAsc
	}

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Prompt, 0)
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Prompt) (*models.Prompt, error) {
	query := `
		INSERT INTO prompts (user_id, title, content, category, model, tokens, created_at, is_public, is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Title, p.Content, p.Category, p.Model,
		p.Tokens, p.CreatedAt, p.IsPublic, p.IsFavorite).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// patchAssignments turns the set fields of patch into "column = $n" pairs,
// numbering placeholders from 1.
func patchAssignments(patch models.PromptPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Model != nil {
		add("model", *patch.Model)
	}
	if patch.Tokens != nil {
		add("tokens", *patch.Tokens)
	}
	if patch.IsPublic != nil {
		add("is_public", *patch.IsPublic)
	}
	if patch.IsFavorite != nil {
		add("is_favorite", *patch.IsFavorite)
	}
	return sets, args
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id string, patch models.PromptPatch) (*models.Prompt, error) {
	sets, args := patchAssignments(patch)
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: empty patch", common.ErrorInvalidArgument)
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE prompts SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), promptColumns)

	p, err := scanPrompt(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM prompts
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
