package client

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
	"github.com/dmitrijs2005/promptbook/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func promptFromRow(r rpc.PromptRow) models.Prompt {
	p := models.Prompt{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		Category:  models.Category(r.Category),
		Model:     models.AIModel(r.Model),
		Tokens:    r.Tokens,
		CreatedAt: r.CreatedAt,
		IsPublic:  r.IsPublic,
	}
	if r.IsFavorite != nil {
		p.IsFavorite = *r.IsFavorite
	}
	return p
}

// rowFromPrompt builds an insert row. The placeholder id is dropped so the
// store assigns the canonical one.
func rowFromPrompt(p models.Prompt, userID string) rpc.PromptRow {
	fav := p.IsFavorite
	return rpc.PromptRow{
		UserID:     userID,
		Title:      p.Title,
		Content:    p.Content,
		Category:   string(p.Category),
		Model:      string(p.Model),
		Tokens:     p.Tokens,
		CreatedAt:  p.CreatedAt,
		IsPublic:   p.IsPublic,
		IsFavorite: &fav,
	}
}

func patchToRPC(p PromptPatch) rpc.PromptPatch {
	out := rpc.PromptPatch{
		Title:      p.Title,
		Content:    p.Content,
		Tokens:     p.Tokens,
		IsPublic:   p.IsPublic,
		IsFavorite: p.IsFavorite,
	}
	if p.Category != nil {
		c := string(*p.Category)
		out.Category = &c
	}
	if p.Model != nil {
		m := string(*p.Model)
		out.Model = &m
	}
	return out
}

func sessionFromRPC(s rpc.Session) *Session {
	return &Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         userFromRPC(s.User),
	}
}

func userFromRPC(u rpc.User) User {
	return User{ID: u.ID, Email: u.Email}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return withDetail(ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return withDetail(ErrUnavailable, st.Message())
	case codes.NotFound:
		return withDetail(ErrNotFound, st.Message())
	case codes.InvalidArgument:
		return withDetail(ErrInvalidArgument, st.Message())
	case codes.AlreadyExists:
		return withDetail(ErrAlreadyExists, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

// withDetail wraps sentinel with the server message, minus a leading copy of
// the sentinel text the server may already have put there.
func withDetail(sentinel error, msg string) error {
	msg = strings.TrimPrefix(msg, sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
