package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/rpc"
	"github.com/dmitrijs2005/promptbook/internal/server/models"
	"github.com/dmitrijs2005/promptbook/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto gRPC codes. Unknown errors are reported
// as Internal without their text.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, common.ErrorAlreadyExists.Error())
	case errors.Is(err, common.ErrorInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrProviderNotEnabled):
		return status.Error(codes.InvalidArgument, common.ErrProviderNotEnabled.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	default:
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func userToRPC(u models.User) rpc.User {
	return rpc.User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func sessionToRPC(s *services.Session) rpc.Session {
	return rpc.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresAt:    s.ExpiresAt,
		User:         userToRPC(s.User),
	}
}

func rowFromPrompt(p models.Prompt) rpc.PromptRow {
	fav := p.IsFavorite
	return rpc.PromptRow{
		ID:         p.ID,
		UserID:     p.UserID,
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category,
		Model:      p.Model,
		Tokens:     p.Tokens,
		CreatedAt:  p.CreatedAt,
		IsPublic:   p.IsPublic,
		IsFavorite: &fav,
	}
}

func promptFromRow(r rpc.PromptRow) models.Prompt {
	p := models.Prompt{
		Title:     r.Title,
		Content:   r.Content,
		Category:  r.Category,
		Model:     r.Model,
		Tokens:    r.Tokens,
		CreatedAt: r.CreatedAt,
		IsPublic:  r.IsPublic,
	}
	if r.IsFavorite != nil {
		p.IsFavorite = *r.IsFavorite
	}
	return p
}

func patchFromRPC(p rpc.PromptPatch) models.PromptPatch {
	return models.PromptPatch{
		Title:      p.Title,
		Content:    p.Content,
		Category:   p.Category,
		Model:      p.Model,
		Tokens:     p.Tokens,
		IsPublic:   p.IsPublic,
		IsFavorite: p.IsFavorite,
	}
}

func (s *GRPCServer) SignUp(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.UserResponse, error) {
	u, err := s.users.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &rpc.UserResponse{User: userToRPC(*u)}, nil
}

func (s *GRPCServer) SignInWithPassword(ctx context.Context, req *rpc.CredentialsRequest) (*rpc.SessionResponse, error) {
	sess, err := s.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SessionResponse{Session: sessionToRPC(sess)}, nil
}

func (s *GRPCServer) SignInWithOAuth(ctx context.Context, req *rpc.SignInWithOAuthRequest) (*rpc.SignInWithOAuthResponse, error) {
	url, err := s.oauth.AuthURL(ctx, req.Provider, req.RedirectTo)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SignInWithOAuthResponse{URL: url}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.SessionResponse, error) {
	sess, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.SessionResponse{Session: sessionToRPC(sess)}, nil
}

func (s *GRPCServer) SignOut(ctx context.Context, req *rpc.SignOutRequest) (*rpc.Empty, error) {
	if err := s.users.SignOut(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, _ *rpc.GetUserRequest) (*rpc.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.UserResponse{User: userToRPC(*u)}, nil
}

func (s *GRPCServer) SelectPrompts(ctx context.Context, req *rpc.SelectPromptsRequest) (*rpc.SelectPromptsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var ascending bool
	switch req.Order {
	case "", rpc.OrderCreatedAtDesc:
	case rpc.OrderCreatedAtAsc:
		ascending = true
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unsupported order %q", req.Order)
	}

	list, err := s.prompts.List(ctx, userID, ascending)
	if err != nil {
		return nil, toStatus(err)
	}

	rows := make([]rpc.PromptRow, 0, len(list))
	for _, p := range list {
		rows = append(rows, rowFromPrompt(p))
	}
	return &rpc.SelectPromptsResponse{Rows: rows}, nil
}

func (s *GRPCServer) InsertPrompt(ctx context.Context, req *rpc.InsertPromptRequest) (*rpc.PromptResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.prompts.Create(ctx, userID, promptFromRow(req.Row))
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.PromptResponse{Row: rowFromPrompt(*p)}, nil
}

func (s *GRPCServer) UpdatePrompt(ctx context.Context, req *rpc.UpdatePromptRequest) (*rpc.PromptResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.prompts.Update(ctx, userID, req.ID, patchFromRPC(req.Patch))
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.PromptResponse{Row: rowFromPrompt(*p)}, nil
}

func (s *GRPCServer) DeletePrompt(ctx context.Context, req *rpc.DeletePromptRequest) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.prompts.Delete(ctx, userID, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: rpc.PingStatusOK}, nil
}
