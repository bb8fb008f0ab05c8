package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
	metarepo "github.com/dmitrijs2005/promptbook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/promptbook/internal/common"
	"github.com/dmitrijs2005/promptbook/internal/logging"
	"github.com/dmitrijs2005/promptbook/internal/rpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// sessionKey is the metadata key the signed-in session is persisted under.
const sessionKey = "session"

// GRPCClient implements RemoteStore over the PromptBook gRPC service.
type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.PromptBookClient
	store       metarepo.Repository
	logger      logging.Logger
	events      *notifier

	mu       sync.RWMutex
	session  *Session
	restored bool

	// refreshMu serializes token refreshes triggered by concurrent calls.
	refreshMu sync.Mutex
}

var _ RemoteStore = (*GRPCClient)(nil)

// NewPromptBookClient connects to endpointURL. store may be nil, in which case
// the session lives only in memory.
func NewPromptBookClient(endpointURL string, store metarepo.Repository, logger logging.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := newGRPCClient(store, logger)
	c.endpointURL = endpointURL
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func newGRPCClient(store metarepo.Repository, logger logging.Logger) *GRPCClient {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &GRPCClient{
		store:  store,
		logger: logger,
		events: newNotifier(),
	}
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewPromptBookClient(conn)
	return nil
}

// Close stops every auth subscription and closes the connection.
func (s *GRPCClient) Close() error {
	s.events.close()
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}
	if len(md.Get(common.RequestIDHeaderName)) == 0 {
		md.Set(common.RequestIDHeaderName, uuid.NewString())
	}
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.AccessToken
}

func (s *GRPCClient) currentSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	cp := *s.session
	return &cp
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	used := s.accessToken()
	err := invoker(withAccessToken(ctx, used), method, req, reply, cc, opts...)
	if err == nil || method == rpc.PromptBook_RefreshToken_FullMethodName || !isTokenExpired(err) {
		return err
	}

	token, refreshErr := s.refresh(ctx, used)
	if refreshErr != nil {
		return refreshErr
	}

	// tokens refreshed, retry once with the new access token
	return invoker(withAccessToken(ctx, token), method, req, reply, cc, opts...)
}

// refresh exchanges the refresh token for a new pair unless another call
// already did so since stale was sent. A rejected refresh token ends the session.
func (s *GRPCClient) refresh(ctx context.Context, stale string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	cur := s.currentSession()
	if cur == nil || cur.RefreshToken == "" {
		return "", status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	}
	if cur.AccessToken != stale {
		return cur.AccessToken, nil
	}

	resp, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: cur.RefreshToken})
	if err != nil {
		if status.Code(err) == codes.Unauthenticated {
			s.logger.Warn(ctx, "refresh token rejected, signing out", "error", err)
			s.endSession(ctx)
		}
		return "", err
	}

	next := sessionFromRPC(resp.Session)
	s.setSession(ctx, next)
	s.events.publish(AuthEvent{Kind: EventTokenRefreshed, Session: next})
	return next.AccessToken, nil
}

func (s *GRPCClient) setSession(ctx context.Context, sess *Session) {
	s.mu.Lock()
	s.session = sess
	s.restored = true
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := metarepo.SaveJSON(ctx, s.store, sessionKey, sess); err != nil {
		s.logger.Error(ctx, "failed to persist session", "error", err)
	}
}

// endSession forgets the session locally and tells subscribers.
func (s *GRPCClient) endSession(ctx context.Context) {
	s.mu.Lock()
	s.session = nil
	s.restored = true
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Delete(ctx, sessionKey); err != nil {
			s.logger.Error(ctx, "failed to delete persisted session", "error", err)
		}
	}
	s.events.publish(AuthEvent{Kind: EventSignedOut})
}

// GetSession returns the in-memory session, loading the persisted one on the
// first call. It does not contact the server.
func (s *GRPCClient) GetSession(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.restored && s.store != nil {
		var sess Session
		ok, err := metarepo.LoadJSON(ctx, s.store, sessionKey, &sess)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if ok && sess.AccessToken != "" {
			s.session = &sess
		}
	}
	s.restored = true

	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

func (s *GRPCClient) OnAuthStateChange(handler func(AuthEvent)) func() {
	return s.events.subscribe(handler)
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password string) (*User, error) {
	resp, err := s.client.SignUp(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	u := userFromRPC(resp.User)
	return &u, nil
}

func (s *GRPCClient) SignInWithPassword(ctx context.Context, email, password string) (*User, error) {
	resp, err := s.client.SignInWithPassword(ctx, &rpc.CredentialsRequest{Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}

	sess := sessionFromRPC(resp.Session)
	s.setSession(ctx, sess)
	s.events.publish(AuthEvent{Kind: EventSignedIn, Session: sess})

	u := sess.User
	return &u, nil
}

func (s *GRPCClient) SignInWithOAuth(ctx context.Context, provider, redirectTo string) (string, error) {
	resp, err := s.client.SignInWithOAuth(ctx, &rpc.SignInWithOAuthRequest{Provider: provider, RedirectTo: redirectTo})
	if err != nil {
		return "", mapError(err)
	}
	return resp.URL, nil
}

// SignOut revokes the refresh token on the server and always forgets the
// session locally; a failed revocation is only logged.
func (s *GRPCClient) SignOut(ctx context.Context) error {
	cur := s.currentSession()
	if cur != nil {
		if _, err := s.client.SignOut(ctx, &rpc.SignOutRequest{RefreshToken: cur.RefreshToken}); err != nil {
			s.logger.Warn(ctx, "remote sign-out failed", "error", mapError(err))
		}
	}
	s.endSession(ctx)
	return nil
}

// GetUser asks the server who the current access token belongs to and
// publishes USER_UPDATED when the answer differs from the cached identity.
func (s *GRPCClient) GetUser(ctx context.Context) (*User, error) {
	resp, err := s.client.GetUser(ctx, &rpc.GetUserRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	u := userFromRPC(resp.User)

	s.mu.Lock()
	var updated *Session
	if s.session != nil && s.session.User != u {
		s.session.User = u
		cp := *s.session
		updated = &cp
	}
	s.mu.Unlock()

	if updated != nil {
		s.setSession(ctx, updated)
		s.events.publish(AuthEvent{Kind: EventUserUpdated, Session: updated})
	}
	return &u, nil
}

func (s *GRPCClient) SelectAll(ctx context.Context) ([]models.Prompt, error) {
	resp, err := s.client.SelectPrompts(ctx, &rpc.SelectPromptsRequest{Order: rpc.OrderCreatedAtDesc})
	if err != nil {
		return nil, mapError(err)
	}

	prompts := make([]models.Prompt, 0, len(resp.Rows))
	for _, r := range resp.Rows {
		prompts = append(prompts, promptFromRow(r))
	}
	return prompts, nil
}

func (s *GRPCClient) Insert(ctx context.Context, p models.Prompt) (models.Prompt, error) {
	cur := s.currentSession()
	if cur == nil {
		return models.Prompt{}, ErrUnauthorized
	}

	resp, err := s.client.InsertPrompt(ctx, &rpc.InsertPromptRequest{Row: rowFromPrompt(p, cur.User.ID)})
	if err != nil {
		return models.Prompt{}, mapError(err)
	}
	return promptFromRow(resp.Row), nil
}

func (s *GRPCClient) UpdateByID(ctx context.Context, id string, patch PromptPatch) (models.Prompt, error) {
	resp, err := s.client.UpdatePrompt(ctx, &rpc.UpdatePromptRequest{ID: id, Patch: patchToRPC(patch)})
	if err != nil {
		return models.Prompt{}, mapError(err)
	}
	return promptFromRow(resp.Row), nil
}

func (s *GRPCClient) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.client.DeletePrompt(ctx, &rpc.DeletePromptRequest{ID: id}); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != rpc.PingStatusOK {
		return ErrUnavailable
	}
	return nil
}
