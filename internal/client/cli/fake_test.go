package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/promptbook/internal/client/client"
	"github.com/dmitrijs2005/promptbook/internal/client/config"
	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

// fakeBackend is an in-memory Backend. Auth events are delivered
// synchronously from the call that causes them.
type fakeBackend struct {
	mu sync.Mutex

	users    map[string]string
	session  *client.Session
	handlers map[int]func(client.AuthEvent)
	nextSub  int

	rows      []models.Prompt
	updateErr error
	pingErr   error

	oauthProvider string
	oauthRedirect string
	signOuts      int
	closed        bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:    map[string]string{"ana@pc.gov": "pw"},
		handlers: make(map[int]func(client.AuthEvent)),
	}
}

func (f *fakeBackend) withRows(rows ...models.Prompt) *fakeBackend {
	f.rows = rows
	return f
}

func (f *fakeBackend) emit(ev client.AuthEvent) {
	f.mu.Lock()
	hs := make([]func(client.AuthEvent), 0, len(f.handlers))
	for _, h := range f.handlers {
		hs = append(hs, h)
	}
	f.mu.Unlock()
	for _, h := range hs {
		h(ev)
	}
}

func (f *fakeBackend) GetSession(context.Context) (*client.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session, nil
}

func (f *fakeBackend) OnAuthStateChange(h func(client.AuthEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.handlers[id] = h
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

func (f *fakeBackend) SignInWithPassword(_ context.Context, email, password string) (*client.User, error) {
	f.mu.Lock()
	if pw, ok := f.users[email]; !ok || pw != password {
		f.mu.Unlock()
		return nil, client.ErrUnauthorized
	}
	sess := &client.Session{AccessToken: "a", RefreshToken: "r", User: client.User{ID: "u-" + email, Email: email}}
	f.session = sess
	f.mu.Unlock()

	f.emit(client.AuthEvent{Kind: client.EventSignedIn, Session: sess})
	return &sess.User, nil
}

func (f *fakeBackend) SignUp(_ context.Context, email, password string) (*client.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; ok {
		return nil, client.ErrAlreadyExists
	}
	f.users[email] = password
	return &client.User{ID: "u-" + email, Email: email}, nil
}

func (f *fakeBackend) SignInWithOAuth(_ context.Context, provider, redirectTo string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if provider != "github" {
		return "", client.ErrInvalidArgument
	}
	f.oauthProvider, f.oauthRedirect = provider, redirectTo
	return "https://github.com/login/oauth/authorize?state=x", nil
}

func (f *fakeBackend) SignOut(context.Context) error {
	f.mu.Lock()
	f.session = nil
	f.signOuts++
	f.mu.Unlock()

	f.emit(client.AuthEvent{Kind: client.EventSignedOut})
	return nil
}

func (f *fakeBackend) SelectAll(context.Context) ([]models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.rows), nil
}

func (f *fakeBackend) Insert(_ context.Context, p models.Prompt) (models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.NewString()
	f.rows = append(f.rows, p)
	return p, nil
}

func (f *fakeBackend) UpdateByID(_ context.Context, id string, patch client.PromptPatch) (models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.Prompt{}, f.updateErr
	}
	i := slices.IndexFunc(f.rows, func(p models.Prompt) bool { return p.ID == id })
	if i < 0 {
		return models.Prompt{}, client.ErrNotFound
	}
	p := &f.rows[i]
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Model != nil {
		p.Model = *patch.Model
	}
	if patch.Tokens != nil {
		p.Tokens = *patch.Tokens
	}
	if patch.IsPublic != nil {
		p.IsPublic = *patch.IsPublic
	}
	if patch.IsFavorite != nil {
		p.IsFavorite = *patch.IsFavorite
	}
	return *p, nil
}

func (f *fakeBackend) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = slices.DeleteFunc(f.rows, func(p models.Prompt) bool { return p.ID == id })
	return nil
}

func (f *fakeBackend) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeBackend) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func (f *fakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

var errOffline = errors.New("connection refused")

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func samplePrompts() []models.Prompt {
	return []models.Prompt{
		{
			ID: "11111111-1111-1111-1111-111111111111", Title: "Ofício de requisição", Content: "Redija um ofício",
			Category: models.CategoryAdministration, Model: models.ModelGPT, Tokens: 3, CreatedAt: t0.Add(2 * time.Hour),
		},
		{
			ID: "22222222-2222-2222-2222-222222222222", Title: "Resumo de depoimento", Content: "Resuma o depoimento",
			Category: models.CategoryInquiry, Model: models.ModelClaude, Tokens: 4, CreatedAt: t0.Add(time.Hour),
			IsFavorite: true,
		},
		{
			ID: "33333333-3333-3333-3333-333333333333", Title: "Modelo de BO", Content: "Estruture um boletim",
			Category: models.CategoryIncident, Model: models.ModelGemini, Tokens: 4, CreatedAt: t0, IsPublic: true,
		},
	}
}

// testApp builds an App over b with scripted input. Output is uncolored.
func testApp(t *testing.T, b *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	origPW := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte("pw"), nil }
	t.Cleanup(func() { getPassword = origPW })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	a := newApp(cfg, b, nil, strings.NewReader(input), &out)
	a.session.Start(context.Background())
	t.Cleanup(a.session.Close)
	return a, &out
}

// signedInApp builds an App whose user is already signed in with b's rows
// loaded on the dashboard.
func signedInApp(t *testing.T, b *fakeBackend, input string) (*App, *bytes.Buffer) {
	t.Helper()
	b.session = &client.Session{AccessToken: "a", RefreshToken: "r", User: client.User{ID: "u-ana", Email: "ana@pc.gov"}}
	a, out := testApp(t, b, input)
	a.session.RestoreSession(context.Background())
	a.render()
	out.Reset()
	return a, out
}
