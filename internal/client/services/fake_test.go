package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/promptbook/internal/client/client"
	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

type updateCall struct {
	ID    string
	Patch client.PromptPatch
}

// fakeRemote is an in-memory client.RemoteStore that records every call.
type fakeRemote struct {
	mu sync.Mutex

	session    *client.Session
	sessionErr error
	handlers   map[int]func(client.AuthEvent)
	nextID     int

	signInErr  error
	signUpErr  error
	signOutErr error
	signIns    int
	signOuts   int

	rows      []models.Prompt
	selectErr error
	// selectHook runs before SelectAll answers; it may block.
	selectHook func(call int) []models.Prompt
	selects    int

	inserted  []models.Prompt
	insertRet models.Prompt
	insertErr error

	updates   []updateCall
	updateRet models.Prompt
	updateErr error
	// updateHook runs before UpdateByID answers; it may block.
	updateHook func()

	deleted   []string
	deleteErr error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{handlers: make(map[int]func(client.AuthEvent))}
}

func (f *fakeRemote) signedInAs(id, email string) *fakeRemote {
	f.session = &client.Session{AccessToken: "access", RefreshToken: "refresh", User: client.User{ID: id, Email: email}}
	return f
}

// emit delivers ev to every subscriber synchronously.
func (f *fakeRemote) emit(ev client.AuthEvent) {
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

func (f *fakeRemote) subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

func (f *fakeRemote) dataCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selects + len(f.inserted) + len(f.updates) + len(f.deleted)
}

func (f *fakeRemote) GetSession(context.Context) (*client.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session == nil {
		return nil, f.sessionErr
	}
	cp := *f.session
	return &cp, f.sessionErr
}

func (f *fakeRemote) OnAuthStateChange(h func(client.AuthEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.handlers[id] = h
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

func (f *fakeRemote) SignInWithPassword(_ context.Context, email, _ string) (*client.User, error) {
	f.mu.Lock()
	f.signIns++
	if f.signInErr != nil {
		f.mu.Unlock()
		return nil, f.signInErr
	}
	f.session = &client.Session{AccessToken: "access", User: client.User{ID: "user-" + email, Email: email}}
	sess := *f.session
	f.mu.Unlock()

	f.emit(client.AuthEvent{Kind: client.EventSignedIn, Session: &sess})
	return &sess.User, nil
}

func (f *fakeRemote) SignUp(_ context.Context, email, _ string) (*client.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &client.User{ID: "new-" + email, Email: email}, nil
}

func (f *fakeRemote) SignInWithOAuth(_ context.Context, provider, redirectTo string) (string, error) {
	return "https://auth.example.com/" + provider + "?redirect_to=" + redirectTo, nil
}

func (f *fakeRemote) SignOut(context.Context) error {
	f.mu.Lock()
	f.signOuts++
	if f.signOutErr != nil {
		f.mu.Unlock()
		return f.signOutErr
	}
	f.session = nil
	f.mu.Unlock()

	f.emit(client.AuthEvent{Kind: client.EventSignedOut})
	return nil
}

func (f *fakeRemote) SelectAll(context.Context) ([]models.Prompt, error) {
	f.mu.Lock()
	f.selects++
	call := f.selects
	hook := f.selectHook
	rows := append([]models.Prompt(nil), f.rows...)
	err := f.selectErr
	f.mu.Unlock()

	if hook != nil {
		rows = hook(call)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (f *fakeRemote) Insert(_ context.Context, p models.Prompt) (models.Prompt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, p)
	return f.insertRet, f.insertErr
}

func (f *fakeRemote) UpdateByID(_ context.Context, id string, patch client.PromptPatch) (models.Prompt, error) {
	f.mu.Lock()
	f.updates = append(f.updates, updateCall{ID: id, Patch: patch})
	hook := f.updateHook
	ret, err := f.updateRet, f.updateErr
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return ret, err
}

func (f *fakeRemote) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

// core wires the client core around remote the way the CLI does.
type core struct {
	state   *State
	nav     *Navigator
	prompts *PromptStore
	session *SessionController
}

func newCore(remote client.RemoteStore) core {
	state := NewState()
	nav := NewNavigator(state)
	prompts := NewPromptStore(remote, state, nav, nil)
	return core{
		state:   state,
		nav:     nav,
		prompts: prompts,
		session: NewSessionController(remote, prompts, state, nav, nil),
	}
}
