package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/promptbook/internal/client/models"
)

func TestCheckOnline_FlipsMode(t *testing.T) {
	b := newFakeBackend()
	a, _ := testApp(t, b, "")
	ctx := context.Background()

	assert.Equal(t, Mode(""), a.Mode())

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.Mode())

	b.setPingErr(errOffline)
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.Mode())
}

func TestStartOnlineStatusWatcher_StopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	b := newFakeBackend()
	a, _ := testApp(t, b, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return a.Mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	b.setPingErr(errOffline)
	require.Eventually(t, func() bool { return a.Mode() == ModeOffline }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}

	// a zero interval disables the watcher
	a.StartOnlineStatusWatcher(context.Background(), 0)
}

func TestGetStatus(t *testing.T) {
	b := newFakeBackend().withRows(samplePrompts()...)
	a, _ := testApp(t, b, "")
	assert.Equal(t, "(login)", a.getStatus())

	a, _ = signedInApp(t, b, "")
	a.setMode(ModeOnline)
	assert.Equal(t, "(ana dashboard online)", a.getStatus())
}

func TestCommandContext(t *testing.T) {
	a, _ := testApp(t, newFakeBackend(), "")

	ctx, cancel := a.commandContext(context.Background())
	_, ok := ctx.Deadline()
	cancel()
	assert.False(t, ok, "no timeout configured")

	a.config.RequestTimeout = time.Minute
	ctx, cancel = a.commandContext(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestRun_RestoresSessionAndExits(t *testing.T) {
	b := newFakeBackend().withRows(samplePrompts()...)
	b.session = nil
	a, out := testApp(t, b, "login\nana@pc.gov\nlist\nexit\n")

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	a.Run(ctx)

	assert.True(t, b.closed)
	assert.False(t, a.session.Loading())
	assert.Equal(t, models.ViewLanding, a.state.View())
	assert.Contains(t, out.String(), "Login successful")
	assert.Contains(t, out.String(), "Dashboard (3 of 3)")
}
