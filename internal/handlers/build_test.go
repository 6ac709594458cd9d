package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/zyexro/kernelbot/core/telegram/state"
	"github.com/zyexro/kernelbot/internal/build"
	"github.com/zyexro/kernelbot/internal/ghactions"
	"github.com/zyexro/kernelbot/internal/service"

	tele "gopkg.in/telebot.v4"
)

// stubContext implements just enough of tele.Context for conversation
// handlers; unimplemented methods panic via the embedded nil interface.
type stubContext struct {
	tele.Context
	sender *tele.User
	text   string
	store  map[string]interface{}
	sent   []string
	edited []string
}

func newStubContext(userID int64) *stubContext {
	return &stubContext{
		sender: &tele.User{ID: userID},
		store:  make(map[string]interface{}),
	}
}

func (s *stubContext) Sender() *tele.User  { return s.sender }
func (s *stubContext) Chat() *tele.Chat    { return nil }
func (s *stubContext) Update() tele.Update { return tele.Update{} }
func (s *stubContext) Text() string        { return s.text }

func (s *stubContext) Get(key string) interface{}      { return s.store[key] }
func (s *stubContext) Set(key string, val interface{}) { s.store[key] = val }

func (s *stubContext) Send(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		s.sent = append(s.sent, text)
	}
	return nil
}

func (s *stubContext) EditOrSend(what interface{}, _ ...interface{}) error {
	if text, ok := what.(string); ok {
		s.edited = append(s.edited, text)
	}
	return nil
}

type fakeActions struct {
	dispatches int
}

func (f *fakeActions) Dispatch(_ context.Context, _ map[string]string) error {
	f.dispatches++
	return nil
}

func (f *fakeActions) LatestRun(_ context.Context) (ghactions.Run, bool, error) {
	return ghactions.Run{}, false, nil
}

func newTestHandlers() (*Handlers, *fakeActions, state.Manager) {
	gh := &fakeActions{}
	states := state.NewMemoryManager()
	builds := &service.Builds{GH: gh, Store: build.NewMemoryStore()}
	return New(states, builds, build.DefaultConfig()), gh, states
}

func TestConfirmBuildDispatchesOnce(t *testing.T) {
	h, gh, states := newTestHandlers()
	c := newStubContext(42)

	h.saveSessionConfig(42, build.DefaultConfig())
	states.SetState(42, stateConfirm)

	if err := h.ConfirmBuild(c); err != nil {
		t.Fatalf("ConfirmBuild: %v", err)
	}
	if gh.dispatches != 1 {
		t.Fatalf("dispatches = %d, want 1", gh.dispatches)
	}
	if states.InProgress(42) {
		t.Error("state must be cleared before dispatch")
	}
	if len(c.edited) != 1 || !strings.Contains(c.edited[0], "Build Started") {
		t.Errorf("unexpected reply: %v", c.edited)
	}

	// A second press of the stale button must not dispatch again.
	if err := h.ConfirmBuild(c); err != nil {
		t.Fatalf("second ConfirmBuild: %v", err)
	}
	if gh.dispatches != 1 {
		t.Errorf("dispatches = %d, stale confirm must be a no-op", gh.dispatches)
	}
	if len(c.edited) != 2 || !strings.Contains(c.edited[1], "no longer active") {
		t.Errorf("stale confirm must be answered politely: %v", c.edited)
	}
}

func TestConfirmBuildWithoutConversation(t *testing.T) {
	h, gh, _ := newTestHandlers()
	c := newStubContext(42)

	if err := h.ConfirmBuild(c); err != nil {
		t.Fatalf("ConfirmBuild: %v", err)
	}
	if gh.dispatches != 0 {
		t.Errorf("dispatches = %d, want 0 without an active confirmation", gh.dispatches)
	}
}

func TestCancelRestartsFromDefaults(t *testing.T) {
	h, _, states := newTestHandlers()
	c := newStubContext(42)

	if err := h.BuildStart(c); err != nil {
		t.Fatalf("BuildStart: %v", err)
	}
	flow := build.Flow()
	if got := states.GetState(42); got != stateFor(flow[0]) {
		t.Fatalf("state = %s, want %s", got, stateFor(flow[0]))
	}

	// Customize the first field, then abort.
	c.text = "my-clang"
	if err := h.stepHandler(flow[0], &flow[1])(c); err != nil {
		t.Fatalf("step: %v", err)
	}
	if cfg := h.sessionConfig(42); cfg.Compiler != "my-clang" {
		t.Fatalf("Compiler = %q, want my-clang", cfg.Compiler)
	}

	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if states.InProgress(42) {
		t.Error("cancel must leave the conversation idle")
	}

	// A fresh /build starts from the defaults, not the discarded record.
	if err := h.BuildStart(c); err != nil {
		t.Fatalf("second BuildStart: %v", err)
	}
	if cfg := h.sessionConfig(42); cfg.Compiler != build.DefaultConfig().Compiler {
		t.Errorf("Compiler = %q, want default after restart", cfg.Compiler)
	}
}

func TestCancelWithoutConversation(t *testing.T) {
	h, _, _ := newTestHandlers()
	c := newStubContext(42)

	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(c.sent) != 1 || !strings.Contains(c.sent[0], "Nothing to cancel") {
		t.Errorf("unexpected reply: %v", c.sent)
	}
}
