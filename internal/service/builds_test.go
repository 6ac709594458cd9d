package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zyexro/kernelbot/internal/build"
	"github.com/zyexro/kernelbot/internal/ghactions"
)

type fakeActions struct {
	dispatchErr error
	gotInputs   map[string]string
	dispatches  int

	run      ghactions.Run
	runOK    bool
	runsErr  error
	runCalls int
}

func (f *fakeActions) Dispatch(_ context.Context, inputs map[string]string) error {
	f.dispatches++
	f.gotInputs = inputs
	return f.dispatchErr
}

func (f *fakeActions) LatestRun(_ context.Context) (ghactions.Run, bool, error) {
	f.runCalls++
	return f.run, f.runOK, f.runsErr
}

func newBuilds(gh *fakeActions) (*Builds, build.Store) {
	store := build.NewMemoryStore()
	return &Builds{GH: gh, Store: store, Recipient: "777"}, store
}

func TestTriggerSuccessWithRunLink(t *testing.T) {
	gh := &fakeActions{
		run:   ghactions.Run{HTMLURL: "https://github.com/zyexro/kernel_builder/actions/runs/9"},
		runOK: true,
	}
	builds, store := newBuilds(gh)

	cfg := build.DefaultConfig()
	ok, msg := builds.Trigger(context.Background(), 42, cfg)

	if !ok {
		t.Fatalf("Trigger failed: %s", msg)
	}
	if !strings.Contains(msg, "https://github.com/zyexro/kernel_builder/actions/runs/9") {
		t.Errorf("message missing run link: %q", msg)
	}
	if gh.dispatches != 1 {
		t.Errorf("dispatches = %d, want exactly 1", gh.dispatches)
	}
	if gh.gotInputs["TG_RECIPIENT"] != "777" {
		t.Errorf("recipient not forwarded: %v", gh.gotInputs)
	}

	record, found := store.Get(42)
	if !found {
		t.Fatal("build not recorded")
	}
	if record.Status != build.StatusRunning {
		t.Errorf("Status = %q, want running", record.Status)
	}
	if record.Config.Compiler != cfg.Compiler {
		t.Errorf("recorded config mismatch: %+v", record.Config)
	}
}

func TestTriggerSuccessRunListFails(t *testing.T) {
	gh := &fakeActions{runsErr: errors.New("runs unavailable")}
	builds, store := newBuilds(gh)

	ok, msg := builds.Trigger(context.Background(), 42, build.DefaultConfig())

	if !ok {
		t.Fatal("run-list failure must not downgrade a 204 dispatch")
	}
	if !strings.Contains(msg, "triggered successfully") {
		t.Errorf("want generic acknowledgment, got %q", msg)
	}
	if _, found := store.Get(42); !found {
		t.Error("build must be recorded despite missing run link")
	}
}

func TestTriggerRemoteError(t *testing.T) {
	gh := &fakeActions{dispatchErr: &ghactions.RemoteError{Status: 401, Body: "Unauthorized"}}
	builds, store := newBuilds(gh)

	ok, msg := builds.Trigger(context.Background(), 42, build.DefaultConfig())

	if ok {
		t.Fatal("non-204 must fail the trigger")
	}
	if !strings.Contains(msg, "401") || !strings.Contains(msg, "Unauthorized") {
		t.Errorf("failure must carry status and body: %q", msg)
	}
	if _, found := store.Get(42); found {
		t.Error("failed dispatch must not record a build")
	}
}

func TestTriggerTransportError(t *testing.T) {
	gh := &fakeActions{dispatchErr: errors.New("connection refused")}
	builds, store := newBuilds(gh)

	ok, msg := builds.Trigger(context.Background(), 42, build.DefaultConfig())

	if ok {
		t.Fatal("transport failure must fail the trigger")
	}
	if !strings.Contains(msg, "Error triggering workflow") {
		t.Errorf("unexpected failure text: %q", msg)
	}
	if _, found := store.Get(42); found {
		t.Error("failed dispatch must not record a build")
	}
}

func TestStatusNoActiveBuild(t *testing.T) {
	gh := &fakeActions{}
	builds, _ := newBuilds(gh)

	if _, found := builds.Status(context.Background(), 42); found {
		t.Fatal("unknown user must report no build")
	}
	if gh.runCalls != 0 {
		t.Errorf("no GitHub call expected without a recorded build, got %d", gh.runCalls)
	}
}

func TestStatusRendersLatestRun(t *testing.T) {
	gh := &fakeActions{
		run: ghactions.Run{
			Status:     "in_progress",
			Conclusion: "",
			HTMLURL:    "https://github.com/zyexro/kernel_builder/actions/runs/9",
		},
		runOK: true,
	}
	builds, store := newBuilds(gh)
	store.Put(build.ActiveBuild{UserID: 42, Status: build.StatusRunning})

	msg, found := builds.Status(context.Background(), 42)
	if !found {
		t.Fatal("recorded build must be found")
	}
	if !strings.Contains(msg, "In Progress") {
		t.Errorf("null conclusion must render as In Progress: %q", msg)
	}
	if !strings.Contains(msg, "runs/9") {
		t.Errorf("message missing run link: %q", msg)
	}
}

func TestStatusFetchError(t *testing.T) {
	gh := &fakeActions{runsErr: &ghactions.RemoteError{Status: 500, Body: "boom"}}
	builds, store := newBuilds(gh)
	store.Put(build.ActiveBuild{UserID: 42, Status: build.StatusRunning})

	msg, found := builds.Status(context.Background(), 42)
	if !found {
		t.Fatal("recorded build must be found")
	}
	if !strings.Contains(msg, "500") {
		t.Errorf("error reply must carry the status code: %q", msg)
	}
}
