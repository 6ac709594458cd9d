package ghactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{
		APIBase:  srv.URL,
		Token:    "test-token",
		Owner:    "zyexro",
		Repo:     "kernel_builder",
		Workflow: "main.yml",
		Ref:      "enanan",
	}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return New(cfg), srv
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Token: "tok"}
	if err := cfg.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Owner != "zyexro" || cfg.Repo != "kernel_builder" {
		t.Errorf("repo defaults not applied: %s/%s", cfg.Owner, cfg.Repo)
	}
	if cfg.Workflow != "main.yml" || cfg.Ref != "enanan" {
		t.Errorf("workflow defaults not applied: %s@%s", cfg.Workflow, cfg.Ref)
	}

	empty := Config{}
	if err := empty.Normalize(); err == nil {
		t.Error("Normalize must reject empty token")
	}
}

func TestDispatchSuccess(t *testing.T) {
	var gotPath, gotAuth, gotAccept string
	var gotPayload struct {
		Ref    string            `json:"ref"`
		Inputs map[string]string `json:"inputs"`
	}

	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	inputs := map[string]string{"COMPILER": "Geopelia-Clang-20", "KREPO": "r", "KBRANCH": "b", "CONTAINER": "fedora:40"}
	if err := client.Dispatch(context.Background(), inputs); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if want := "/repos/zyexro/kernel_builder/actions/workflows/main.yml/dispatches"; gotPath != want {
		t.Errorf("path = %s, want %s", gotPath, want)
	}
	if gotAuth != "token test-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccept != acceptHeader {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotPayload.Ref != "enanan" {
		t.Errorf("ref = %q, want enanan", gotPayload.Ref)
	}
	if gotPayload.Inputs["COMPILER"] != "Geopelia-Clang-20" {
		t.Errorf("inputs not forwarded: %v", gotPayload.Inputs)
	}
}

func TestDispatchRemoteError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))

	err := client.Dispatch(context.Background(), nil)
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("want *RemoteError, got %v", err)
	}
	if remote.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", remote.Status)
	}
	if remote.Body != `{"message":"Bad credentials"}` {
		t.Errorf("Body = %q", remote.Body)
	}
}

func TestDispatchTransportError(t *testing.T) {
	client, srv := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := client.Dispatch(context.Background(), nil)
	if err == nil {
		t.Fatal("want transport error")
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		t.Error("transport failure must not be a RemoteError")
	}
}

func TestLatestRun(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/zyexro/kernel_builder/actions/runs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"workflow_runs":[
			{"id":2,"status":"in_progress","conclusion":null,"html_url":"https://github.com/zyexro/kernel_builder/actions/runs/2"},
			{"id":1,"status":"completed","conclusion":"success","html_url":"https://github.com/zyexro/kernel_builder/actions/runs/1"}
		]}`))
	}))

	run, ok, err := client.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if !ok {
		t.Fatal("want a run")
	}
	if run.ID != 2 || run.Status != "in_progress" || run.Conclusion != "" {
		t.Errorf("unexpected run %+v", run)
	}
	if run.HTMLURL != "https://github.com/zyexro/kernel_builder/actions/runs/2" {
		t.Errorf("HTMLURL = %q", run.HTMLURL)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"workflow_runs":[]}`))
	}))

	_, ok, err := client.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if ok {
		t.Error("empty run list must report ok=false")
	}
}
