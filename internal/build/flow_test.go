package build

import (
	"strings"
	"testing"
)

func TestParseReplyTokens(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		optional bool
		want     Override
	}{
		{"default keeps", "default", false, Override{Kind: OverrideKeep}},
		{"default mixed case", "DeFaUlT", false, Override{Kind: OverrideKeep}},
		{"default padded", "  default  ", false, Override{Kind: OverrideKeep}},
		{"skip clears optional", "skip", true, Override{Kind: OverrideClear}},
		{"skip upper clears optional", "SKIP", true, Override{Kind: OverrideClear}},
		{"skip is literal on required", "skip", false, Override{Kind: OverrideSet, Value: "skip"}},
		{"value trimmed", "  my-clang  ", false, Override{Kind: OverrideSet, Value: "my-clang"}},
		{"empty keeps required", "", false, Override{Kind: OverrideKeep}},
		{"empty clears optional", "", true, Override{Kind: OverrideClear}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseReply(tc.text, tc.optional)
			if got != tc.want {
				t.Errorf("ParseReply(%q, %v) = %+v, want %+v", tc.text, tc.optional, got, tc.want)
			}
		})
	}
}

// Walks the full flow with the replies of a typical session and checks
// the resulting dispatch inputs.
func TestFlowScenario(t *testing.T) {
	cfg := DefaultConfig()
	replies := map[string]string{
		"compiler":      "default",
		"kernel_repo":   "https://github.com/example/kernel",
		"kernel_branch": "main",
		"container":     "default",
		"notes":         "nightly",
		"ksu":           "skip",
	}

	for _, step := range Flow() {
		reply, ok := replies[step.Name]
		if !ok {
			t.Fatalf("no scripted reply for step %s", step.Name)
		}
		step.Apply(&cfg, reply)
	}

	if cfg.Compiler != DefaultConfig().Compiler {
		t.Errorf("Compiler = %q, want default kept", cfg.Compiler)
	}
	if cfg.KernelRepo != "https://github.com/example/kernel" {
		t.Errorf("KernelRepo = %q", cfg.KernelRepo)
	}
	if cfg.KernelBranch != "main" {
		t.Errorf("KernelBranch = %q", cfg.KernelBranch)
	}
	if cfg.Container != "fedora:40" {
		t.Errorf("Container = %q, want fedora:40", cfg.Container)
	}
	if cfg.Notes != "nightly" {
		t.Errorf("Notes = %q", cfg.Notes)
	}
	if cfg.KSU != "" {
		t.Errorf("KSU = %q, want cleared", cfg.KSU)
	}

	inputs := cfg.Inputs("")
	if _, ok := inputs["KSU"]; ok {
		t.Error("skipped KSU must not appear in inputs")
	}
	if inputs["NOTES"] != "nightly" {
		t.Errorf("NOTES input = %q", inputs["NOTES"])
	}
}

// All-defaults session with notes and a KSU choice: the dispatched
// inputs must be exactly the four required fields plus the two extras.
func TestFlowAllDefaultsWithExtras(t *testing.T) {
	cfg := DefaultConfig()
	replies := []string{"default", "default", "default", "default", "my notes", "both"}

	for i, step := range Flow() {
		step.Apply(&cfg, replies[i])
	}

	inputs := cfg.Inputs("")
	want := map[string]string{
		"COMPILER":  "Geopelia-Clang-20",
		"KREPO":     DefaultConfig().KernelRepo,
		"KBRANCH":   "yoka",
		"CONTAINER": "fedora:40",
		"NOTES":     "my notes",
		"KSU":       "both",
	}
	if len(inputs) != len(want) {
		t.Fatalf("inputs = %v, want exactly %d keys", inputs, len(want))
	}
	for k, v := range want {
		if inputs[k] != v {
			t.Errorf("inputs[%s] = %q, want %q", k, inputs[k], v)
		}
	}
}

func TestFlowOrderAndPrompts(t *testing.T) {
	steps := Flow()
	wantOrder := []string{"compiler", "kernel_repo", "kernel_branch", "container", "notes", "ksu"}

	if len(steps) != len(wantOrder) {
		t.Fatalf("flow has %d steps, want %d", len(steps), len(wantOrder))
	}
	for i, step := range steps {
		if step.Name != wantOrder[i] {
			t.Errorf("step[%d] = %s, want %s", i, step.Name, wantOrder[i])
		}
	}

	cfg := DefaultConfig()
	prompt := steps[0].PromptText(&cfg)
	if !strings.Contains(prompt, "Geopelia-Clang-20") {
		t.Errorf("compiler prompt missing current value: %q", prompt)
	}

	// Optional empty fields advertise None.
	notes := steps[4].PromptText(&cfg)
	if !strings.Contains(notes, "`None`") {
		t.Errorf("notes prompt should show None placeholder: %q", notes)
	}
}
