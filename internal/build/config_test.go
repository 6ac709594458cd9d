package build

import "testing"

func TestInputsRequiredAlwaysPresent(t *testing.T) {
	cfg := DefaultConfig()
	inputs := cfg.Inputs("")

	for _, key := range []string{"COMPILER", "KREPO", "KBRANCH", "CONTAINER"} {
		if _, ok := inputs[key]; !ok {
			t.Errorf("required input %s missing", key)
		}
	}
	for _, key := range []string{"NOTES", "KSU", "SUFFIX", "ZREPO", "ZBRANCH", "TG_RECIPIENT"} {
		if _, ok := inputs[key]; ok {
			t.Errorf("empty optional input %s must be omitted", key)
		}
	}
}

func TestInputsOptionalAndRecipient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Notes = "test build"
	cfg.KSU = "sus"

	inputs := cfg.Inputs("12345")

	if got := inputs["NOTES"]; got != "test build" {
		t.Errorf("NOTES = %q, want %q", got, "test build")
	}
	if got := inputs["KSU"]; got != "sus" {
		t.Errorf("KSU = %q, want %q", got, "sus")
	}
	if got := inputs["TG_RECIPIENT"]; got != "12345" {
		t.Errorf("TG_RECIPIENT = %q, want %q", got, "12345")
	}
	if _, ok := inputs["SUFFIX"]; ok {
		t.Error("SUFFIX must be omitted when empty")
	}
	if len(inputs) != 7 {
		t.Errorf("inputs size = %d, want 7", len(inputs))
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := Config{Compiler: "my-clang"}
	cfg.Normalize()

	if cfg.Compiler != "my-clang" {
		t.Errorf("Compiler overwritten: %q", cfg.Compiler)
	}
	def := DefaultConfig()
	if cfg.KernelRepo != def.KernelRepo {
		t.Errorf("KernelRepo = %q, want default", cfg.KernelRepo)
	}
	if cfg.Container != def.Container {
		t.Errorf("Container = %q, want default", cfg.Container)
	}
	if cfg.Notes != "" {
		t.Errorf("Notes must stay empty, got %q", cfg.Notes)
	}
}
