package build

import "fmt"

// Step describes one field of the guided configuration flow.
type Step struct {
	// Name is the FSM state suffix and stable identifier for logs.
	Name string
	// Label is the human-facing field name used in prompts and echoes.
	Label string
	// Hint follows the current-value line in the prompt.
	Hint string
	// Optional fields accept "skip" to clear; required ones accept any
	// non-token text as the new value.
	Optional bool

	Get func(*Config) string
	Set func(*Config, string)
}

// Flow returns the ordered configuration steps. The order matches the
// conversation: required fields first, then the optional extras.
func Flow() []Step {
	return []Step{
		{
			Name:  "compiler",
			Label: "Compiler",
			Hint:  "Enter the compiler to use, or send 'default' to use the current value:",
			Get:   func(c *Config) string { return c.Compiler },
			Set:   func(c *Config, v string) { c.Compiler = v },
		},
		{
			Name:  "kernel_repo",
			Label: "Kernel Repository",
			Hint:  "Enter the kernel repository URL, or send 'default':",
			Get:   func(c *Config) string { return c.KernelRepo },
			Set:   func(c *Config, v string) { c.KernelRepo = v },
		},
		{
			Name:  "kernel_branch",
			Label: "Kernel Branch",
			Hint:  "Enter the kernel branch, or send 'default':",
			Get:   func(c *Config) string { return c.KernelBranch },
			Set:   func(c *Config, v string) { c.KernelBranch = v },
		},
		{
			Name:  "container",
			Label: "Container Image",
			Hint:  "Enter the container image, or send 'default':",
			Get:   func(c *Config) string { return c.Container },
			Set:   func(c *Config, v string) { c.Container = v },
		},
		{
			Name:     "notes",
			Label:    "Notes",
			Hint:     "Enter notes for this build, or send 'skip':",
			Optional: true,
			Get:      func(c *Config) string { return c.Notes },
			Set:      func(c *Config, v string) { c.Notes = v },
		},
		{
			Name:     "ksu",
			Label:    "KernelSU Patching",
			Hint:     "Options:\n• `both` - Build without and with KernelSU\n• `sus` - Apply KernelSU and SuSFS patches\n• `ksu` - Apply only KernelSU patches\n• `skip` - No KernelSU patching\n\nEnter your choice:",
			Optional: true,
			Get:      func(c *Config) string { return c.KSU },
			Set:      func(c *Config, v string) { c.KSU = v },
		},
	}
}

// Apply parses the reply for this step and applies it to cfg.
func (s Step) Apply(cfg *Config, reply string) {
	switch o := ParseReply(reply, s.Optional); o.Kind {
	case OverrideKeep:
	case OverrideClear:
		s.Set(cfg, "")
	case OverrideSet:
		s.Set(cfg, o.Value)
	}
}

// PromptText renders the prompt for this step against the current
// configuration: field label, current value, and the input hint.
func (s Step) PromptText(cfg *Config) string {
	current := s.Get(cfg)
	if current == "" {
		current = "None"
	}
	return fmt.Sprintf("**%s** (current: `%s`)\n%s", s.Label, current, s.Hint)
}
