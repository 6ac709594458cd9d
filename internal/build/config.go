// Package build holds the kernel build configuration collected from a
// user conversation and the per-user record of dispatched builds.
package build

// Config carries the workflow inputs for a single kernel build.
// Required fields are always dispatched; optional fields are dispatched
// only when non-empty.
type Config struct {
	Compiler     string `yaml:"compiler" envconfig:"BUILD_COMPILER"`
	KernelRepo   string `yaml:"kernel_repo" envconfig:"BUILD_KERNEL_REPO"`
	KernelBranch string `yaml:"kernel_branch" envconfig:"BUILD_KERNEL_BRANCH"`
	Container    string `yaml:"container" envconfig:"BUILD_CONTAINER"`

	Notes     string `yaml:"notes"`
	Suffix    string `yaml:"suffix"`
	ZipRepo   string `yaml:"zip_repo"`
	ZipBranch string `yaml:"zip_branch"`
	KSU       string `yaml:"ksu"`
}

// DefaultConfig returns the stock build parameters used to seed a new
// conversation. Optional fields start empty.
func DefaultConfig() Config {
	return Config{
		Compiler:     "Geopelia-Clang-20",
		KernelRepo:   "https://github.com/TelegramAt25/niigo_kernel_xiaomi_blossom",
		KernelBranch: "yoka",
		Container:    "fedora:40",
	}
}

// Normalize fills zero-value required fields from the stock defaults.
// Lets deployments override only part of the default set in YAML.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Compiler == "" {
		c.Compiler = def.Compiler
	}
	if c.KernelRepo == "" {
		c.KernelRepo = def.KernelRepo
	}
	if c.KernelBranch == "" {
		c.KernelBranch = def.KernelBranch
	}
	if c.Container == "" {
		c.Container = def.Container
	}
}

// Inputs assembles the workflow_dispatch input map. Required inputs are
// always present; optional inputs only when set; recipient is appended
// when the deployment configured one.
func (c Config) Inputs(recipient string) map[string]string {
	inputs := map[string]string{
		"COMPILER":  c.Compiler,
		"KREPO":     c.KernelRepo,
		"KBRANCH":   c.KernelBranch,
		"CONTAINER": c.Container,
	}
	if c.Notes != "" {
		inputs["NOTES"] = c.Notes
	}
	if c.KSU != "" {
		inputs["KSU"] = c.KSU
	}
	if c.Suffix != "" {
		inputs["SUFFIX"] = c.Suffix
	}
	if c.ZipRepo != "" {
		inputs["ZREPO"] = c.ZipRepo
	}
	if c.ZipBranch != "" {
		inputs["ZBRANCH"] = c.ZipBranch
	}
	if recipient != "" {
		inputs["TG_RECIPIENT"] = recipient
	}
	return inputs
}
