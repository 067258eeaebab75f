package converter

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/texsvg/pkg/cache"
)

// DefaultCommand is the renderer used when no configuration is given. It is
// the tex2svg script of mathjax-node-cli, which prints one <svg> element.
var DefaultCommand = []string{"tex2svg"}

// Macro is a TeX macro definition with its argument count.
type Macro struct {
	Body string `toml:"body"`
	Args int    `toml:"args"`
}

// Config is process-wide renderer configuration. Build it once at startup
// and treat it as read-only afterwards.
type Config struct {
	// Command is the renderer executable and its fixed arguments.
	Command []string `toml:"command"`

	// InlineArgs and DisplayArgs are appended for inline and display mode.
	InlineArgs  []string `toml:"inline_args"`
	DisplayArgs []string `toml:"display_args"`

	// Macros are defined before every expression.
	Macros map[string]Macro `toml:"macros"`
}

// DefaultConfig returns the built-in configuration, including the
// quantum-mechanics bra-ket macros.
func DefaultConfig() Config {
	return Config{
		Command:    slices.Clone(DefaultCommand),
		InlineArgs: []string{"--inline"},
		Macros: map[string]Macro{
			"bra":    {Body: `{\langle {#1} \vert}`, Args: 1},
			"ket":    {Body: `{\vert {#1} \rangle}`, Args: 1},
			"Bra":    {Body: `{\left\langle {#1} \right\vert}`, Args: 1},
			"Ket":    {Body: `{\left\vert {#1} \right\rangle}`, Args: 1},
			"ketbra": {Body: `{\vert {#1} \rangle \langle {#2} \vert}`, Args: 2},
			"Ketbra": {Body: `{\left\vert {#1} \right\rangle \left\langle {#2} \right\vert}`, Args: 2},
		},
	}
}

// LoadConfig reads a TOML configuration file. Fields missing from the file
// keep their DefaultConfig values; a [macros] table in the file is merged
// over the default macros.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file Config
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse config %s: unknown key %q", path, undecoded[0].String())
	}

	if md.IsDefined("command") {
		cfg.Command = file.Command
	}
	if md.IsDefined("inline_args") {
		cfg.InlineArgs = file.InlineArgs
	}
	if md.IsDefined("display_args") {
		cfg.DisplayArgs = file.DisplayArgs
	}
	for name, m := range file.Macros {
		cfg.Macros[name] = m
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration can drive a renderer.
func (c Config) Validate() error {
	if len(c.Command) == 0 || c.Command[0] == "" {
		return fmt.Errorf("converter command is required")
	}
	for name, m := range c.Macros {
		if name == "" || strings.ContainsAny(name, `\{} `) {
			return fmt.Errorf("invalid macro name %q", name)
		}
		if m.Args < 0 || m.Args > 9 {
			return fmt.Errorf("macro %s: args must be between 0 and 9, got %d", name, m.Args)
		}
	}
	return nil
}

// Preamble renders the macros as \newcommand definitions in name order.
func (c Config) Preamble() string {
	names := make([]string, 0, len(c.Macros))
	for name := range c.Macros {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	for _, name := range names {
		m := c.Macros[name]
		if m.Args > 0 {
			fmt.Fprintf(&b, `\newcommand{\%s}[%d]{%s}`, name, m.Args, m.Body)
		} else {
			fmt.Fprintf(&b, `\newcommand{\%s}{%s}`, name, m.Body)
		}
	}
	return b.String()
}

// Args returns the full argument vector for rendering math. The math is the
// last argument and follows "--", so input such as "-x" is not read as a flag.
func (c Config) Args(math string, display bool) []string {
	args := slices.Clone(c.Command[1:])
	if display {
		args = append(args, c.DisplayArgs...)
	} else {
		args = append(args, c.InlineArgs...)
	}
	return append(args, "--", c.Preamble()+math)
}

// Fingerprint identifies the configuration for cache keys.
func (c Config) Fingerprint() string {
	var b strings.Builder
	b.WriteString(strings.Join(c.Command, "\x00"))
	b.WriteString("\x01")
	b.WriteString(strings.Join(c.InlineArgs, "\x00"))
	b.WriteString("\x01")
	b.WriteString(strings.Join(c.DisplayArgs, "\x00"))
	b.WriteString("\x01")
	b.WriteString(c.Preamble())
	return cache.Hash([]byte(b.String()))[:16]
}
