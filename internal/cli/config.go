package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/macrofor/pkg/errors"
	"github.com/matzehuels/macrofor/pkg/fortran/style"
	"github.com/matzehuels/macrofor/pkg/pipeline"
	"github.com/matzehuels/macrofor/pkg/program"
)

// Config holds user defaults read from the config file.
// Program descriptions and command flags take precedence over it.
type Config struct {
	Style           string `toml:"style"`
	LineEnding      string `toml:"line_ending"`
	Encoding        string `toml:"encoding"`
	MaxLineLength   *int   `toml:"max_line_length"`
	AllowUnresolved bool   `toml:"allow_unresolved"`
}

// configPath returns the explicit path if set, else the XDG location.
func (c *CLI) configPath() (path string, explicit bool, err error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, true, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, configFileName), false, nil
}

// loadConfig reads the config file. A missing default file yields an empty
// config; a missing explicit file is an error.
func (c *CLI) loadConfig() (Config, error) {
	path, explicit, err := c.configPath()
	if err != nil {
		return Config{}, nil
	}
	cfg, err := readConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
			return Config{}, nil
		}
		return Config{}, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

func readConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Options returns the config as run options.
func (cfg Config) Options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Style:           cfg.Style,
		Encoding:        cfg.Encoding,
		MaxLineLength:   cfg.MaxLineLength,
		AllowUnresolved: cfg.AllowUnresolved,
	}
	if cfg.LineEnding != "" {
		le, err := pipeline.ParseLineEnding(cfg.LineEnding)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.LineEnding = le
	}
	return opts, nil
}

// mergeOptions overlays the set fields of over onto base. A budget set
// for one dialect is dropped when over switches to the other.
func mergeOptions(base, over pipeline.Options) pipeline.Options {
	if over.Style != "" {
		if !sameDialect(base.Style, over.Style) {
			base.MaxLineLength = nil
		}
		base.Style = over.Style
	}
	if over.Encoding != "" {
		base.Encoding = over.Encoding
	}
	if over.LineEnding != "" {
		base.LineEnding = over.LineEnding
	}
	if over.MaxLineLength != nil {
		base.MaxLineLength = over.MaxLineLength
	}
	if over.AllowUnresolved {
		base.AllowUnresolved = true
	}
	return base
}

// sameDialect reports whether two style names select the same dialect.
// An empty name stands for the process default; an unknown name matches nothing.
func sameDialect(a, b string) bool {
	da, ok := dialectOf(a)
	if !ok {
		return false
	}
	db, ok := dialectOf(b)
	return ok && da == db
}

func dialectOf(name string) (style.Dialect, bool) {
	if name == "" {
		return style.Current().Dialect, true
	}
	p, err := style.Select(name)
	if err != nil {
		return 0, false
	}
	return p.Dialect, true
}

// resolveOptions layers config, program file and flags, in that order.
func (c *CLI) resolveOptions(f *program.File, flags runFlags) (pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return pipeline.Options{}, err
	}
	fileOpts, err := f.Options()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts = mergeOptions(opts, fileOpts)

	flagOpts, err := flags.options()
	if err != nil {
		return pipeline.Options{}, err
	}
	opts = mergeOptions(opts, flagOpts)
	opts.Logger = c.Logger
	return opts, nil
}
