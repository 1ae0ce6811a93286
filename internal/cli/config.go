package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/pipeline"
)

// configFileName is the config file looked up under the XDG config dir.
const configFileName = "config.toml"

// Config holds user defaults loaded from ~/.config/tidytree/config.toml.
// Every field is optional; flags override whatever the file sets.
//
// Example file:
//
//	layered = true
//	parent_child_margin = 48.0
//	peer_margin = 24.0
//	formats = ["svg", "json"]
//	detailed = false
type Config struct {
	Layered           *bool    `toml:"layered"`
	ParentChildMargin *float64 `toml:"parent_child_margin"`
	PeerMargin        *float64 `toml:"peer_margin"`
	Formats           []string `toml:"formats"`
	Detailed          *bool    `toml:"detailed"`
}

// loadConfig reads the user config file. A missing file is not an error and
// yields an empty config.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(path)
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	return cfg, nil
}

// apply copies the configured values onto pipeline options. Zero-valued
// option fields are filled; anything already set by a flag wins later via
// cobra, since apply runs before flag parsing assigns values.
func (cfg Config) apply(opts *pipeline.Options) {
	if cfg.Layered != nil {
		opts.Layered = *cfg.Layered
	}
	if cfg.ParentChildMargin != nil {
		opts.ParentChildMargin = *cfg.ParentChildMargin
	}
	if cfg.PeerMargin != nil {
		opts.PeerMargin = *cfg.PeerMargin
	}
	if len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
	if cfg.Detailed != nil {
		opts.Detailed = *cfg.Detailed
	}
}

// optionsFromConfig builds pipeline options seeded from the user config.
// Config parse failures surface as a warning rather than blocking the run.
func (c *CLI) optionsFromConfig() pipeline.Options {
	opts := pipeline.Options{
		ParentChildMargin: pipeline.DefaultParentChildMargin,
		PeerMargin:        pipeline.DefaultPeerMargin,
		Formats:           []string{pipeline.FormatSVG},
	}
	cfg, err := loadConfig()
	if err != nil {
		c.Logger.Warn("ignoring config file", "err", err)
		return opts
	}
	cfg.apply(&opts)
	return opts
}
