// Package config resolves the workshop's settings from defaults, an
// optional TOML file and the environment. Flags are layered on top by the
// command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hammamikhairi/alchemy/internal/chat"
	"github.com/hammamikhairi/alchemy/internal/domain"
)

// Env var names.
const (
	EnvSkin   = "ALCHEMY_SKIN"
	EnvMusic  = "ALCHEMY_MUSIC"
	EnvConfig = "ALCHEMY_CONFIG"
	EnvVolume = "ALCHEMY_VOLUME"
)

// DefaultPath is read when no config file is named. Missing is fine.
const DefaultPath = "alchemy.toml"

// Skins.
const (
	SkinGrimoire = "grimoire"
	SkinPixel    = "pixel"
)

// Duration wraps time.Duration so TOML can carry "1s" / "750ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds every tunable.
type Config struct {
	Skin        string   `toml:"skin"`
	Music       string   `toml:"music"`
	NoMusic     bool     `toml:"no_music"`
	Volume      int      `toml:"volume"`
	Loop        bool     `toml:"loop"`
	ReplyDelay  Duration `toml:"reply_delay"`
	ReplyPolicy string   `toml:"reply_policy"`
	LogFile     string   `toml:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Skin:        SkinGrimoire,
		Music:       "assets/mystical-ambient.wav",
		Volume:      50,
		Loop:        true,
		ReplyDelay:  Duration{chat.DefaultReplyDelay},
		ReplyPolicy: chat.PolicyConcurrent.String(),
		LogFile:     "alchemy.log",
	}
}

// Load builds a config from defaults, the file at path and the
// environment, then validates it. An empty path falls back to
// $ALCHEMY_CONFIG and then DefaultPath; only an explicitly named file must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	if err := LoadTOML(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes path over cfg. Keys absent from the file keep their
// current values.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("loading config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides lets the environment (including .env) override the file.
func (c *Config) ApplyEnvOverrides() {
	if skin := os.Getenv(EnvSkin); skin != "" {
		c.Skin = skin
	}
	if music := os.Getenv(EnvMusic); music != "" {
		c.Music = music
	}
	if vol := os.Getenv(EnvVolume); vol != "" {
		if v, err := strconv.Atoi(vol); err == nil {
			c.Volume = v
		}
	}
}

// Policy returns the parsed reply policy. Call after Validate.
func (c *Config) Policy() chat.Policy {
	p, _ := chat.ParsePolicy(c.ReplyPolicy)
	return p
}

// ValidationError is one bad field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every bad field.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	c.Skin = strings.ToLower(strings.TrimSpace(c.Skin))
	if c.Skin != SkinGrimoire && c.Skin != SkinPixel {
		errs = append(errs, ValidationError{
			Field:   "skin",
			Message: fmt.Sprintf("invalid skin %q, must be one of: %s, %s", c.Skin, SkinGrimoire, SkinPixel),
		})
	}

	if c.Volume < domain.MinVolume || c.Volume > domain.MaxVolume {
		errs = append(errs, ValidationError{
			Field:   "volume",
			Message: fmt.Sprintf("%d out of range %d-%d", c.Volume, domain.MinVolume, domain.MaxVolume),
		})
	}

	if c.ReplyDelay.Duration < 0 {
		errs = append(errs, ValidationError{
			Field:   "reply_delay",
			Message: "must not be negative",
		})
	}

	if _, err := chat.ParsePolicy(c.ReplyPolicy); err != nil {
		errs = append(errs, ValidationError{Field: "reply_policy", Message: err.Error()})
	}

	if !c.NoMusic && strings.TrimSpace(c.Music) == "" {
		errs = append(errs, ValidationError{
			Field:   "music",
			Message: "empty track path (set no_music to disable)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
