package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fchimpan/matrix-rain/internal/mailrelay"
	"github.com/fchimpan/matrix-rain/internal/rain"
	"github.com/fchimpan/matrix-rain/internal/typewriter"
)

// Config holds all rain configuration.
type Config struct {
	Rain    RainConfig    `yaml:"rain"`
	Intro   IntroConfig   `yaml:"intro"`
	Contact ContactConfig `yaml:"contact"`
	Logging LoggingConfig `yaml:"logging"`
}

// RainConfig configures the falling-glyph animation.
type RainConfig struct {
	CellSize   int      `yaml:"cell_size"`
	Interval   Duration `yaml:"interval"`
	FadeAlpha  float64  `yaml:"fade_alpha"`
	Background string   `yaml:"background"`
	Alphabet   string   `yaml:"alphabet"`
	// Palette lists the tier colors from dimmest to the leading glyph.
	Palette []string `yaml:"palette"`
	// FontFile is a TrueType font for pixel backends.
	FontFile string `yaml:"font_file"`
}

// IntroConfig configures the typed banner shown over the rain.
type IntroConfig struct {
	Text      string   `yaml:"text"`
	CharDelay Duration `yaml:"char_delay"`
	LineDelay Duration `yaml:"line_delay"`
}

// ContactConfig configures the mail relay used by the contact form.
type ContactConfig struct {
	ServiceID   string `yaml:"service_id"`
	TemplateID  string `yaml:"template_id"`
	PublicKey   string `yaml:"public_key"`
	AccessToken string `yaml:"access_token"`
	ToName      string `yaml:"to_name"`
	Endpoint    string `yaml:"endpoint"`
}

// LoggingConfig configures the file logger. Logs never go to the terminal
// the animation is drawn on.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

const defaultIntro = `$ whoami
software engineer
$ cat interests.txt
distributed systems, terminals, falling green glyphs`

func DefaultConfig() Config {
	return Config{
		Rain: RainConfig{
			CellSize:   rain.DefaultCellSize,
			Interval:   Duration(rain.DefaultInterval),
			FadeAlpha:  rain.DefaultFadeAlpha,
			Background: rain.DefaultBackground.Hex(),
			Alphabet:   strings.Join(rain.DefaultAlphabet, ""),
			Palette: []string{
				rain.DefaultPalette[rain.TierDim].Hex(),
				rain.DefaultPalette[rain.TierMedium].Hex(),
				rain.DefaultPalette[rain.TierBright].Hex(),
				rain.DefaultPalette[rain.TierLead].Hex(),
			},
		},
		Intro: IntroConfig{
			Text:      defaultIntro,
			CharDelay: Duration(typewriter.DefaultCharDelay),
			LineDelay: Duration(typewriter.DefaultLineDelay),
		},
		Contact: ContactConfig{
			ToName:   "Portfolio Owner",
			Endpoint: mailrelay.DefaultEndpoint,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults; a named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides mail relay credentials from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("EMAILJS_SERVICE_ID"); v != "" {
		c.Contact.ServiceID = v
	}
	if v := getenv("EMAILJS_TEMPLATE_ID"); v != "" {
		c.Contact.TemplateID = v
	}
	if v := getenv("EMAILJS_PUBLIC_KEY"); v != "" {
		c.Contact.PublicKey = v
	}
	if v := getenv("EMAILJS_ACCESS_TOKEN"); v != "" {
		c.Contact.AccessToken = v
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Rain.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("rain.cell_size must be > 0"))
	}
	if c.Rain.Interval <= 0 {
		errs = append(errs, fmt.Errorf("rain.interval must be > 0"))
	}
	if c.Rain.FadeAlpha <= 0 || c.Rain.FadeAlpha > 1 {
		errs = append(errs, fmt.Errorf("rain.fade_alpha must be in (0, 1]"))
	}
	if _, err := rain.ParseHex(c.Rain.Background); err != nil {
		errs = append(errs, fmt.Errorf("rain.background: %w", err))
	}
	if _, err := rain.NewAlphabet(c.Rain.Alphabet); err != nil {
		errs = append(errs, fmt.Errorf("rain.alphabet: %w", err))
	}
	if _, err := c.palette(); err != nil {
		errs = append(errs, err)
	}
	if c.Intro.CharDelay < 0 || c.Intro.LineDelay < 0 {
		errs = append(errs, fmt.Errorf("intro delays must be >= 0"))
	}
	return errors.Join(errs...)
}

// RainOptions converts the rain section into animator options.
func (c Config) RainOptions() (rain.Options, error) {
	if err := c.Validate(); err != nil {
		return rain.Options{}, err
	}
	bg, _ := rain.ParseHex(c.Rain.Background)
	alphabet, _ := rain.NewAlphabet(c.Rain.Alphabet)
	palette, _ := c.palette()
	return rain.Options{
		CellSize:   c.Rain.CellSize,
		Alphabet:   alphabet,
		Palette:    palette,
		Background: bg,
		FadeAlpha:  c.Rain.FadeAlpha,
	}, nil
}

func (c Config) palette() (rain.Palette, error) {
	var p rain.Palette
	if len(c.Rain.Palette) != len(p) {
		return p, fmt.Errorf("rain.palette must list %d colors, got %d", len(p), len(c.Rain.Palette))
	}
	for i, s := range c.Rain.Palette {
		col, err := rain.ParseHex(s)
		if err != nil {
			return p, fmt.Errorf("rain.palette[%d]: %w", i, err)
		}
		p[i] = col
	}
	return p, nil
}

// Configured reports whether the mail relay ids are all set.
func (c ContactConfig) Configured() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.PublicKey != ""
}

// Request builds a relay request carrying params.
func (c ContactConfig) Request(params map[string]string) mailrelay.Request {
	return mailrelay.Request{
		ServiceID:   c.ServiceID,
		TemplateID:  c.TemplateID,
		PublicKey:   c.PublicKey,
		AccessToken: c.AccessToken,
		Params:      params,
	}
}

// IntroLines returns the banner lines, trimmed with blanks dropped.
func (c Config) IntroLines() []string {
	return typewriter.SplitLines(c.Intro.Text)
}

// Duration is a time.Duration written as "40ms" in YAML.
type Duration time.Duration

func (d Duration) D() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
