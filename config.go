package slidecheck

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default policy values.
const (
	DefaultToleratedPixelError = 5
	DefaultMaxAttempts         = 3
	DefaultShakeDuration       = 500 * time.Millisecond
	DefaultShakeAmplitude      = 8
)

// DefaultImages are the backgrounds used when no config overrides them.
var DefaultImages = []string{
	"https://cos.rayjason.cn/images/temp1.png",
	"https://cos.rayjason.cn/images/temp2.png",
}

// Messages holds the user-visible strings. The attempt messages are
// fmt formats taking the number of attempts left.
type Messages struct {
	AttemptsRemaining string `yaml:"attempts_remaining"`
	AttemptRemaining  string `yaml:"attempt_remaining"`
	Passed            string `yaml:"passed"`
	Confirm           string `yaml:"confirm"`
}

// Remaining formats the retry message for n attempts left.
func (m Messages) Remaining(n int) string {
	if n == 1 {
		return fmt.Sprintf(m.AttemptRemaining, n)
	}
	return fmt.Sprintf(m.AttemptsRemaining, n)
}

// Config is the verification policy. The zero value is not usable; start
// from DefaultConfig or LoadConfig.
type Config struct {
	// ToleratedPixelError is the half-width of the pass window around the
	// notch's x coordinate.
	ToleratedPixelError float64 `yaml:"tolerated_pixel_error"`

	// MaxAttempts is the number of releases allowed per round. The last
	// miss forces a silent reset to a new round.
	MaxAttempts int `yaml:"max_attempts"`

	CandidateImages []string `yaml:"candidate_images"`

	ShakeDuration  time.Duration `yaml:"shake_duration"`
	ShakeAmplitude float64       `yaml:"shake_amplitude"`

	Messages Messages `yaml:"messages"`
}

// DefaultConfig returns the built-in policy: 5px tolerance, 3 attempts,
// half-second shake.
func DefaultConfig() Config {
	return Config{
		ToleratedPixelError: DefaultToleratedPixelError,
		MaxAttempts:         DefaultMaxAttempts,
		CandidateImages:     append([]string(nil), DefaultImages...),
		ShakeDuration:       DefaultShakeDuration,
		ShakeAmplitude:      DefaultShakeAmplitude,
		Messages: Messages{
			AttemptsRemaining: "%d attempts remaining",
			AttemptRemaining:  "%d attempt remaining",
			Passed:            "Verified",
			Confirm:           "OK",
		},
	}
}

// Validate checks the policy for values the widget cannot work with.
func (c Config) Validate() error {
	var problems []string
	if c.ToleratedPixelError < 0 {
		problems = append(problems, fmt.Sprintf("tolerated_pixel_error %v is negative", c.ToleratedPixelError))
	}
	if c.MaxAttempts < 1 {
		problems = append(problems, fmt.Sprintf("max_attempts %d is below 1", c.MaxAttempts))
	}
	if c.ShakeDuration <= 0 {
		problems = append(problems, fmt.Sprintf("shake_duration %v is not positive", c.ShakeDuration))
	}
	if c.ShakeAmplitude < 0 {
		problems = append(problems, fmt.Sprintf("shake_amplitude %v is negative", c.ShakeAmplitude))
	}
	for i, img := range c.CandidateImages {
		if strings.TrimSpace(img) == "" {
			problems = append(problems, fmt.Sprintf("candidate_images[%d] is empty", i))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	if len(c.CandidateImages) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoImages)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig, so a file only needs the
// fields it changes. Unknown fields are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// YAML encodes the config in the same shape LoadConfig reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
