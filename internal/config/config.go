// Package config provides loading and validation of the scraper configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteOrigin is the only origin this scraper is allowed to crawl. Every
// seed URL must live under it, and relative article links are resolved
// against it.
const SiteOrigin = "https://otr-online.ru"

// Configuration validation errors. Each of the seven crawl fields fails
// with its own error, raised once at startup and fatal to the run.
var (
	ErrIncorrectSeedURL       = errors.New("seed URLs must be a list of absolute URLs under " + SiteOrigin)
	ErrIncorrectArticleCount  = errors.New("total article count must be a non-negative integer")
	ErrArticleCountOutOfRange = errors.New("total article count is out of range (0-150)")
	ErrIncorrectHeaders       = errors.New("headers must be a string-to-string mapping")
	ErrIncorrectEncoding      = errors.New("encoding must be a string")
	ErrIncorrectTimeout       = errors.New("timeout must be an integer between 1 and 60 seconds")
	ErrIncorrectVerify        = errors.New("certificate verification flag must be a boolean")
	ErrIncorrectHeadless      = errors.New("headless mode flag must be a boolean")
)

const (
	minArticles = 0
	maxArticles = 150
	minTimeout  = 1
	maxTimeout  = 60
)

// Config holds the validated scraper configuration. The seven crawl
// fields are validated exactly once in Load and exposed read-only through
// the accessor methods; downstream components never mutate them.
type Config struct {
	seedURLs     []string
	numArticles  int
	headers      map[string]string
	encoding     string
	timeoutSec   int
	verifyCert   bool
	headlessMode bool

	Output     OutputConfig
	Logging    LoggingConfig
	Politeness PolitenessConfig
}

// OutputConfig defines where persisted articles go.
type OutputConfig struct {
	BasePath string `yaml:"base_path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// PolitenessConfig defines optional crawl politeness. Both knobs default
// to off so the crawl issues exactly one request per fetch call.
type PolitenessConfig struct {
	RespectRobots     bool    `yaml:"respect_robots"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// rawConfig mirrors the YAML layout. The seven crawl fields decode as
// yaml.Node so a wrong type in the file surfaces as the named fault for
// that field instead of a generic unmarshal error.
type rawConfig struct {
	Crawler    rawCrawler       `yaml:"crawler"`
	Politeness PolitenessConfig `yaml:"politeness"`
}

type rawCrawler struct {
	SeedURLs     yaml.Node `yaml:"seed_urls"`
	NumArticles  yaml.Node `yaml:"total_articles_to_find_and_parse"`
	Headers      yaml.Node `yaml:"headers"`
	Encoding     yaml.Node `yaml:"encoding"`
	Timeout      yaml.Node `yaml:"timeout"`
	Verify       yaml.Node `yaml:"should_verify_certificate"`
	HeadlessMode yaml.Node `yaml:"headless_mode"`

	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// Load reads, decodes and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg, err := raw.validate()
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks every crawl field and assembles the immutable Config.
func (r *rawConfig) validate() (*Config, error) {
	cfg := &Config{
		Output:     r.Crawler.Output,
		Logging:    r.Crawler.Logging,
		Politeness: r.Politeness,
	}

	if err := decodeAs(&r.Crawler.SeedURLs, yaml.SequenceNode, "", &cfg.seedURLs, ErrIncorrectSeedURL); err != nil {
		return nil, err
	}

	if len(cfg.seedURLs) == 0 {
		return nil, ErrIncorrectSeedURL
	}

	for _, seed := range cfg.seedURLs {
		if !strings.HasPrefix(seed, SiteOrigin+"/") {
			return nil, fmt.Errorf("%w: %q", ErrIncorrectSeedURL, seed)
		}
	}

	if err := decodeAs(&r.Crawler.NumArticles, yaml.ScalarNode, "!!int", &cfg.numArticles, ErrIncorrectArticleCount); err != nil {
		return nil, err
	}

	if cfg.numArticles < minArticles {
		return nil, ErrIncorrectArticleCount
	}

	if cfg.numArticles > maxArticles {
		return nil, ErrArticleCountOutOfRange
	}

	if err := decodeAs(&r.Crawler.Headers, yaml.MappingNode, "", &cfg.headers, ErrIncorrectHeaders); err != nil {
		return nil, err
	}

	if err := decodeAs(&r.Crawler.Encoding, yaml.ScalarNode, "!!str", &cfg.encoding, ErrIncorrectEncoding); err != nil {
		return nil, err
	}

	if err := decodeAs(&r.Crawler.Timeout, yaml.ScalarNode, "!!int", &cfg.timeoutSec, ErrIncorrectTimeout); err != nil {
		return nil, err
	}

	if cfg.timeoutSec < minTimeout || cfg.timeoutSec > maxTimeout {
		return nil, ErrIncorrectTimeout
	}

	if err := decodeAs(&r.Crawler.Verify, yaml.ScalarNode, "!!bool", &cfg.verifyCert, ErrIncorrectVerify); err != nil {
		return nil, err
	}

	if err := decodeAs(&r.Crawler.HeadlessMode, yaml.ScalarNode, "!!bool", &cfg.headlessMode, ErrIncorrectHeadless); err != nil {
		return nil, err
	}

	if cfg.Output.BasePath == "" {
		cfg.Output.BasePath = "assets"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// decodeAs decodes a YAML node into out, reporting fault when the node is
// missing, has the wrong structural kind, or carries the wrong scalar tag.
func decodeAs(node *yaml.Node, kind yaml.Kind, tag string, out any, fault error) error {
	if node.Kind == 0 {
		return fmt.Errorf("%w: field is missing", fault)
	}

	if node.Kind != kind {
		return fault
	}

	if tag != "" && node.Tag != tag {
		return fault
	}

	if err := node.Decode(out); err != nil {
		return fmt.Errorf("%w: %s", fault, err)
	}

	return nil
}

// SeedURLs retrieves the seed index pages to collect article links from.
func (c *Config) SeedURLs() []string {
	return c.seedURLs
}

// NumArticles retrieves the total number of articles to scrape.
func (c *Config) NumArticles() int {
	return c.numArticles
}

// Headers retrieves the HTTP headers to send with every request.
func (c *Config) Headers() map[string]string {
	return c.headers
}

// Encoding retrieves the response encoding override.
func (c *Config) Encoding() string {
	return c.encoding
}

// Timeout retrieves the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.timeoutSec) * time.Second
}

// VerifyCertificate reports whether TLS certificates are verified.
func (c *Config) VerifyCertificate() bool {
	return c.verifyCert
}

// HeadlessMode reports whether headless-browser mode was requested. The
// flag is validated and carried but unused by the scrape pipeline.
func (c *Config) HeadlessMode() bool {
	return c.headlessMode
}

// String returns a short representation for startup logging.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Seeds: %d, Articles: %d, Timeout: %ds, Verify: %t}",
		len(c.seedURLs),
		c.numArticles,
		c.timeoutSec,
		c.verifyCert,
	)
}
