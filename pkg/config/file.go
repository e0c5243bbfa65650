package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file layout. Durations accept the
// usual suffixed forms ("5s", "250ms"); bare numbers would be rejected
// by the parser, which is intentional.
type fileConfig struct {
	Target     string   `yaml:"target"`
	List       string   `yaml:"list"`
	Extensions []string `yaml:"extensions"`
	Wordlist   string   `yaml:"wordlist"`
	TestIndex  *bool    `yaml:"test_index"`

	Threads   *int     `yaml:"threads"`
	Timeout   string   `yaml:"timeout"`
	Retries   *int     `yaml:"retries"`
	RateLimit *float64 `yaml:"rate_limit"`
	Delay     string   `yaml:"delay"`

	UserAgent    string            `yaml:"user_agent"`
	RotateAgents *bool             `yaml:"rotate_agents"`
	Headers      map[string]string `yaml:"headers"`
	Cookie       string            `yaml:"cookie"`
	VerifySSL    *bool             `yaml:"verify_ssl"`
	UseCache     *bool             `yaml:"cache"`
	CacheSize    *int              `yaml:"cache_size"`

	Brute          *bool `yaml:"brute"`
	BruteRecursive *bool `yaml:"brute_recursive"`
	DomainWordlist *bool `yaml:"domain_wordlist"`

	Status        []int    `yaml:"status"`
	MinSize       *int64   `yaml:"min_size"`
	MaxSize       *int64   `yaml:"max_size"`
	ContentIgnore []string `yaml:"content_ignore"`
	NoFP          *bool    `yaml:"no_fp"`

	Output       string `yaml:"output"`
	OutputPerURL *bool  `yaml:"output_per_url"`
	Verbose      *bool  `yaml:"verbose"`
	Silent       *bool  `yaml:"silent"`
	NoColor      *bool  `yaml:"no_color"`
}

// LoadFile reads a YAML config file and applies its values onto cfg.
// Fields absent from the file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read config file: %v", ErrInvalidConfig, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%w: parse config file %s: %v", ErrInvalidConfig, path, err)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Target != "" {
		cfg.TargetURL = fc.Target
	}
	if fc.List != "" {
		cfg.ListFile = fc.List
	}
	if len(fc.Extensions) > 0 {
		cfg.Extensions = NormalizeExtensions(fc.Extensions)
	}
	if fc.Wordlist != "" {
		cfg.WordlistFile = fc.Wordlist
	}
	if fc.TestIndex != nil {
		cfg.TestIndex = *fc.TestIndex
	}
	if fc.Threads != nil {
		cfg.Threads = *fc.Threads
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("%w: timeout: %v", ErrInvalidConfig, err)
		}
		cfg.Timeout = d
	}
	if fc.Retries != nil {
		cfg.Retries = *fc.Retries
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.Delay != "" {
		d, err := time.ParseDuration(fc.Delay)
		if err != nil {
			return fmt.Errorf("%w: delay: %v", ErrInvalidConfig, err)
		}
		cfg.Delay = d
	}
	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if fc.RotateAgents != nil {
		cfg.RotateAgents = *fc.RotateAgents
	}
	for name, value := range fc.Headers {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string)
		}
		cfg.Headers[name] = value
	}
	if fc.Cookie != "" {
		cfg.Cookie = fc.Cookie
	}
	if fc.VerifySSL != nil {
		cfg.VerifySSL = *fc.VerifySSL
	}
	if fc.UseCache != nil {
		cfg.UseCache = *fc.UseCache
	}
	if fc.CacheSize != nil {
		cfg.CacheSize = *fc.CacheSize
	}
	if fc.Brute != nil {
		cfg.BruteForce = *fc.Brute
	}
	if fc.BruteRecursive != nil {
		cfg.BruteRecursive = *fc.BruteRecursive
	}
	if fc.DomainWordlist != nil {
		cfg.DomainWordlist = *fc.DomainWordlist
	}
	if len(fc.Status) > 0 {
		cfg.StatusFilter = fc.Status
	}
	if fc.MinSize != nil {
		cfg.MinSize = *fc.MinSize
	}
	if fc.MaxSize != nil {
		cfg.MaxSize = *fc.MaxSize
	}
	if len(fc.ContentIgnore) > 0 {
		cfg.IgnoreContentTypes = fc.ContentIgnore
	}
	if fc.NoFP != nil {
		cfg.DisableFPDetection = *fc.NoFP
	}
	if fc.Output != "" {
		cfg.OutputFile = fc.Output
	}
	if fc.OutputPerURL != nil {
		cfg.OutputPerURL = *fc.OutputPerURL
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Silent != nil {
		cfg.Silent = *fc.Silent
	}
	if fc.NoColor != nil {
		cfg.NoColor = *fc.NoColor
	}
	return nil
}
