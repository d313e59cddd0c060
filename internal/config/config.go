// Package config assembles runtime configuration for the pipeline from
// flags, environment variables and an optional file, in that descending
// precedence order (flags win, then env, then file, then built-in
// defaults), mirroring the teacher's internal/app/config*.go layering.
package config

import "time"

// Config holds everything the Pipeline Coordinator and its stages need to
// run a single analysis, gathered from cmd/repointel's flag parsing plus
// ApplyEnvOverrides/ApplyFileConfig.
type Config struct {
	// Repository host (Source Fetcher)
	HostBaseURL string
	HostToken   string
	RepoOwner   string
	RepoName    string
	RepoRef     string

	// LLM
	LLMProvider string // "openai" or "genai"
	LLMBaseURL  string
	LLMModel    string
	LLMAPIKey   string

	// Selection / budgeting
	MaxCandidates   int
	TargetSelection int
	ReservedSlots   int
	MMRLambda       float64
	TokensPerPrompt int

	// Concurrency
	FetchConcurrency int

	// Cache
	CacheDir    string
	CacheMaxAge time.Duration
	CacheClear  bool

	// Lock
	LockTTL time.Duration

	// Behavior
	DryRun  bool
	Verbose bool

	// Output
	OutputPath string
}

// defaults mirrors the teacher's inlined default-value constants in
// config_file.go, gathered in one place so zero-value detection in
// ApplyFileConfig/ApplyEnvOverrides has something to compare against.
var defaults = Config{
	HostBaseURL:      "https://api.github.com",
	LLMProvider:      "openai",
	MaxCandidates:    50,
	TargetSelection:  12,
	ReservedSlots:    2,
	MMRLambda:        0.6,
	TokensPerPrompt:  100000,
	FetchConcurrency: 10,
	CacheDir:         ".repointel-cache",
	CacheMaxAge:      24 * time.Hour,
	LockTTL:          5 * time.Minute,
	OutputPath:       "questions.json",
}

// Defaults returns a copy of the built-in default configuration.
func Defaults() Config {
	return defaults
}

// WithDefaults fills any zero-valued field of cfg from Defaults(). Flags
// should already have been parsed into cfg by the caller; this is the last
// step of the layering chain.
func WithDefaults(cfg Config) Config {
	d := defaults
	if cfg.HostBaseURL == "" {
		cfg.HostBaseURL = d.HostBaseURL
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = d.LLMProvider
	}
	if cfg.MaxCandidates == 0 {
		cfg.MaxCandidates = d.MaxCandidates
	}
	if cfg.TargetSelection == 0 {
		cfg.TargetSelection = d.TargetSelection
	}
	if cfg.ReservedSlots == 0 {
		cfg.ReservedSlots = d.ReservedSlots
	}
	if cfg.MMRLambda == 0 {
		cfg.MMRLambda = d.MMRLambda
	}
	if cfg.TokensPerPrompt == 0 {
		cfg.TokensPerPrompt = d.TokensPerPrompt
	}
	if cfg.FetchConcurrency == 0 {
		cfg.FetchConcurrency = d.FetchConcurrency
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = d.CacheDir
	}
	if cfg.CacheMaxAge == 0 {
		cfg.CacheMaxAge = d.CacheMaxAge
	}
	if cfg.LockTTL == 0 {
		cfg.LockTTL = d.LockTTL
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = d.OutputPath
	}
	return cfg
}
