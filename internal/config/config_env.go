package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables,
// matching the teacher's "explicit cfg values take precedence over env"
// rule in ApplyEnvToConfig.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.HostBaseURL == "" {
		cfg.HostBaseURL = os.Getenv("REPOINTEL_HOST_BASE_URL")
	}
	if cfg.HostToken == "" {
		cfg.HostToken = os.Getenv("REPOINTEL_HOST_TOKEN")
	}
	if cfg.RepoOwner == "" {
		cfg.RepoOwner = os.Getenv("REPOINTEL_REPO_OWNER")
	}
	if cfg.RepoName == "" {
		cfg.RepoName = os.Getenv("REPOINTEL_REPO_NAME")
	}
	if cfg.RepoRef == "" {
		cfg.RepoRef = os.Getenv("REPOINTEL_REPO_REF")
	}
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = os.Getenv("LLM_PROVIDER")
	}
	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = os.Getenv("LLM_MODEL")
	}
	if cfg.LLMAPIKey == "" {
		cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv("CACHE_DIR")
	}

	if cfg.MaxCandidates == 0 {
		if n, err := strconv.Atoi(os.Getenv("MAX_CANDIDATES")); err == nil && n > 0 {
			cfg.MaxCandidates = n
		}
	}
	if cfg.TargetSelection == 0 {
		if n, err := strconv.Atoi(os.Getenv("TARGET_SELECTION")); err == nil && n > 0 {
			cfg.TargetSelection = n
		}
	}
	if cfg.FetchConcurrency == 0 {
		if n, err := strconv.Atoi(os.Getenv("FETCH_CONCURRENCY")); err == nil && n > 0 {
			cfg.FetchConcurrency = n
		}
	}
	if cfg.CacheMaxAge == 0 {
		if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.CacheMaxAge = d
			}
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
}

// ApplyEnvOverrides forcefully overrides cfg fields with environment
// variables when set, used so env can outrank a config file while flags
// remain the highest-precedence source (teacher's ApplyEnvOverrides).
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}
	if v := os.Getenv("REPOINTEL_HOST_BASE_URL"); v != "" {
		cfg.HostBaseURL = v
	}
	if v := os.Getenv("REPOINTEL_HOST_TOKEN"); v != "" {
		cfg.HostToken = v
	}
	if v := os.Getenv("REPOINTEL_REPO_OWNER"); v != "" {
		cfg.RepoOwner = v
	}
	if v := os.Getenv("REPOINTEL_REPO_NAME"); v != "" {
		cfg.RepoName = v
	}
	if v := os.Getenv("REPOINTEL_REPO_REF"); v != "" {
		cfg.RepoRef = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLMProvider = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if s := os.Getenv("CACHE_MAX_AGE"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.CacheMaxAge = d
		}
	}
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.DryRun, "DRY_RUN")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.CacheClear, "CACHE_CLEAR")
}
