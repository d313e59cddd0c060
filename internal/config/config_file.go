package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the on-disk configuration schema, nested for readability
// the way the teacher's FileConfig groups llm/searx/cache sections.
type FileConfig struct {
	Repo struct {
		Owner string `yaml:"owner" json:"owner"`
		Name  string `yaml:"name" json:"name"`
		Ref   string `yaml:"ref" json:"ref"`
	} `yaml:"repo" json:"repo"`

	Host struct {
		BaseURL string `yaml:"baseURL" json:"baseURL"`
		Token   string `yaml:"token" json:"token"`
	} `yaml:"host" json:"host"`

	LLM struct {
		Provider string `yaml:"provider" json:"provider"`
		BaseURL  string `yaml:"base" json:"base"`
		Model    string `yaml:"model" json:"model"`
		APIKey   string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Selection struct {
		MaxCandidates   int     `yaml:"maxCandidates" json:"maxCandidates"`
		TargetSelection int     `yaml:"targetSelection" json:"targetSelection"`
		ReservedSlots   int     `yaml:"reservedSlots" json:"reservedSlots"`
		MMRLambda       float64 `yaml:"mmrLambda" json:"mmrLambda"`
		TokensPerPrompt int     `yaml:"tokensPerPrompt" json:"tokensPerPrompt"`
	} `yaml:"selection" json:"selection"`

	FetchConcurrency int `yaml:"fetchConcurrency" json:"fetchConcurrency"`

	Cache struct {
		Dir    string        `yaml:"dir" json:"dir"`
		MaxAge time.Duration `yaml:"maxAge" json:"maxAge"`
		Clear  bool          `yaml:"clear" json:"clear"`
	} `yaml:"cache" json:"cache"`

	LockTTL time.Duration `yaml:"lockTTL" json:"lockTTL"`

	DryRun  bool `yaml:"dryRun" json:"dryRun"`
	Verbose bool `yaml:"verbose" json:"verbose"`

	Output string `yaml:"output" json:"output"`
}

// LoadConfigFile reads YAML or JSON into a FileConfig, trying both parsers
// when the extension is ambiguous (teacher's LoadConfigFile).
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays fc into cfg for any field still at its zero
// value, so flags parsed before this call always win.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.RepoOwner == "" && fc.Repo.Owner != "" {
		cfg.RepoOwner = fc.Repo.Owner
	}
	if cfg.RepoName == "" && fc.Repo.Name != "" {
		cfg.RepoName = fc.Repo.Name
	}
	if cfg.RepoRef == "" && fc.Repo.Ref != "" {
		cfg.RepoRef = fc.Repo.Ref
	}
	if cfg.HostBaseURL == "" && fc.Host.BaseURL != "" {
		cfg.HostBaseURL = fc.Host.BaseURL
	}
	if cfg.HostToken == "" && fc.Host.Token != "" {
		cfg.HostToken = fc.Host.Token
	}
	if cfg.LLMProvider == "" && fc.LLM.Provider != "" {
		cfg.LLMProvider = fc.LLM.Provider
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.MaxCandidates == 0 && fc.Selection.MaxCandidates > 0 {
		cfg.MaxCandidates = fc.Selection.MaxCandidates
	}
	if cfg.TargetSelection == 0 && fc.Selection.TargetSelection > 0 {
		cfg.TargetSelection = fc.Selection.TargetSelection
	}
	if cfg.ReservedSlots == 0 && fc.Selection.ReservedSlots > 0 {
		cfg.ReservedSlots = fc.Selection.ReservedSlots
	}
	if cfg.MMRLambda == 0 && fc.Selection.MMRLambda > 0 {
		cfg.MMRLambda = fc.Selection.MMRLambda
	}
	if cfg.TokensPerPrompt == 0 && fc.Selection.TokensPerPrompt > 0 {
		cfg.TokensPerPrompt = fc.Selection.TokensPerPrompt
	}
	if cfg.FetchConcurrency == 0 && fc.FetchConcurrency > 0 {
		cfg.FetchConcurrency = fc.FetchConcurrency
	}
	if cfg.CacheDir == "" && fc.Cache.Dir != "" {
		cfg.CacheDir = fc.Cache.Dir
	}
	if cfg.CacheMaxAge == 0 && fc.Cache.MaxAge > 0 {
		cfg.CacheMaxAge = fc.Cache.MaxAge
	}
	if !cfg.CacheClear && fc.Cache.Clear {
		cfg.CacheClear = true
	}
	if cfg.LockTTL == 0 && fc.LockTTL > 0 {
		cfg.LockTTL = fc.LockTTL
	}
	if !cfg.DryRun && fc.DryRun {
		cfg.DryRun = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
}

// Validate performs minimal schema validation for required settings,
// matching the teacher's ValidateConfig (dry-run tolerates missing LLM
// settings; a real run needs owner/name/model).
func Validate(cfg Config) error {
	if trim(cfg.RepoOwner) == "" {
		return errors.New("config: repo.owner is required")
	}
	if trim(cfg.RepoName) == "" {
		return errors.New("config: repo.name is required")
	}
	if !cfg.DryRun {
		if trim(cfg.LLMModel) == "" {
			return errors.New("config: llm.model is required (or set LLM_MODEL)")
		}
		if trim(cfg.LLMAPIKey) == "" {
			return errors.New("config: llm.key is required (or set LLM_API_KEY)")
		}
	}
	if cfg.MaxCandidates < 0 || cfg.TargetSelection < 0 || cfg.ReservedSlots < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.TargetSelection > 0 && cfg.ReservedSlots > cfg.TargetSelection {
		return errors.New("config: reserved slots cannot exceed target selection size")
	}
	return nil
}

func trim(s string) string {
	i, j := 0, len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n' || s[j-1] == '\r') {
		j--
	}
	return s[i:j]
}
