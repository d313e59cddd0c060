package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvToConfig_DoesNotOverrideExplicitValues(t *testing.T) {
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("REPOINTEL_REPO_OWNER", "env-owner")

	cfg := Config{RepoOwner: "flag-owner"}
	ApplyEnvToConfig(&cfg)

	if cfg.RepoOwner != "flag-owner" {
		t.Fatalf("RepoOwner = %q, want flag-owner (explicit value must win)", cfg.RepoOwner)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("LLMModel = %q, want gpt-4o-mini from env", cfg.LLMModel)
	}
}

func TestApplyEnvOverrides_OverridesEvenWhenSet(t *testing.T) {
	t.Setenv("LLM_MODEL", "gpt-4o")

	cfg := Config{LLMModel: "from-file"}
	ApplyEnvOverrides(&cfg)

	if cfg.LLMModel != "gpt-4o" {
		t.Fatalf("LLMModel = %q, want gpt-4o (env overrides file)", cfg.LLMModel)
	}
}

func TestWithDefaults_FillsZeroFieldsOnly(t *testing.T) {
	cfg := Config{TargetSelection: 50}
	cfg = WithDefaults(cfg)

	if cfg.TargetSelection != 50 {
		t.Fatalf("TargetSelection = %d, want 50 (explicit value preserved)", cfg.TargetSelection)
	}
	if cfg.MaxCandidates != defaults.MaxCandidates {
		t.Fatalf("MaxCandidates = %d, want default %d", cfg.MaxCandidates, defaults.MaxCandidates)
	}
	if cfg.MMRLambda != 0.6 {
		t.Fatalf("MMRLambda = %v, want 0.6", cfg.MMRLambda)
	}
}

func TestLoadConfigFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
repo:
  owner: octocat
  name: hello-world
llm:
  provider: genai
  model: gemini-2.0-flash
selection:
  targetSelection: 25
  mmrLambda: 0.7
cache:
  maxAge: 48h
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile error: %v", err)
	}
	if fc.Repo.Owner != "octocat" || fc.Repo.Name != "hello-world" {
		t.Fatalf("unexpected repo section: %+v", fc.Repo)
	}
	if fc.Selection.TargetSelection != 25 {
		t.Fatalf("TargetSelection = %d, want 25", fc.Selection.TargetSelection)
	}
	if fc.Cache.MaxAge != 48*time.Hour {
		t.Fatalf("Cache.MaxAge = %v, want 48h", fc.Cache.MaxAge)
	}

	var cfg Config
	ApplyFileConfig(&cfg, fc)
	if cfg.RepoOwner != "octocat" || cfg.MMRLambda != 0.7 {
		t.Fatalf("ApplyFileConfig mismatch: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"missing owner", Config{RepoName: "x", DryRun: true}, true},
		{"dry run skips llm", Config{RepoOwner: "o", RepoName: "n", DryRun: true}, false},
		{"real run needs model", Config{RepoOwner: "o", RepoName: "n"}, true},
		{"complete", Config{RepoOwner: "o", RepoName: "n", LLMModel: "m", LLMAPIKey: "k"}, false},
		{"reserved exceeds target", Config{RepoOwner: "o", RepoName: "n", DryRun: true, TargetSelection: 5, ReservedSlots: 10}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate(%+v) error = %v, wantErr %v", tc.cfg, err, tc.wantErr)
			}
		})
	}
}
