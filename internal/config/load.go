package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load builds a Config from defaults, an optional YAML file, and RESUME_*
// environment variables (underscores for nesting, e.g. RESUME_LLM_API_KEY).
// The result is validated before being returned.
func Load(path string) (Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetEnvPrefix("RESUME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("min_ats_score", def.MinATSScore)
	v.SetDefault("pdf_quality_threshold", def.PDFQualityThreshold)
	v.SetDefault("enable_hybrid_policy", def.EnableHybridPolicy)
	v.SetDefault("hybrid_allowed_failures", def.HybridAllowedFailures)
	v.SetDefault("require_full_keywords", def.RequireFullKeywords)
	v.SetDefault("section_weights.skills", def.SectionWeights.Skills)
	v.SetDefault("section_weights.experience", def.SectionWeights.Experience)
	v.SetDefault("section_weights.projects", def.SectionWeights.Projects)
	v.SetDefault("high_importance_floor", def.HighImportanceFloor)
	v.SetDefault("max_iterations", def.MaxIterations)
	v.SetDefault("iteration_timeout", def.IterationTimeout)
	v.SetDefault("rerank_each_round", def.RerankEachRound)
	v.SetDefault("llm.provider", def.LLM.Provider)
	v.SetDefault("llm.model", def.LLM.Model)
	v.SetDefault("llm.api_key", def.LLM.APIKey)
	v.SetDefault("llm.base_url", def.LLM.BaseURL)
	v.SetDefault("llm.temperature", def.LLM.Temperature)
	v.SetDefault("llm.max_tokens", def.LLM.MaxTokens)
	v.SetDefault("llm.prompt_token_budget", def.LLM.PromptTokenBudget)
	v.SetDefault("output_dir", def.OutputDir)
	v.SetDefault("retain_runs", def.RetainRuns)
	v.SetDefault("log_level", def.LogLevel)
}
