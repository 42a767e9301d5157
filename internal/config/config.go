// Package config defines the single immutable configuration value consumed
// by the pipeline. The value is constructed once by Load and passed into the
// controller at construction; nothing reads ambient/global state afterwards.
package config

import (
	"fmt"
	"time"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
)

// Recognized values for LLMConfig.Provider.
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
)

// LLMConfig holds settings for the content-generation model client.
type LLMConfig struct {
	// Provider selects the client implementation: "mock" or "openai".
	// Mock is the default so offline runs stay bounded and deterministic.
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	// PromptTokenBudget caps the job-description excerpt embedded in prompts.
	PromptTokenBudget int `mapstructure:"prompt_token_budget"`
}

// Weights is the per-section weight map used by the compliance scorer.
// Values are fractions that should sum to 1.
type Weights struct {
	Skills     float64 `mapstructure:"skills"`
	Experience float64 `mapstructure:"experience"`
	Projects   float64 `mapstructure:"projects"`
}

// Config is the full configuration surface of a pipeline run.
type Config struct {
	// Quality thresholds.
	MinATSScore         float64 `mapstructure:"min_ats_score"`         // 0-100, default 90
	PDFQualityThreshold float64 `mapstructure:"pdf_quality_threshold"` // 0-100, default 85

	// Hybrid pass policy.
	EnableHybridPolicy    bool `mapstructure:"enable_hybrid_policy"`
	HybridAllowedFailures int  `mapstructure:"hybrid_allowed_failures"`
	// RequireFullKeywords promotes keywords_complete to a hard gate and
	// requires every ranked term to be present, not only the high-importance set.
	RequireFullKeywords bool `mapstructure:"require_full_keywords"`

	// Compliance scoring.
	SectionWeights Weights `mapstructure:"section_weights"`
	// HighImportanceFloor is the minimum coverage ratio of terms with
	// importance >= 0.8 before a blocking issue is raised.
	HighImportanceFloor float64 `mapstructure:"high_importance_floor"`

	// Iteration control.
	MaxIterations    int           `mapstructure:"max_iterations"`
	IterationTimeout time.Duration `mapstructure:"iteration_timeout"`
	// RerankEachRound re-ranks job-description terms every round. Off by
	// default: the job description does not change between rounds.
	RerankEachRound bool `mapstructure:"rerank_each_round"`

	LLM LLMConfig `mapstructure:"llm"`

	// Output.
	OutputDir  string `mapstructure:"output_dir"`
	RetainRuns int    `mapstructure:"retain_runs"`
	LogLevel   string `mapstructure:"log_level"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		MinATSScore:           90,
		PDFQualityThreshold:   85,
		EnableHybridPolicy:    true,
		HybridAllowedFailures: 1,
		SectionWeights:        Weights{Skills: 0.40, Experience: 0.35, Projects: 0.25},
		HighImportanceFloor:   0.5,
		MaxIterations:         3,
		IterationTimeout:      120 * time.Second,
		LLM: LLMConfig{
			Provider:          "mock",
			Model:             "gpt-4o-mini",
			Temperature:       0.7,
			MaxTokens:         4096,
			PromptTokenBudget: 1500,
		},
		OutputDir:  "outputs",
		RetainRuns: 10,
		LogLevel:   "info",
	}
}

// Validate checks invariants that the rest of the pipeline relies on.
func (c Config) Validate() error {
	if c.MinATSScore < 0 || c.MinATSScore > 100 {
		return errors.NewInputError("min_ats_score", "must be within [0,100], got %v", c.MinATSScore)
	}
	if c.PDFQualityThreshold < 0 || c.PDFQualityThreshold > 100 {
		return errors.NewInputError("pdf_quality_threshold", "must be within [0,100], got %v", c.PDFQualityThreshold)
	}
	if c.MaxIterations < 1 {
		return errors.NewInputError("max_iterations", "must be at least 1, got %d", c.MaxIterations)
	}
	if c.HybridAllowedFailures < 0 {
		return errors.NewInputError("hybrid_allowed_failures", "must not be negative, got %d", c.HybridAllowedFailures)
	}
	sum := c.SectionWeights.Skills + c.SectionWeights.Experience + c.SectionWeights.Projects
	if sum <= 0 {
		return errors.NewInputError("section_weights", "weights must sum to a positive value, got %v", sum)
	}
	if diff := sum - 1.0; diff > 0.01 || diff < -0.01 {
		return errors.NewInputError("section_weights", "weights must sum to 1.0, got %v", sum)
	}
	if c.HighImportanceFloor < 0 || c.HighImportanceFloor > 1 {
		return errors.NewInputError("high_importance_floor", "must be within [0,1], got %v", c.HighImportanceFloor)
	}
	switch c.LLM.Provider {
	case ProviderMock:
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return errors.NewInputError("llm.api_key", "required when provider is openai")
		}
		if c.LLM.Model == "" {
			return errors.NewInputError("llm.model", "required when provider is openai")
		}
	default:
		return errors.NewInputError("llm.provider", "unknown provider %q", c.LLM.Provider)
	}
	if c.OutputDir == "" {
		return errors.NewInputError("output_dir", "must not be empty")
	}
	return nil
}

func (w Weights) String() string {
	return fmt.Sprintf("skills=%.2f experience=%.2f projects=%.2f", w.Skills, w.Experience, w.Projects)
}
