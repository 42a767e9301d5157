package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
)

func TestNewSelectsProvider(t *testing.T) {
	cfg := config.Default()
	client, err := New(cfg, nil)
	require.NoError(t, err)
	require.Equal(t, cfg.LLM.Model, client.Model())

	cfg.LLM.Provider = "openai"
	_, err = New(cfg, nil)
	require.True(t, errors.IsInput(err), "openai without api key must be an input error")

	cfg.LLM.Provider = "carrier-pigeon"
	_, err = New(cfg, nil)
	require.True(t, errors.IsInput(err))
}

func TestMockCompleteIsDeterministic(t *testing.T) {
	client := NewMockClient("mock")
	req := Request{
		System: "You write resumes.",
		User:   "Target keywords: python, docker, kubernetes\n\nWrite the resume.",
	}

	first, err := client.Complete(context.Background(), req)
	require.NoError(t, err)
	second, err := client.Complete(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, first.Content, second.Content)

	var content struct {
		ProfessionalSummary string `json:"professional_summary"`
		Skills              []struct {
			Category string   `json:"category"`
			Skills   []string `json:"skills"`
		} `json:"skills"`
		Experience []struct {
			Bullets []string `json:"bullets"`
		} `json:"experience"`
	}
	require.NoError(t, json.Unmarshal([]byte(first.Content), &content))
	require.NotEmpty(t, content.ProfessionalSummary)
	require.Len(t, content.Skills, 1)
	require.ElementsMatch(t, []string{"python", "docker", "kubernetes"}, content.Skills[0].Skills)
	require.NotEmpty(t, content.Experience)
}

func TestMockCompleteWithoutKeywordLine(t *testing.T) {
	client := NewMockClient("")
	resp, err := client.Complete(context.Background(), Request{User: "no marker here"})
	require.NoError(t, err)
	require.Equal(t, "mock", resp.Model)

	var content map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Content), &content))
	require.Contains(t, content, "skills")
}

func TestMockCompleteHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMockClient("mock").Complete(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   []string
	}{
		{"simple", "Target keywords: go, sql", []string{"go", "sql"}},
		{"padded", "  Target keywords:  go ,  sql  ", []string{"go", "sql"}},
		{"embedded", "Job below.\nTarget keywords: aws\nThanks.", []string{"aws"}},
		{"absent", "no list at all", nil},
		{"empty list", "Target keywords:", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, extractKeywords(tt.prompt))
		})
	}
}

type flakyClient struct {
	calls int
	fail  int
}

func (f *flakyClient) Complete(ctx context.Context, req Request) (Response, error) {
	f.calls++
	if f.calls <= f.fail {
		return Response{}, fmt.Errorf("upstream said 429 rate limit exceeded")
	}
	return Response{Content: "ok", Model: "flaky"}, nil
}

func (f *flakyClient) Model() string { return "flaky" }

func TestWithRetryRecoversTransientFailure(t *testing.T) {
	inner := &flakyClient{fail: 1}
	cfg := errors.DefaultRetryConfig()
	cfg.BaseDelay = time.Millisecond
	client := WithRetry(inner, cfg, nil)

	resp, err := client.Complete(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Content)
	require.Equal(t, 2, inner.calls)
}

func TestTokenHelpers(t *testing.T) {
	require.Equal(t, 0, EstimateTokens("   "))
	require.Greater(t, CountTokens("the quick brown fox jumps over the lazy dog"), 4)

	long := ""
	for i := 0; i < 200; i++ {
		long += "keyword "
	}
	truncated := TruncateToTokens(long, 20)
	require.Less(t, len(truncated), len(long))
	require.True(t, len(truncated) > 0)

	require.Equal(t, "short", TruncateToTokens("short", 100))
	require.Equal(t, long, TruncateToTokens(long, 0), "zero budget disables truncation")
}
