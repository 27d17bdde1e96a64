package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/saeval/pkg/report"
)

func TestSummaryKind_IsValid(t *testing.T) {
	t.Parallel()

	for _, kind := range []SummaryKind{SummarySA, SummaryLLMTaint, SummaryLLMMemory, SummaryNone} {
		assert.True(t, kind.IsValid(), string(kind))
	}
	assert.False(t, SummaryKind("").IsValid())
	assert.False(t, SummaryKind("llm").IsValid())
	assert.False(t, SummaryKind("SA").IsValid())
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	assert.Equal(t, ".", cfg.Workspace)
	assert.Equal(t, report.KindBaseline, cfg.Mode)
	assert.Equal(t, SummarySA, cfg.Summary)
	assert.Zero(t, cfg.Jobs)
	assert.Empty(t, cfg.Projects)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	cfg := &Config{Projects: []Project{
		{Name: "curl"},
		{Name: "zlib", Disabled: true},
		{Name: "libpng"},
	}}

	enabled := cfg.Enabled()

	assert.Equal(t, []Project{{Name: "curl"}, {Name: "libpng"}}, enabled)
}

func TestConfig_ProjectByName(t *testing.T) {
	t.Parallel()

	cfg := &Config{Projects: []Project{
		{Name: "curl", MutationFile: "lib/url.c"},
	}}

	p, ok := cfg.ProjectByName("curl")
	assert.True(t, ok)
	assert.Equal(t, "lib/url.c", p.MutationFile)

	_, ok = cfg.ProjectByName("zlib")
	assert.False(t, ok)
}
