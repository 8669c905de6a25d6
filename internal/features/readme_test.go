package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeReadme(t *testing.T) {
	flags := AnalyzeReadme("# Widget\n\n## Installation\n\nRun `make test` to verify.")
	assert.True(t, flags.HasReadme)
	assert.True(t, flags.HasInstall)
	assert.True(t, flags.HasRun)
	assert.True(t, flags.HasTest)

	bare := AnalyzeReadme("just a title")
	assert.True(t, bare.HasReadme)
	assert.False(t, bare.HasInstall)
	assert.False(t, bare.HasTest)

	assert.Equal(t, ReadmeFlags{}, AnalyzeReadme(""))
}

func TestDetectTests(t *testing.T) {
	assert.True(t, DetectTests([]string{"src/main.go", "internal/store/db_test.go"}))
	assert.True(t, DetectTests([]string{"spec/widget_spec.rb"}))
	assert.False(t, DetectTests([]string{"src/main.go", "README.md"}))
	assert.False(t, DetectTests(nil))
}

func TestDetectCI(t *testing.T) {
	assert.True(t, DetectCI([]string{".github/workflows/ci.yml"}))
	assert.True(t, DetectCI([]string{".circleci/config.yml"}))
	assert.True(t, DetectCI([]string{".travis.yml"}))
	assert.False(t, DetectCI([]string{"Makefile", "src/pipeline.go"}))
}

func TestDetectScripts(t *testing.T) {
	assert.True(t, DetectScripts([]string{"Makefile"}))
	assert.True(t, DetectScripts([]string{"scripts/release.sh"}))
	assert.False(t, DetectScripts([]string{"src/main.go"}))
}

func TestDetectAIArtifacts(t *testing.T) {
	assert.True(t, DetectAIArtifacts([]string{"prompts/system.md"}, ""))
	assert.True(t, DetectAIArtifacts([]string{"agents/planner.yaml"}, ""))
	assert.True(t, DetectAIArtifacts(nil, "Uses an AI agent to triage issues"))
	assert.False(t, DetectAIArtifacts([]string{"src/main.go"}, ""))
}
