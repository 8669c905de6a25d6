package features

import (
	"regexp"
	"strings"
)

// ReadmeFlags are the doc-quality markers detected on raw README text.
// Detection is marker presence only, never length or tone.
type ReadmeFlags struct {
	HasReadme  bool
	HasInstall bool
	HasRun     bool
	HasTest    bool
}

var installMarkers = []string{"install", "setup", "getting started"}
var runMarkers = []string{"usage", "run", "quickstart"}
var testMarkers = []string{"test", "pytest", "npm test", "go test"}

func AnalyzeReadme(text string) ReadmeFlags {
	if text == "" {
		return ReadmeFlags{}
	}
	lowered := strings.ToLower(text)
	return ReadmeFlags{
		HasReadme:  true,
		HasInstall: matchAny(lowered, installMarkers),
		HasRun:     matchAny(lowered, runMarkers),
		HasTest:    matchAny(lowered, testMarkers),
	}
}

var testPathRe = regexp.MustCompile(`test|tests|spec|pytest|unittest`)

// DetectTests looks for test directories/files among repo paths. A name
// match on a concrete path is the required marker; repo titles alone
// never count.
func DetectTests(paths []string) bool {
	for _, p := range paths {
		if testPathRe.MatchString(strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// DetectCI requires an actual CI config path, not a guess.
func DetectCI(paths []string) bool {
	for _, p := range paths {
		lowered := strings.ToLower(p)
		if strings.Contains(lowered, ".github/workflows") ||
			strings.Contains(lowered, "github/workflows") ||
			strings.Contains(lowered, "circleci") ||
			strings.Contains(lowered, "travis") {
			return true
		}
	}
	return false
}

func DetectScripts(paths []string) bool {
	for _, p := range paths {
		lowered := strings.ToLower(p)
		if strings.Contains(lowered, "makefile") || strings.Contains(lowered, "scripts/") {
			return true
		}
	}
	return false
}

var aiReadmeRe = regexp.MustCompile(`(?i)ai|prompt|agent`)

func DetectAIArtifacts(paths []string, readmeText string) bool {
	for _, p := range paths {
		lowered := strings.ToLower(p)
		if strings.Contains(lowered, "prompts") || strings.Contains(lowered, "agents") {
			return true
		}
	}
	return readmeText != "" && aiReadmeRe.MatchString(readmeText)
}

func matchAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
