package ingest

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gitscreen-engine/internal/domain"
)

const tokenCutset = " ,.;:()[]{}\n\t\r\""

// LoadJobRequirement tokenizes a job description file into the keyword
// set used for fit matching. A missing file yields an empty requirement
// (fit contributes zero); an unreadable one is an error.
func LoadJobRequirement(path string) (domain.JobRequirement, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewJobRequirement(nil), nil
		}
		return domain.JobRequirement{}, fmt.Errorf("read job description: %w", err)
	}

	var tokens []string
	for _, raw := range strings.Fields(strings.ToLower(string(b))) {
		token := strings.Trim(raw, tokenCutset)
		if utf8.RuneCountInString(token) >= 3 {
			tokens = append(tokens, token)
		}
	}
	return domain.NewJobRequirement(tokens), nil
}
