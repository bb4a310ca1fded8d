package tailor

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed prompts.json
var promptFiles embed.FS

var (
	promptCache map[string]string
	promptOnce  sync.Once
	promptErr   error
)

// prompt retrieves an embedded prompt template by key.
func prompt(key string) (string, error) {
	promptOnce.Do(func() {
		data, err := promptFiles.ReadFile("prompts.json")
		if err != nil {
			promptErr = fmt.Errorf("failed to read prompts.json: %w", err)
			return
		}
		if err := json.Unmarshal(data, &promptCache); err != nil {
			promptErr = fmt.Errorf("failed to parse prompts.json: %w", err)
		}
	})
	if promptErr != nil {
		return "", promptErr
	}

	p, ok := promptCache[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return p, nil
}

// formatPrompt replaces {{.Key}} placeholders with values from data.
func formatPrompt(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
