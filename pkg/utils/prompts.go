package utils

import (
	"fmt"
	"os"
	"strings"
)

// LoadPrompt reads a prompt template from the given file path, trimming
// surrounding whitespace. The path must be exact, no fallback searching is
// performed
func LoadPrompt(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", filePath, err)
	}
	return strings.TrimSpace(string(content)), nil
}

// LoadPromptWithFallback reads a prompt template from the given file path,
// returning the fallback template when the file cannot be read
func LoadPromptWithFallback(filePath, fallback string) string {
	content, err := LoadPrompt(filePath)
	if err != nil {
		return fallback
	}
	return content
}
