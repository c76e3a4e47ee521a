package editor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ethanbaker/textcraft/pkg/utils"
)

// Placeholder is the substitution point every template must contain exactly once
const Placeholder = "{text}"

// defaultTemplates maps every action to its built-in instruction template.
// Each template carries the transformation intent, a stylistic constraint,
// and an instruction to return only the transformed text with no commentary
var defaultTemplates = map[Action]string{
	ActionFix: `Fix all spelling, punctuation, and grammar mistakes in the text below.
Keep the original style and meaning. Do not add commentary, return only the corrected text.

Text: {text}`,

	ActionShorten: `Shorten this text by removing filler words, repetition, and fluff.
Keep only the essence and the key ideas. Preserve the core meaning. Aim to make the text 30-50% shorter. Do not add commentary, return only the shortened text.

Text: {text}`,

	ActionImprove: `Improve this text: make it clearer, more persuasive, and more pleasant to read.
Improve sentence structure and choose more precise words, but keep the original meaning and tone. Do not add commentary, return only the improved text.

Text: {text}`,

	ActionFormal: `Rewrite this text in a formal business register.
Use professional vocabulary and complete sentences, avoid colloquial expressions.
Suitable for official letters, documents, and reports. Do not add commentary, return only the business text.

Text: {text}`,

	ActionFriendly: `Rewrite this text in a friendly, informal style.
Use conversational expressions and emojis (where appropriate), make the text warm and positive.
Suitable for social media, personal messages, and blogs. Do not add commentary, return only the friendly text.

Text: {text}`,

	ActionRephrase: `Rephrase this text, saying the same thing in different words.
Change the sentence structure and use synonyms, but preserve the exact meaning of the original. Do not add commentary, return only the rephrased text.

Text: {text}`,

	ActionContinue: `Continue this text logically and stylistically.
Add 2-3 sentences to the end that naturally extend the thought. Do not add commentary, return only the original text plus its continuation.

Text: {text}`,
}

// Catalog is a total mapping from every action to one instruction template.
// Built-in defaults cover the whole action set; overrides loaded from files
// replace individual entries but can never make the catalog partial
type Catalog struct {
	templates map[Action]string
}

// NewCatalog creates a catalog populated with the built-in templates
func NewCatalog() *Catalog {
	templates := make(map[Action]string, len(defaultTemplates))
	for action, tmpl := range defaultTemplates {
		templates[action] = tmpl
	}
	return &Catalog{templates: templates}
}

// Template returns the instruction template for an action
func (c *Catalog) Template(action Action) (string, error) {
	tmpl, ok := c.templates[action]
	if !ok {
		return "", ErrUnknownAction
	}
	return tmpl, nil
}

// Render substitutes the subject text into the action's template
func (c *Catalog) Render(action Action, text string) (string, error) {
	tmpl, err := c.Template(action)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(tmpl, Placeholder, text), nil
}

// LoadOverridesFile replaces templates for the actions named in a YAML file
// of the form `action-token: template`. Entries for unknown actions or
// templates missing the placeholder are rejected
func (c *Catalog) LoadOverridesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read prompts file %s: %w", path, err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}

	for token, tmpl := range overrides {
		action, err := ParseAction(token)
		if err != nil {
			return fmt.Errorf("prompts file %s: unknown action '%s'", path, token)
		}
		if err := c.setTemplate(action, tmpl); err != nil {
			return fmt.Errorf("prompts file %s: %w", path, err)
		}
	}
	return nil
}

// LoadOverridesDir replaces templates from per-action files named
// <dir>/<action-token>.txt, keeping the built-in default for any action
// without a file. Invalid override files are logged and skipped
func (c *Catalog) LoadOverridesDir(dir string) {
	for _, action := range Actions() {
		path := filepath.Join(dir, string(action)+".txt")
		tmpl := utils.LoadPromptWithFallback(path, c.templates[action])
		if err := c.setTemplate(action, tmpl); err != nil {
			log.Printf("[EDITOR]: skipping prompt override %s: %v", path, err)
		}
	}
}

// setTemplate installs a template after checking it has exactly one placeholder
func (c *Catalog) setTemplate(action Action, tmpl string) error {
	if strings.Count(tmpl, Placeholder) != 1 {
		return fmt.Errorf("template for '%s' must contain the %s placeholder exactly once", action, Placeholder)
	}
	c.templates[action] = tmpl
	return nil
}
