package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogTotality(t *testing.T) {
	catalog := NewCatalog()

	// Every action has a template with exactly one placeholder and the
	// no-commentary instruction
	for _, action := range Actions() {
		tmpl, err := catalog.Template(action)
		require.NoError(t, err, "template for %s", action)
		assert.Equal(t, 1, strings.Count(tmpl, Placeholder), "placeholder count for %s", action)
		assert.Contains(t, tmpl, "Do not add commentary", "no-commentary clause for %s", action)
	}

	_, err := catalog.Template(Action("unknown"))
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCatalogRender(t *testing.T) {
	catalog := NewCatalog()

	prompt, err := catalog.Render(ActionFix, "teh quick brown fox")
	require.NoError(t, err)
	assert.Contains(t, prompt, "teh quick brown fox")
	assert.NotContains(t, prompt, Placeholder)

	_, err = catalog.Render(Action("unknown"), "text")
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestCatalogLoadOverridesFile(t *testing.T) {
	catalog := NewCatalog()
	dir := t.TempDir()

	// Test case 1: valid override replaces only the named action
	path := filepath.Join(dir, "prompts.yaml")
	content := "fix: |\n  Correct the text below.\n\n  Text: {text}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, catalog.LoadOverridesFile(path))

	tmpl, err := catalog.Template(ActionFix)
	require.NoError(t, err)
	assert.Contains(t, tmpl, "Correct the text below.")

	tmpl, err = catalog.Template(ActionShorten)
	require.NoError(t, err)
	assert.Contains(t, tmpl, "Shorten this text")

	// Test case 2: unknown action key is rejected
	badAction := filepath.Join(dir, "bad-action.yaml")
	require.NoError(t, os.WriteFile(badAction, []byte("delete: 'nope {text}'"), 0644))
	assert.Error(t, catalog.LoadOverridesFile(badAction))

	// Test case 3: template without the placeholder is rejected
	badTemplate := filepath.Join(dir, "bad-template.yaml")
	require.NoError(t, os.WriteFile(badTemplate, []byte("fix: 'no placeholder here'"), 0644))
	assert.Error(t, catalog.LoadOverridesFile(badTemplate))

	// Test case 4: missing file is an error
	assert.Error(t, catalog.LoadOverridesFile(filepath.Join(dir, "missing.yaml")))
}

func TestCatalogLoadOverridesDir(t *testing.T) {
	catalog := NewCatalog()
	dir := t.TempDir()

	// One override file; every other action keeps its default
	override := "Make this text shorter.\n\nText: {text}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shorten.txt"), []byte(override), 0644))

	// An invalid override (no placeholder) is skipped, keeping the default
	require.NoError(t, os.WriteFile(filepath.Join(dir, "improve.txt"), []byte("broken"), 0644))

	catalog.LoadOverridesDir(dir)

	tmpl, err := catalog.Template(ActionShorten)
	require.NoError(t, err)
	assert.Equal(t, override, tmpl)

	tmpl, err = catalog.Template(ActionImprove)
	require.NoError(t, err)
	assert.Contains(t, tmpl, "Improve this text")

	// Catalog stays total after overrides
	for _, action := range Actions() {
		_, err := catalog.Template(action)
		assert.NoError(t, err)
	}
}
