package sendwithus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplateFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestLoadTemplateVersions(t *testing.T) {
	dir := t.TempDir()
	writeTemplateFiles(t, dir, map[string]string{
		"welcome.subject":             "  Welcome aboard  \n",
		"welcome.html":                "<h1>Hi {{ name }}</h1>",
		"welcome.text":                "Hi {{ name }}",
		"password_reset.html.tmpl":    "<a href=\"{{ link }}\">Reset</a>",
		"billing/invoice-due.html":    "<p>Invoice</p>",
		"billing/invoice-due.subject": "Your invoice",
		"README.md":                   "ignored",
		".hidden.html":                "ignored",
	})

	versions, err := LoadTemplateVersions(dir)
	require.NoError(t, err)
	require.Len(t, versions, 3)

	welcome := versions["welcome"]
	require.NotNil(t, welcome)
	assert.Equal(t, "Welcome", welcome.Name)
	assert.Equal(t, "Welcome aboard", welcome.Subject)
	assert.Equal(t, "<h1>Hi {{ name }}</h1>", welcome.HTML)
	assert.Equal(t, "Hi {{ name }}", welcome.Text)

	reset := versions["password_reset"]
	require.NotNil(t, reset)
	assert.Equal(t, "Password Reset", reset.Name)
	assert.Empty(t, reset.Subject)

	invoice := versions["billing.invoice-due"]
	require.NotNil(t, invoice)
	assert.Equal(t, "Billing Invoice Due", invoice.Name)
	assert.Equal(t, "Your invoice", invoice.Subject)
}

func TestLoadTemplateVersionsErrors(t *testing.T) {
	t.Run("subject without body", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplateFiles(t, dir, map[string]string{"orphan.subject": "Hello"})

		_, err := LoadTemplateVersions(dir)
		require.Error(t, err)
		assert.True(t, IsConfigurationError(err))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadTemplateVersions(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})
}

func TestIsPathWithinDir(t *testing.T) {
	assert.True(t, isPathWithinDir("/tmp/templates/a.html", "/tmp/templates"))
	assert.True(t, isPathWithinDir("/tmp/templates/sub/a.html", "/tmp/templates"))
	assert.False(t, isPathWithinDir("/tmp/other/a.html", "/tmp/templates"))
	assert.False(t, isPathWithinDir("/tmp/templates/../secrets", "/tmp/templates"))
}
