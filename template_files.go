package sendwithus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template file parts. A template directory holds <name>.subject, <name>.html
// and <name>.text files, optionally followed by a .tmpl or .tpl extension.
const (
	partSubject = ".subject"
	partHTML    = ".html"
	partText    = ".text"
)

var versionNameReplacer = strings.NewReplacer("_", " ", "-", " ", ".", " ")

// LoadTemplateVersions reads every template in dir and returns one version per
// template name. Files in subdirectories get dotted names ("billing.invoice").
// The version name is the title cased template name ("password_reset" becomes
// "Password Reset").
func LoadTemplateVersions(dir string) (map[string]*TemplateVersion, error) {
	// Clean and validate the directory path
	cleanDir := filepath.Clean(dir)
	versions := make(map[string]*TemplateVersion)

	err := filepath.WalkDir(cleanDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		// Security: Validate that the path is within the specified directory
		cleanPath := filepath.Clean(path)
		if !isPathWithinDir(cleanPath, cleanDir) {
			return fmt.Errorf("security error: path traversal detected: %s", path)
		}

		relativePath, err := filepath.Rel(cleanDir, cleanPath)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}

		name, part, ok := splitTemplateFile(relativePath)
		if !ok {
			return nil
		}

		content, err := os.ReadFile(cleanPath)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", cleanPath, err)
		}

		version, exists := versions[name]
		if !exists {
			version = &TemplateVersion{Name: versionName(name)}
			versions[name] = version
		}

		switch part {
		case partSubject:
			version.Subject = strings.TrimSpace(string(content))
		case partHTML:
			version.HTML = string(content)
		case partText:
			version.Text = string(content)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for name, version := range versions {
		if version.HTML == "" && version.Text == "" {
			return nil, NewValidationErrorWithValue("template", "template has neither an html nor a text body", name)
		}
	}

	return versions, nil
}

// splitTemplateFile maps "billing/invoice.html.tmpl" to ("billing.invoice", ".html").
func splitTemplateFile(relativePath string) (name, part string, ok bool) {
	trimmed := relativePath
	if ext := filepath.Ext(trimmed); ext == ".tmpl" || ext == ".tpl" {
		trimmed = strings.TrimSuffix(trimmed, ext)
	}

	part = filepath.Ext(trimmed)
	switch part {
	case partSubject, partHTML, partText:
	default:
		return "", "", false
	}

	name = strings.TrimSuffix(trimmed, part)
	if name == "" || strings.HasPrefix(filepath.Base(name), ".") {
		return "", "", false
	}

	// Replace path separators with dots for hierarchical templates
	name = strings.ReplaceAll(name, string(filepath.Separator), ".")
	return name, part, true
}

func versionName(templateName string) string {
	return cases.Title(language.English).String(versionNameReplacer.Replace(templateName))
}

// isPathWithinDir checks if a given path is within the specified directory to prevent path traversal attacks.
func isPathWithinDir(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}

	// If rel starts with "..", it's outside the directory
	return !strings.HasPrefix(rel, "..")
}
