package sendwithus

import (
	"context"
	"net/http"
)

// ListTemplates returns every template of the account.
func (c *Client) ListTemplates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.do(ctx, newRequest("ListTemplates", http.MethodGet, "templates"), &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate returns a template. An empty locale returns the default locale's template.
func (c *Client) GetTemplate(ctx context.Context, templateID, locale string) (*Template, error) {
	path, err := templatePath(templateID, locale)
	if err != nil {
		return nil, err
	}

	var template Template
	if err := c.do(ctx, newRequest("GetTemplate", http.MethodGet, path), &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// ListTemplateVersions returns the versions of a template, optionally in one locale.
func (c *Client) ListTemplateVersions(ctx context.Context, templateID, locale string) ([]TemplateVersion, error) {
	path, err := templatePath(templateID, locale, "versions")
	if err != nil {
		return nil, err
	}

	var versions []TemplateVersion
	if err := c.do(ctx, newRequest("ListTemplateVersions", http.MethodGet, path), &versions); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetTemplateVersion returns one version of a template.
func (c *Client) GetTemplateVersion(ctx context.Context, templateID, locale, versionID string) (*TemplateVersion, error) {
	if err := requireArg("version_id", versionID); err != nil {
		return nil, err
	}
	path, err := templatePath(templateID, locale, "versions", versionID)
	if err != nil {
		return nil, err
	}

	var version TemplateVersion
	if err := c.do(ctx, newRequest("GetTemplateVersion", http.MethodGet, path), &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// UpdateTemplateVersion replaces the content of a template version.
func (c *Client) UpdateTemplateVersion(ctx context.Context, templateID, locale, versionID string, version *TemplateVersion) (*TemplateVersion, error) {
	if err := requireArg("version_id", versionID); err != nil {
		return nil, err
	}
	if version == nil {
		return nil, NewValidationError("version", "version is required")
	}
	path, err := templatePath(templateID, locale, "versions", versionID)
	if err != nil {
		return nil, err
	}

	var updated TemplateVersion
	rd := newRequest("UpdateTemplateVersion", http.MethodPut, path).withBody(version)
	if err := c.do(ctx, rd, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// CreateTemplate creates a new template whose first version is version.
func (c *Client) CreateTemplate(ctx context.Context, version *TemplateVersion) (*Template, error) {
	if version == nil {
		return nil, NewValidationError("version", "version is required")
	}

	var template Template
	rd := newRequest("CreateTemplate", http.MethodPost, "templates").withBody(version)
	if err := c.do(ctx, rd, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// AddTemplateLocale adds a locale to an existing template, with version as its first version.
func (c *Client) AddTemplateLocale(ctx context.Context, templateID, locale string, version *TemplateVersion) (*Template, error) {
	if err := requireArg("template_id", templateID); err != nil {
		return nil, err
	}
	if err := requireArg("locale", locale); err != nil {
		return nil, err
	}
	if version == nil {
		return nil, NewValidationError("version", "version is required")
	}

	if err := validateLocale(locale); err != nil {
		return nil, err
	}

	// The locale travels in the body; the caller's value is not modified.
	body := *version
	body.Locale = locale

	var template Template
	rd := newRequest("AddTemplateLocale", http.MethodPost, resourcePath("templates", templateID, "locales")).withBody(&body)
	if err := c.do(ctx, rd, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateTemplateVersion adds a version to a template, optionally in one locale.
func (c *Client) CreateTemplateVersion(ctx context.Context, templateID, locale string, version *TemplateVersion) (*TemplateVersion, error) {
	if version == nil {
		return nil, NewValidationError("version", "version is required")
	}
	path, err := templatePath(templateID, locale, "versions")
	if err != nil {
		return nil, err
	}

	var created TemplateVersion
	rd := newRequest("CreateTemplateVersion", http.MethodPost, path).withBody(version)
	if err := c.do(ctx, rd, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteTemplate deletes a template, or only one of its locales when locale is set.
func (c *Client) DeleteTemplate(ctx context.Context, templateID, locale string) (*APIStatus, error) {
	path, err := templatePath(templateID, locale)
	if err != nil {
		return nil, err
	}

	var status APIStatus
	if err := c.do(ctx, newRequest("DeleteTemplate", http.MethodDelete, path), &status); err != nil {
		return nil, err
	}
	return &status, nil
}
