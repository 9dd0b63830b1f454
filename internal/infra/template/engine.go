package template

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"portfolio-api/internal/domain/mail"
	"portfolio-api/internal/i18n"
)

var _ mail.Renderer = (*Engine)(nil)

// templateMeta holds the subject source and template name mapping for each
// email kind. Localized kinds have one template file per language.
type templateMeta struct {
	Subject      string // static fallback subject
	SubjectKey   string // i18n key, takes precedence when set
	TemplateName string
	Localized    bool
}

// registry maps email kinds to their metadata.
var registry = map[mail.Kind]templateMeta{
	mail.KindContactRequest:     {Subject: "New contact request", TemplateName: "contact_request"},
	mail.KindSubscribeConfirmed: {SubjectKey: "email.subscribe.subject", TemplateName: "subscription_confirmed", Localized: true},
	mail.KindSubscribeCancelled: {SubjectKey: "email.unsubscribe.subject", TemplateName: "subscription_cancelled", Localized: true},
}

// Engine renders email templates using Go's html/template package.
type Engine struct {
	templates *template.Template
}

// NewEngine creates a new template engine by loading all templates from the given directory.
func NewEngine(templatesDir string) (*Engine, error) {
	tmpl, err := template.ParseGlob(templatesDir + "/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates from %s: %w", templatesDir, err)
	}

	return &Engine{templates: tmpl}, nil
}

// Render produces a subject line, HTML body, and plain-text fallback for
// the given email kind in the given language.
func (e *Engine) Render(kind mail.Kind, lang i18n.Language, data map[string]any) (subject, html, text string, err error) {
	meta, ok := registry[kind]
	if !ok {
		return "", "", "", fmt.Errorf("no template registered for kind: %s", kind)
	}

	subject = meta.Subject
	if meta.SubjectKey != "" {
		subject = i18n.T(lang, meta.SubjectKey)
	}
	// Allow subject override via data
	if customSubject, ok := data["Subject"].(string); ok && customSubject != "" {
		subject = customSubject
	}

	name := meta.TemplateName
	if meta.Localized {
		name += "_" + string(lang)
	}

	// Render the HTML template
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name+".html", data); err != nil {
		return "", "", "", fmt.Errorf("executing template %s: %w", name, err)
	}
	html = buf.String()

	// Generate plain-text fallback by stripping HTML tags
	text = stripHTML(html)

	return subject, html, text, nil
}

// stripHTML removes HTML tags and collapses whitespace to produce a plain-text version.
func stripHTML(s string) string {
	// Remove HTML tags
	re := regexp.MustCompile(`<[^>]*>`)
	text := re.ReplaceAllString(s, "")

	// Decode common HTML entities
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&nbsp;", " ")

	// Collapse whitespace
	wsRe := regexp.MustCompile(`\s+`)
	text = wsRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
