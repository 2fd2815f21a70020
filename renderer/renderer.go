package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	pokergame "github.com/KidMaxi/pokergamemanager-sub001"
)

//go:embed templates/*.md
var templateFiles embed.FS

// templates holds the markdown templates, one file per section.
var templates, _ = fs.Sub(templateFiles, "templates")

// SessionRenderOptions holds configuration for rendering a session report.
type SessionRenderOptions struct {
	SkipHistory bool // Do not render the history section.
}

// RenderSession renders the Session struct to a markdown string.
func RenderSession(s *Session, opts SessionRenderOptions) string {
	partials := map[string]string{
		"session_title":   "session_title.md",
		"session_players": "session_players.md",
	}
	// An empty file name results in an empty template.
	if !opts.SkipHistory {
		partials["session_history"] = "session_history.md"
	} else {
		partials["session_history"] = ""
	}
	return renderTemplate("session", "session.md", partials, s)
}

// RenderSettlement renders the Settlement struct to a markdown string.
func RenderSettlement(s *Settlement) string {
	partials := map[string]string{
		"settlement_results":   "settlement_results.md",
		"settlement_transfers": "settlement_transfers.md",
	}
	return renderTemplate("settlement", "settlement.md", partials, s)
}

// SessionMarkdown renders a session report straight from the ledger.
func SessionMarkdown(s pokergame.Session, opts SessionRenderOptions) string {
	return RenderSession(NewSession(s), opts)
}

// SettlementMarkdown computes and renders the settlement of a completed session.
func SettlementMarkdown(s pokergame.Session) (string, error) {
	v, err := NewSettlement(s)
	if err != nil {
		return "", err
	}
	return RenderSettlement(v), nil
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
