// Package linkcheck finds broken references between the site configuration,
// the sidebars, the docs tree and the redirect table, and reports them with
// the configured on_broken_links / on_broken_markdown_links policies.
package linkcheck

import (
	"fmt"
	"log/slog"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

// Class selects which policy applies to a finding.
type Class string

const (
	ClassLink         Class = "link"
	ClassMarkdownLink Class = "markdown_link"
)

// Finding is one broken reference.
type Finding struct {
	Class  Class  `json:"class"`
	Source string `json:"source"` // where the reference lives, e.g. navbar.items[3] or a doc path
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// Report holds the findings of a check together with the policies that
// decide how they are surfaced.
type Report struct {
	findings       []Finding
	linkPolicy     config.ReportingSeverity
	markdownPolicy config.ReportingSeverity
}

// NewReport returns an empty report. Empty policies fall back to throw for
// links and warn for markdown links.
func NewReport(linkPolicy, markdownPolicy config.ReportingSeverity) *Report {
	if linkPolicy == "" {
		linkPolicy = config.SeverityThrow
	}
	if markdownPolicy == "" {
		markdownPolicy = config.SeverityWarn
	}
	return &Report{linkPolicy: linkPolicy, markdownPolicy: markdownPolicy}
}

func (r *Report) add(f Finding) { r.findings = append(r.findings, f) }

// Findings returns every finding, including ignored ones, in check order.
func (r *Report) Findings() []Finding { return r.findings }

// Len returns the number of findings.
func (r *Report) Len() int { return len(r.findings) }

// Policy returns the reporting severity that applies to f.
func (r *Report) Policy(f Finding) config.ReportingSeverity {
	if f.Class == ClassMarkdownLink {
		return r.markdownPolicy
	}
	return r.linkPolicy
}

// Visible returns the findings whose policy is not ignore.
func (r *Report) Visible() []Finding {
	var out []Finding
	for _, f := range r.findings {
		if r.Policy(f) != config.SeverityIgnore {
			out = append(out, f)
		}
	}
	return out
}

// Log writes each finding at the level its policy asks for. Throw findings
// are logged as errors; Err turns them into a failure.
func (r *Report) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, f := range r.findings {
		policy := r.Policy(f)
		attrs := []any{
			slog.String("class", string(f.Class)),
			slog.String("source", f.Source),
			slog.String("target", f.Target),
			logfields.Policy(string(policy)),
		}
		switch policy {
		case config.SeverityThrow:
			logger.Error("Broken link: "+f.Reason, attrs...)
		case config.SeverityWarn:
			logger.Warn("Broken link: "+f.Reason, attrs...)
		case config.SeverityLog:
			logger.Info("Broken link: "+f.Reason, attrs...)
		}
	}
}

// Err returns a links error when any finding's policy is throw.
func (r *Report) Err() error {
	var first *Finding
	count := 0
	for i, f := range r.findings {
		if r.Policy(f) != config.SeverityThrow {
			continue
		}
		if first == nil {
			first = &r.findings[i]
		}
		count++
	}
	if first == nil {
		return nil
	}
	return derrors.LinkError(fmt.Sprintf("%d broken link(s); first: %s -> %s (%s)", count, first.Source, first.Target, first.Reason)).
		WithContext("count", count).
		WithContext("source", first.Source).
		WithContext("target", first.Target).
		Build()
}
