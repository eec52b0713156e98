// Package remotecontent downloads the documents declared by
// docusaurus-plugin-remote-content activations into the site tree.
package remotecontent

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Options mirrors the plugin options the toolkit understands.
type Options struct {
	Name           string   `yaml:"name"`
	SourceBaseURL  string   `yaml:"sourceBaseUrl"`
	OutDir         string   `yaml:"outDir"`
	Documents      []string `yaml:"documents"`
	PerformCleanup bool     `yaml:"performCleanup"`
	// NoRuntimeDownloads disables fetching on serve; explicit fetch still runs.
	NoRuntimeDownloads bool `yaml:"noRuntimeDownloads"`
}

var safeName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// FromOptions decodes and validates one plugin activation.
func FromOptions(a config.Activation) (Options, error) {
	var opts Options
	if err := a.Decode(&opts); err != nil {
		return Options{}, derrors.WrapError(err, derrors.CategoryConfig, "invalid remote content options").
			WithContext("plugin", a.Name).
			Build()
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// FromConfig returns the options of every remote content activation in cfg.
func FromConfig(cfg *config.Config) ([]Options, error) {
	var out []Options
	seen := map[string]bool{}
	for _, a := range cfg.PluginsNamed(config.PluginRemoteContent) {
		opts, err := FromOptions(a)
		if err != nil {
			return nil, err
		}
		if seen[opts.Name] {
			return nil, invalid("name", fmt.Sprintf("remote content name %q is used twice", opts.Name))
		}
		seen[opts.Name] = true
		out = append(out, opts)
	}
	return out, nil
}

// Validate checks the name, the source URL and every document path.
func (o Options) Validate() error {
	if !safeName.MatchString(o.Name) {
		return invalid("name", fmt.Sprintf("remote content name %q must contain only letters, digits, '.', '_' or '-'", o.Name))
	}
	if !strings.HasPrefix(o.SourceBaseURL, "http://") && !strings.HasPrefix(o.SourceBaseURL, "https://") {
		return invalid("sourceBaseUrl", "source base URL must be http or https")
	}
	if len(o.Documents) == 0 {
		return invalid("documents", "at least one document is required")
	}
	for i, doc := range o.Documents {
		if _, ok := cleanDocument(doc); !ok {
			return invalid(fmt.Sprintf("documents[%d]", i), fmt.Sprintf("document %q must be a relative path inside the output directory", doc))
		}
	}
	return nil
}

func invalid(field, message string) error {
	return derrors.ValidationError(message).
		WithContext("plugin", config.PluginRemoteContent).
		WithContext("path", field).
		Build()
}

// cleanDocument returns doc as a clean slash path, rejecting anything that
// would leave the output directory.
func cleanDocument(doc string) (string, bool) {
	if doc == "" || strings.HasPrefix(doc, "/") || strings.Contains(doc, "\\") {
		return "", false
	}
	clean := path.Clean(doc)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return clean, true
}
