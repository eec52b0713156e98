package site

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/config"
	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/sidebar"
)

// Exported file names, written side by side.
const (
	ConfigFile   = "site.config.json"
	SidebarsFile = "sidebars.json"
)

// Export renders the configuration and the sidebars as JSON documents for
// the site generator. The classic preset's docs.sidebarPath is pointed at the
// exported sidebars file.
func (s *Site) Export() (configJSON, sidebarsJSON []byte, err error) {
	cfg := *s.Config
	cfg.Presets = make([]config.Activation, len(s.Config.Presets))
	for i, a := range s.Config.Presets {
		if a.Name == config.PresetClassic {
			a = withSidebarPath(a, "./"+SidebarsFile)
		}
		cfg.Presets[i] = a
	}

	configJSON, err = json.MarshalIndent(cfg.Export(), "", "  ")
	if err != nil {
		return nil, nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode configuration").Build()
	}
	sidebarsJSON, err = json.MarshalIndent(s.Sidebars.Export(), "", "  ")
	if err != nil {
		return nil, nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to encode sidebars").Build()
	}
	return append(configJSON, '\n'), append(sidebarsJSON, '\n'), nil
}

// withSidebarPath copies a so the original options stay untouched.
func withSidebarPath(a config.Activation, p string) config.Activation {
	opts := make(map[string]any, len(a.Options)+1)
	for k, v := range a.Options {
		opts[k] = v
	}
	docsOpts := map[string]any{}
	if existing, ok := opts["docs"].(map[string]any); ok {
		for k, v := range existing {
			docsOpts[k] = v
		}
	}
	docsOpts["sidebarPath"] = p
	opts["docs"] = docsOpts
	return config.Activation{Name: a.Name, Options: opts}
}

// WriteExport writes both exported documents into dir.
func (s *Site) WriteExport(dir string) error {
	configJSON, sidebarsJSON, err := s.Export()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create export directory").
			WithContext("path", dir).
			Build()
	}
	for name, data := range map[string][]byte{ConfigFile: configJSON, SidebarsFile: sidebarsJSON} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write export").
				WithContext("path", p).
				Build()
		}
	}
	return nil
}

// Snapshot is a digest of the configuration, the sidebars and, once
// loaded, the docs index. Reloading unchanged files yields the same value.
func (s *Site) Snapshot() string {
	h := sha256.New()
	h.Write([]byte(s.Config.Snapshot()))
	if data, err := sidebar.Marshal(s.Sidebars); err == nil {
		h.Write(data)
	}
	if s.index != nil {
		h.Write([]byte(s.index.Hash()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
