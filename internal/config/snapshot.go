package config

import (
	"crypto/sha256"
	"encoding/hex"

	"gopkg.in/yaml.v3"
)

// Snapshot returns a stable hash of the configuration. Two loads of the same
// file produce the same snapshot; any change to a field (including option
// values) changes it. Map keys are hashed in sorted order.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
