package domain

import (
	"fmt"
	"slices"
)

// KnownCheckCodes enumerates every check code with a validator.
var KnownCheckCodes = []CheckCode{
	CheckGithubOrgMFA,
	CheckSoftwareDesignTraining,
}

// DefaultConcurrency bounds how many checks are evaluated at once when the
// config leaves concurrency unset.
const DefaultConcurrency = 4

// Config holds workspace configuration loaded from .visionboard.yaml or
// .visionboard.toml.
type Config struct {
	// Dataset is the signal file evaluated when none is given on the command line.
	Dataset     string `yaml:"dataset"     toml:"dataset"     json:"dataset,omitempty"`
	Concurrency int    `yaml:"concurrency" toml:"concurrency" json:"concurrency,omitempty"`
	// Checks maps a check code to its policy parameters. Checks without a
	// block run with default parameters. The reserved "enabled" key switches
	// a check off.
	Checks map[string]map[string]any `yaml:"checks" toml:"checks" json:"checks,omitempty"`
}

// DefaultConfig returns a config that runs every known check with defaults.
func DefaultConfig() Config {
	return Config{}
}

// Workers returns the effective concurrency.
func (c Config) Workers() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

// EnabledChecks returns the check codes to evaluate, in KnownCheckCodes order.
// A check runs unless its block sets "enabled" to false.
func (c Config) EnabledChecks() []CheckCode {
	var codes []CheckCode
	for _, code := range KnownCheckCodes {
		if enabled, ok := c.Checks[string(code)]["enabled"].(bool); ok && !enabled {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

// ParamsFor returns the policy parameters of a check without the reserved
// "enabled" key.
func (c Config) ParamsFor(code CheckCode) map[string]any {
	src := c.Checks[string(code)]
	if len(src) == 0 {
		return nil
	}
	params := make(map[string]any, len(src))
	for k, v := range src {
		if k == "enabled" {
			continue
		}
		params[k] = v
	}
	return params
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency = %d (must be zero or positive)", c.Concurrency)
	}

	for code, params := range c.Checks {
		if !IsKnownCheckCode(CheckCode(code)) {
			return fmt.Errorf("unknown check %q in checks", code)
		}
		if v, ok := params["enabled"]; ok {
			if _, isBool := v.(bool); !isBool {
				return fmt.Errorf("checks.%s.enabled must be a boolean", code)
			}
		}
	}

	return nil
}

// IsKnownCheckCode reports whether code has a validator.
func IsKnownCheckCode(code CheckCode) bool {
	return slices.Contains(KnownCheckCodes, code)
}
