package domain_test

import (
	"testing"

	"github.com/openkraft/visionboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_RunsEveryCheck(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.KnownCheckCodes, cfg.EnabledChecks())
	assert.Equal(t, domain.DefaultConcurrency, cfg.Workers())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ChecksWithoutBlockStayEnabled(t *testing.T) {
	cfg := domain.Config{Checks: map[string]map[string]any{
		"softwareDesignTraining": {"validity": "720h"},
	}}
	assert.Equal(t, domain.KnownCheckCodes, cfg.EnabledChecks())
}

func TestConfig_EnabledFalseSwitchesCheckOff(t *testing.T) {
	cfg := domain.Config{Checks: map[string]map[string]any{
		"githubOrgMFA":           {"enabled": false},
		"softwareDesignTraining": {},
	}}
	assert.Equal(t, []domain.CheckCode{domain.CheckSoftwareDesignTraining}, cfg.EnabledChecks())
}

func TestConfig_ParamsForDropsEnabled(t *testing.T) {
	cfg := domain.Config{Checks: map[string]map[string]any{
		"githubOrgMFA": {"enabled": true, "no_evidence": "failed"},
	}}
	assert.Equal(t, map[string]any{"no_evidence": "failed"}, cfg.ParamsFor(domain.CheckGithubOrgMFA))
	assert.Nil(t, cfg.ParamsFor(domain.CheckSoftwareDesignTraining))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.Config
		wantErr string
	}{
		{"negative concurrency", domain.Config{Concurrency: -1}, "concurrency"},
		{"unknown check", domain.Config{Checks: map[string]map[string]any{"signedCommits": {}}}, "unknown check"},
		{"enabled not bool", domain.Config{Checks: map[string]map[string]any{"githubOrgMFA": {"enabled": "yes"}}}, "enabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_WorkersHonoursExplicitValue(t *testing.T) {
	assert.Equal(t, 2, domain.Config{Concurrency: 2}.Workers())
}
