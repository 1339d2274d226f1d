package validator_test

import (
	"testing"
	"time"

	"github.com/openkraft/visionboard/internal/domain"
	"github.com/openkraft/visionboard/internal/domain/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes_MatchCatalog(t *testing.T) {
	assert.Equal(t, domain.KnownCheckCodes, validator.Codes())
}

func TestCreate_UnknownCode(t *testing.T) {
	_, err := validator.Create("signedCommits", validator.Options{Now: referenceTime})
	assert.ErrorIs(t, err, validator.ErrUnknownCheck)
}

func TestCreate_ReturnsMatchingValidator(t *testing.T) {
	for _, code := range validator.Codes() {
		v, err := validator.Create(code, validator.Options{Now: referenceTime})
		require.NoError(t, err)
		assert.Equal(t, code, v.Code())
		assert.NotEmpty(t, v.RequiredSignals())
	}
}

func TestCreate_DecodesDurationParams(t *testing.T) {
	v, err := validator.Create(domain.CheckSoftwareDesignTraining, validator.Options{
		Now:    referenceTime,
		Params: map[string]any{"validity": "720h"},
	})
	require.NoError(t, err)

	training := v.(*validator.SoftwareDesignTraining)
	stale := []domain.SoftwareDesignTraining{{ProjectID: 1, TrainingDate: referenceTime.Add(-31 * 24 * time.Hour)}}
	assert.Equal(t, domain.StatusFailed, training.Resolve(stale).Status)
}

func TestCreate_DecodesNoEvidencePolicy(t *testing.T) {
	v, err := validator.Create(domain.CheckGithubOrgMFA, validator.Options{
		Params: map[string]any{"no_evidence": "failed"},
	})
	require.NoError(t, err)

	verdict := v.(*validator.GithubOrgMFA).Resolve(nil)
	assert.Equal(t, domain.StatusFailed, verdict.Status)
}

func TestCreate_RejectsUnknownParams(t *testing.T) {
	_, err := validator.Create(domain.CheckGithubOrgMFA, validator.Options{
		Params: map[string]any{"no_evidense": "failed"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "githubOrgMFA")
}

func TestCreate_RejectsBadDuration(t *testing.T) {
	_, err := validator.Create(domain.CheckSoftwareDesignTraining, validator.Options{
		Now:    referenceTime,
		Params: map[string]any{"validity": "a year"},
	})
	assert.Error(t, err)
}

func TestCreate_TrainingNeedsReferenceTime(t *testing.T) {
	_, err := validator.Create(domain.CheckSoftwareDesignTraining, validator.Options{})
	assert.Error(t, err)
}

func TestCreate_RejectsDurationWithoutUnit(t *testing.T) {
	for _, validity := range []any{365, int64(8760), 1.5} {
		_, err := validator.Create(domain.CheckSoftwareDesignTraining, validator.Options{
			Now:    referenceTime,
			Params: map[string]any{"validity": validity},
		})
		require.Error(t, err, "validity %v", validity)
		assert.Contains(t, err.Error(), "8760h")
	}
}
