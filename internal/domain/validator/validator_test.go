package validator_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/openkraft/visionboard/internal/domain"
	"github.com/openkraft/visionboard/internal/domain/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByProject_EveryProjectIsAKey(t *testing.T) {
	orgs := []domain.GithubOrganization{
		{ProjectID: 1, Login: "a"},
		{ProjectID: 99, Login: "stray"},
		{ProjectID: 1, Login: "b"},
	}
	projects := []domain.Project{{ID: 1}, {ID: 2}}

	groups := validator.GroupByProject(orgs, func(o domain.GithubOrganization) int64 { return o.ProjectID }, projects)

	require.Len(t, groups, 2)
	assert.Len(t, groups[1], 2)
	assert.Equal(t, "a", groups[1][0].Login)
	assert.Equal(t, "b", groups[1][1].Login)

	records, ok := groups[2]
	assert.True(t, ok, "project without records must still be present")
	assert.Empty(t, records)

	_, ok = groups[99]
	assert.False(t, ok, "records of unlisted projects are ignored")
}

func TestAggregate_AlertOnlyForFailed(t *testing.T) {
	projects := []domain.Project{{ID: 1}, {ID: 2}, {ID: 3}}
	statuses := map[int64]domain.Status{1: domain.StatusPassed, 2: domain.StatusUnknown, 3: domain.StatusFailed}
	groups := map[int64][]int64{1: {1}, 2: {2}, 3: {3}}

	analysis := validator.Aggregate(sampleCheck(), projects, groups, func(ids []int64) validator.Verdict {
		return validator.Verdict{Status: statuses[ids[0]], Rationale: "r", AlertTitle: "alert", TaskTitle: "task"}
	})

	require.Len(t, analysis.Results, 3)
	require.Len(t, analysis.Alerts, 1)
	require.Len(t, analysis.Tasks, 1)
	assert.Equal(t, int64(3), analysis.Alerts[0].ProjectID)
	assert.Equal(t, "alert", analysis.Alerts[0].Title)
	assert.Equal(t, "task", analysis.Tasks[0].Title)
	assert.Equal(t, "Check the details on https://example.com", analysis.Tasks[0].Description)
}

func TestSeverityPropagatesToEveryOutput(t *testing.T) {
	check := sampleCheck()
	check.DefaultPriorityGroup = "P7"
	v := newTraining(t, 0)

	analysis, err := v.Validate(domain.Signals{}, check, sampleProjects())
	require.NoError(t, err)

	for _, r := range analysis.Results {
		assert.Equal(t, "high", r.Severity)
	}
	for _, a := range analysis.Alerts {
		assert.Equal(t, "high", a.Severity)
	}
	for _, task := range analysis.Tasks {
		assert.Equal(t, "high", task.Severity)
	}
}

func TestValidate_RejectsStructuralDefects(t *testing.T) {
	v := newMFA(t, validator.MFAPolicy{})

	tests := []struct {
		name     string
		check    domain.Check
		projects []domain.Project
		want     error
	}{
		{"missing id", domain.Check{DetailsURL: "https://example.com"}, sampleProjects(), validator.ErrInvalidCheck},
		{"missing details url", domain.Check{ID: 1}, sampleProjects(), validator.ErrInvalidCheck},
		{"wrong code", domain.Check{ID: 1, Code: domain.CheckSoftwareDesignTraining, DetailsURL: "https://example.com"}, sampleProjects(), validator.ErrInvalidCheck},
		{"duplicate project", sampleCheck(), []domain.Project{{ID: 1}, {ID: 1}}, validator.ErrDuplicateProject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(domain.Signals{}, tt.check, tt.projects)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// mixedSignals spreads every MFA and training outcome over five projects.
func mixedSignals() (domain.Signals, []domain.Project) {
	projects := []domain.Project{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	signals := domain.Signals{
		Organizations: []domain.GithubOrganization{
			{ProjectID: 1, Login: "a", TwoFactorRequirementEnabled: boolPtr(true)},
			{ProjectID: 2, Login: "b", TwoFactorRequirementEnabled: boolPtr(false)},
			{ProjectID: 3, Login: "c"},
			{ProjectID: 4, Login: "d", TwoFactorRequirementEnabled: boolPtr(false)},
			{ProjectID: 4, Login: "e"},
		},
		Trainings: []domain.SoftwareDesignTraining{
			{ProjectID: 1, TrainingDate: referenceTime},
			{ProjectID: 2, TrainingDate: time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)},
			{ProjectID: 3},
		},
	}
	return signals, projects
}

func allValidators(t *testing.T) []validator.Validator {
	t.Helper()
	var vs []validator.Validator
	for _, code := range validator.Codes() {
		v, err := validator.Create(code, validator.Options{Now: referenceTime})
		require.NoError(t, err)
		vs = append(vs, v)
	}
	return vs
}

func TestValidators_CompletenessAndParity(t *testing.T) {
	signals, projects := mixedSignals()

	for _, v := range allValidators(t) {
		t.Run(string(v.Code()), func(t *testing.T) {
			analysis, err := v.Validate(signals, sampleCheck(), projects)
			require.NoError(t, err)

			require.Len(t, analysis.Results, len(projects))
			for i, r := range analysis.Results {
				assert.Equal(t, projects[i].ID, r.ProjectID)
			}

			failed := analysis.CountByStatus()[domain.StatusFailed]
			assert.Len(t, analysis.Alerts, failed)
			assert.Len(t, analysis.Tasks, failed)
			for i := range analysis.Alerts {
				assert.Equal(t, analysis.Alerts[i].ProjectID, analysis.Tasks[i].ProjectID)
			}
		})
	}
}

func TestValidators_Isolation(t *testing.T) {
	signals, projects := mixedSignals()

	for _, v := range allValidators(t) {
		t.Run(string(v.Code()), func(t *testing.T) {
			full, err := v.Validate(signals, sampleCheck(), projects)
			require.NoError(t, err)

			// Evaluating project 1 alone must give the same verdict it got
			// next to failing neighbours.
			alone, err := v.Validate(signals, sampleCheck(), projects[:1])
			require.NoError(t, err)
			assert.Equal(t, full.Results[0], alone.Results[0])
		})
	}
}

func TestValidators_IdempotentAndPure(t *testing.T) {
	signals, projects := mixedSignals()
	before, err := json.Marshal(signals)
	require.NoError(t, err)

	for _, v := range allValidators(t) {
		t.Run(string(v.Code()), func(t *testing.T) {
			first, err := v.Validate(signals, sampleCheck(), projects)
			require.NoError(t, err)
			second, err := v.Validate(signals, sampleCheck(), projects)
			require.NoError(t, err)

			a, err := json.Marshal(first)
			require.NoError(t, err)
			b, err := json.Marshal(second)
			require.NoError(t, err)
			assert.Equal(t, string(a), string(b))
		})
	}

	after, err := json.Marshal(signals)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after), "inputs must not be mutated")
}

func TestValidators_EmptyAnalysisRendersArrays(t *testing.T) {
	v := newMFA(t, validator.MFAPolicy{})

	analysis, err := v.Validate(domain.Signals{}, sampleCheck(), nil)
	require.NoError(t, err)

	data, err := json.Marshal(analysis)
	require.NoError(t, err)
	assert.JSONEq(t, `{"alerts":[],"results":[],"tasks":[]}`, string(data))
}
