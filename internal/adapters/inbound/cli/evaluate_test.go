package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/openkraft/visionboard/internal/adapters/inbound/cli"
	"github.com/openkraft/visionboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	datasetsDir  = "../../../../testdata/datasets"
	workspaceDir = "../../../../testdata/workspace"
	referenceNow = "2026-10-17T09:30:00Z"
)

var signalsFixture = filepath.Join(datasetsDir, "signals.yaml")

func evaluateJSON(t *testing.T, args ...string) *domain.EvaluationRun {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{"evaluate", "--json", "--now", referenceNow}, args...))
	require.NoError(t, cmd.Execute())

	var run domain.EvaluationRun
	require.NoError(t, json.Unmarshal(buf.Bytes(), &run), "output should be valid JSON")
	return &run
}

func TestEvaluateCommand_Text(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"evaluate", signalsFixture, "--now", referenceNow})
	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "Github Org MFA")
	assert.Contains(t, output, "Software Design Training")
	assert.Contains(t, output, "Enable 2FA for the organization(s) (expressjs)")
}

func TestEvaluateCommand_JSON(t *testing.T) {
	run := evaluateJSON(t, signalsFixture)

	// signedCommits has no validator and is skipped.
	require.Len(t, run.Reports, 2)

	mfa := run.Reports[0]
	assert.Equal(t, domain.CheckGithubOrgMFA, mfa.Check.Code)
	require.Len(t, mfa.Analysis.Results, 3)
	assert.Equal(t, domain.StatusPassed, mfa.Analysis.Results[0].Status)
	assert.Equal(t, domain.StatusFailed, mfa.Analysis.Results[1].Status)
	assert.Equal(t, "The organization(s) (expressjs) do not have 2FA enabled", mfa.Analysis.Results[1].Rationale)
	assert.Equal(t, domain.StatusUnknown, mfa.Analysis.Results[2].Status)
	assert.Len(t, mfa.Analysis.Alerts, 1)

	training := run.Reports[1]
	assert.Equal(t, domain.CheckSoftwareDesignTraining, training.Check.Code)
	require.Len(t, training.Analysis.Results, 3)
	assert.Equal(t, domain.StatusPassed, training.Analysis.Results[0].Status)
	assert.Equal(t, "Software Design Training is out of date", training.Analysis.Results[1].Rationale)
	assert.Equal(t, "No Software Design Training found", training.Analysis.Results[2].Rationale)
	assert.Equal(t, "high", training.Analysis.Results[2].Severity)
}

func TestEvaluateCommand_OriginalFixture(t *testing.T) {
	run := evaluateJSON(t, filepath.Join(datasetsDir, "signals.json"))

	require.Len(t, run.Reports, 1)
	analysis := run.Reports[0].Analysis
	assert.Empty(t, analysis.Alerts)
	assert.Empty(t, analysis.Tasks)
	for _, r := range analysis.Results {
		assert.Equal(t, domain.StatusPassed, r.Status)
		assert.Equal(t, "critical", r.Severity)
		assert.Equal(t, "The organization(s) have 2FA enabled", r.Rationale)
	}
}

func TestEvaluateCommand_DatasetFromConfig(t *testing.T) {
	run := evaluateJSON(t, "--config", workspaceDir)
	assert.Len(t, run.Reports, 2)
}

func TestEvaluateCommand_CheckFilter(t *testing.T) {
	run := evaluateJSON(t, signalsFixture, "--check", "softwareDesignTraining")
	require.Len(t, run.Reports, 1)
	assert.Equal(t, domain.CheckSoftwareDesignTraining, run.Reports[0].Check.Code)
}

func TestEvaluateCommand_UnknownCheckFilter(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"evaluate", signalsFixture, "--check", "signedCommits"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signedCommits")
}

func TestEvaluateCommand_CIFails(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"evaluate", signalsFixture, "--now", referenceNow, "--ci"})
	err := cmd.Execute()
	require.Error(t, err, "CI mode should fail when a result failed")
	assert.Contains(t, err.Error(), "3 result(s) failed")
}

func TestEvaluateCommand_CIPasses(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"evaluate", filepath.Join(datasetsDir, "signals.json"), "--ci"})
	assert.NoError(t, cmd.Execute())
}

func TestEvaluateCommand_NoDataset(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"evaluate", "--config", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dataset")
}

func TestEvaluateCommand_BadNow(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"evaluate", signalsFixture, "--now", "yesterday"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--now")
}

func TestEvaluateCommand_InvalidDataset(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"evaluate", filepath.Join(datasetsDir, "invalid.yaml")})
	assert.Error(t, cmd.Execute())
}

func TestEvaluateCommand_SaveThenResults(t *testing.T) {
	ws := t.TempDir()
	dataset, err := filepath.Abs(signalsFixture)
	require.NoError(t, err)

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"evaluate", dataset, "--config", ws, "--now", referenceNow, "--save"})
	require.NoError(t, cmd.Execute())

	cmd = cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"results", ws, "--json"})
	require.NoError(t, cmd.Execute())

	var stored domain.StoredResults
	require.NoError(t, json.Unmarshal(buf.Bytes(), &stored))
	assert.Len(t, stored.Results, 6)
	assert.Len(t, stored.Alerts, 3)
	require.Len(t, stored.Runs, 1)
	assert.Equal(t, referenceNow, stored.Runs[0].Timestamp)
	assert.Equal(t, 3, stored.Runs[0].Failed)

	cmd = cli.NewRootCmdForTest()
	buf = new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"results", ws})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Run Log")
}

func TestResultsCommand_EmptyWorkspace(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"results", t.TempDir()})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No stored results found.")
}
