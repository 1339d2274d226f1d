package domain

import (
	"strconv"
	"strings"
	"time"
)

// Status is the tri-state verdict of a project against a check.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusUnknown Status = "unknown"
)

// ValidStatuses enumerates all recognized statuses.
var ValidStatuses = []Status{StatusPassed, StatusFailed, StatusUnknown}

// IsValid reports whether s is one of ValidStatuses.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Project is a tracked project. The engine only indexes projects by ID.
type Project struct {
	ID   int64  `json:"id"             yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// CheckCode identifies which validator evaluates a check.
type CheckCode string

const (
	CheckGithubOrgMFA           CheckCode = "githubOrgMFA"
	CheckSoftwareDesignTraining CheckCode = "softwareDesignTraining"
)

// Check is a compliance check from the catalog.
type Check struct {
	ID                   int64     `json:"id"                     yaml:"id"`
	Code                 CheckCode `json:"code"                   yaml:"code"`
	DefaultPriorityGroup string    `json:"default_priority_group" yaml:"default_priority_group"`
	DetailsURL           string    `json:"details_url"            yaml:"details_url"`
}

// Severity resolves the severity label attached to every output of the check.
func (c Check) Severity() string { return SeverityFor(c.DefaultPriorityGroup) }

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityInfo     = "info"
)

// SeverityFor maps a priority group label to a severity. P groups are bucketed
// by number, R groups are informational, and any other label is returned as is.
func SeverityFor(priorityGroup string) string {
	group := strings.TrimSpace(priorityGroup)
	if len(group) < 2 {
		return group
	}
	n, err := strconv.Atoi(group[1:])
	if err != nil || n < 0 {
		return group
	}

	switch strings.ToUpper(group[:1]) {
	case "R":
		return SeverityInfo
	case "P":
	default:
		return group
	}

	switch {
	case n <= 4:
		return SeverityCritical
	case n <= 9:
		return SeverityHigh
	case n <= 14:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// ComplianceResult is the verdict for one project against one check.
type ComplianceResult struct {
	ProjectID         int64  `json:"project_id"`
	ComplianceCheckID int64  `json:"compliance_check_id"`
	Severity          string `json:"severity"`
	Status            Status `json:"status"`
	Rationale         string `json:"rationale"`
}

// Alert surfaces a failed result.
type Alert struct {
	ProjectID         int64  `json:"project_id"`
	ComplianceCheckID int64  `json:"compliance_check_id"`
	Severity          string `json:"severity"`
	Title             string `json:"title"`
	Description       string `json:"description"`
}

// Task is the remediation action paired with an Alert.
type Task struct {
	ProjectID         int64  `json:"project_id"`
	ComplianceCheckID int64  `json:"compliance_check_id"`
	Severity          string `json:"severity"`
	Title             string `json:"title"`
	Description       string `json:"description"`
}

// Analysis is the output of a single validator call.
type Analysis struct {
	Alerts  []Alert            `json:"alerts"`
	Results []ComplianceResult `json:"results"`
	Tasks   []Task             `json:"tasks"`
}

// NewAnalysis returns an Analysis with non-nil slices sized for n projects.
func NewAnalysis(n int) *Analysis {
	return &Analysis{
		Alerts:  []Alert{},
		Results: make([]ComplianceResult, 0, n),
		Tasks:   []Task{},
	}
}

// CountByStatus tallies results per status.
func (a *Analysis) CountByStatus() map[Status]int {
	counts := make(map[Status]int, len(ValidStatuses))
	for _, r := range a.Results {
		counts[r.Status]++
	}
	return counts
}

// CheckReport pairs a check with the analysis produced for it.
type CheckReport struct {
	Check    Check    `json:"check"`
	Analysis Analysis `json:"analysis"`
}

// EvaluationRun is the outcome of evaluating every enabled check once.
type EvaluationRun struct {
	Timestamp       time.Time     `json:"timestamp"`
	DatasetRevision string        `json:"dataset_revision,omitempty"`
	Reports         []CheckReport `json:"reports"`
}

// HasFailures reports whether any result in the run failed.
func (r *EvaluationRun) HasFailures() bool {
	for _, rep := range r.Reports {
		for _, res := range rep.Analysis.Results {
			if res.Status == StatusFailed {
				return true
			}
		}
	}
	return false
}

// Totals tallies results per status across every report.
func (r *EvaluationRun) Totals() map[Status]int {
	totals := make(map[Status]int, len(ValidStatuses))
	for _, rep := range r.Reports {
		for s, n := range rep.Analysis.CountByStatus() {
			totals[s] += n
		}
	}
	return totals
}
