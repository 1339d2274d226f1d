package domain

import (
	"cmp"
	"slices"
	"time"
)

// ResultKey identifies a persisted result.
type ResultKey struct {
	ProjectID         int64
	ComplianceCheckID int64
}

// RunEntry is one line of the evaluation log.
type RunEntry struct {
	Timestamp       string `json:"timestamp"`
	DatasetRevision string `json:"dataset_revision,omitempty"`
	Passed          int    `json:"passed"`
	Failed          int    `json:"failed"`
	Unknown         int    `json:"unknown"`
}

// StoredResults is the persisted state: the latest verdict per
// (project, check) plus the alerts and tasks that verdict produced.
type StoredResults struct {
	UpdatedAt time.Time          `json:"updated_at"`
	Results   []ComplianceResult `json:"results"`
	Alerts    []Alert            `json:"alerts"`
	Tasks     []Task             `json:"tasks"`
	Runs      []RunEntry         `json:"runs"`
}

// Merge upserts every result of run. Alerts and tasks of a (project, check)
// pair are replaced whenever that pair is re-evaluated, so a pair that now
// passes loses its stale alert and task.
func (s *StoredResults) Merge(run *EvaluationRun) {
	touched := make(map[ResultKey]bool)
	results := make(map[ResultKey]ComplianceResult, len(s.Results))
	for _, r := range s.Results {
		results[ResultKey{r.ProjectID, r.ComplianceCheckID}] = r
	}

	var alerts []Alert
	var tasks []Task
	for _, rep := range run.Reports {
		for _, r := range rep.Analysis.Results {
			key := ResultKey{r.ProjectID, r.ComplianceCheckID}
			touched[key] = true
			results[key] = r
		}
		alerts = append(alerts, rep.Analysis.Alerts...)
		tasks = append(tasks, rep.Analysis.Tasks...)
	}

	for _, a := range s.Alerts {
		if !touched[ResultKey{a.ProjectID, a.ComplianceCheckID}] {
			alerts = append(alerts, a)
		}
	}
	for _, t := range s.Tasks {
		if !touched[ResultKey{t.ProjectID, t.ComplianceCheckID}] {
			tasks = append(tasks, t)
		}
	}

	s.Results = make([]ComplianceResult, 0, len(results))
	for _, r := range results {
		s.Results = append(s.Results, r)
	}
	slices.SortFunc(s.Results, func(a, b ComplianceResult) int {
		return compareKeys(ResultKey{a.ProjectID, a.ComplianceCheckID}, ResultKey{b.ProjectID, b.ComplianceCheckID})
	})
	slices.SortStableFunc(alerts, func(a, b Alert) int {
		return compareKeys(ResultKey{a.ProjectID, a.ComplianceCheckID}, ResultKey{b.ProjectID, b.ComplianceCheckID})
	})
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return compareKeys(ResultKey{a.ProjectID, a.ComplianceCheckID}, ResultKey{b.ProjectID, b.ComplianceCheckID})
	})
	if alerts == nil {
		alerts = []Alert{}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	s.Alerts = alerts
	s.Tasks = tasks

	totals := run.Totals()
	s.Runs = append(s.Runs, RunEntry{
		Timestamp:       run.Timestamp.UTC().Format(time.RFC3339),
		DatasetRevision: run.DatasetRevision,
		Passed:          totals[StatusPassed],
		Failed:          totals[StatusFailed],
		Unknown:         totals[StatusUnknown],
	})
	s.UpdatedAt = run.Timestamp.UTC()
}

func compareKeys(a, b ResultKey) int {
	if c := cmp.Compare(a.ComplianceCheckID, b.ComplianceCheckID); c != 0 {
		return c
	}
	return cmp.Compare(a.ProjectID, b.ProjectID)
}
