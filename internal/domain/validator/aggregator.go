package validator

import "github.com/openkraft/visionboard/internal/domain"

// Verdict is the resolved status of a single project. AlertTitle and
// TaskTitle are only read when Status is failed.
type Verdict struct {
	Status     domain.Status
	Rationale  string
	AlertTitle string
	TaskTitle  string
}

// Aggregate builds one result per project, in project order, and an alert
// plus a task for every failed project.
func Aggregate[R any](
	check domain.Check,
	projects []domain.Project,
	groups map[int64][]R,
	resolve func([]R) Verdict,
) *domain.Analysis {
	severity := check.Severity()
	description := DetailsDescription(check.DetailsURL)
	out := domain.NewAnalysis(len(projects))

	for _, p := range projects {
		v := resolve(groups[p.ID])

		out.Results = append(out.Results, domain.ComplianceResult{
			ProjectID:         p.ID,
			ComplianceCheckID: check.ID,
			Severity:          severity,
			Status:            v.Status,
			Rationale:         v.Rationale,
		})

		if v.Status != domain.StatusFailed {
			continue
		}

		out.Alerts = append(out.Alerts, domain.Alert{
			ProjectID:         p.ID,
			ComplianceCheckID: check.ID,
			Severity:          severity,
			Title:             v.AlertTitle,
			Description:       description,
		})
		out.Tasks = append(out.Tasks, domain.Task{
			ProjectID:         p.ID,
			ComplianceCheckID: check.ID,
			Severity:          severity,
			Title:             v.TaskTitle,
			Description:       description,
		})
	}

	return out
}

// DetailsDescription is the description shared by alerts and tasks.
func DetailsDescription(detailsURL string) string {
	return "Check the details on " + detailsURL
}
