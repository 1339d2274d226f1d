package domain

import "context"

// SignalSource supplies the raw rows the validators consume.
type SignalSource interface {
	Projects(ctx context.Context) ([]Project, error)
	Checks(ctx context.Context) ([]Check, error)
	Organizations(ctx context.Context) ([]GithubOrganization, error)
	Trainings(ctx context.Context) ([]SoftwareDesignTraining, error)
}

// ConfigLoader loads the workspace configuration.
type ConfigLoader interface {
	Load(workspacePath string) (Config, error)
}

// ResultStore persists evaluation runs keyed by (project_id, compliance_check_id).
type ResultStore interface {
	Save(workspacePath string, run *EvaluationRun) error
	Load(workspacePath string) (*StoredResults, error)
}

// GitInfo reports the revision of a git working tree.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}
