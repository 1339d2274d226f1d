package domain

import "time"

// SignalKind names a family of raw evidence records.
type SignalKind string

const (
	SignalGithubOrganizations     SignalKind = "github_organizations"
	SignalSoftwareDesignTrainings SignalKind = "software_design_trainings"
)

// GithubOrganization is one GitHub organization owned by a project.
// TwoFactorRequirementEnabled is nil when the setting could not be read.
type GithubOrganization struct {
	ProjectID                   int64  `json:"project_id"`
	Login                       string `json:"login"`
	TwoFactorRequirementEnabled *bool  `json:"two_factor_requirement_enabled"`
}

// SoftwareDesignTraining records a training session held for a project.
// A zero TrainingDate means the date was missing or unreadable.
type SoftwareDesignTraining struct {
	ProjectID    int64     `json:"project_id"`
	TrainingDate time.Time `json:"training_date"`
}

// Signals bundles every record kind a validator may consume. Only the kinds
// a validator declares as required are populated by the orchestration layer.
type Signals struct {
	Organizations []GithubOrganization
	Trainings     []SoftwareDesignTraining
}
