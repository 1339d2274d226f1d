package validator

import (
	"fmt"
	"strings"

	"github.com/openkraft/visionboard/internal/domain"
)

// MFAPolicy tunes the organization 2FA check.
type MFAPolicy struct {
	// NoEvidence is the status of a project with no organizations on record.
	// Empty means unknown.
	NoEvidence domain.Status `mapstructure:"no_evidence"`
}

// GithubOrgMFA requires every GitHub organization of a project to enforce
// two-factor authentication.
type GithubOrgMFA struct {
	policy MFAPolicy
}

var _ Validator = (*GithubOrgMFA)(nil)

// NewGithubOrgMFA creates the organization 2FA validator.
func NewGithubOrgMFA(policy MFAPolicy) (*GithubOrgMFA, error) {
	if policy.NoEvidence == "" {
		policy.NoEvidence = domain.StatusUnknown
	}
	if !policy.NoEvidence.IsValid() {
		return nil, fmt.Errorf("no_evidence = %q (valid: passed, failed, unknown)", policy.NoEvidence)
	}
	return &GithubOrgMFA{policy: policy}, nil
}

func (*GithubOrgMFA) Code() domain.CheckCode { return domain.CheckGithubOrgMFA }

func (*GithubOrgMFA) RequiredSignals() []domain.SignalKind {
	return []domain.SignalKind{domain.SignalGithubOrganizations}
}

func (v *GithubOrgMFA) Validate(signals domain.Signals, check domain.Check, projects []domain.Project) (*domain.Analysis, error) {
	if err := checkInput(v.Code(), check, projects); err != nil {
		return nil, err
	}

	groups := GroupByProject(signals.Organizations, func(o domain.GithubOrganization) int64 {
		return o.ProjectID
	}, projects)

	return Aggregate(check, projects, groups, v.Resolve), nil
}

// Resolve reduces the organizations of one project to a verdict. A single
// organization without 2FA fails the project regardless of the others.
func (v *GithubOrgMFA) Resolve(orgs []domain.GithubOrganization) Verdict {
	if len(orgs) == 0 {
		return mfaNoEvidenceVerdict(v.policy.NoEvidence)
	}

	var violating, indeterminate []string
	for _, o := range orgs {
		switch {
		case o.TwoFactorRequirementEnabled == nil:
			indeterminate = append(indeterminate, o.Login)
		case !*o.TwoFactorRequirementEnabled:
			violating = append(violating, o.Login)
		}
	}

	switch {
	case len(violating) > 0:
		return Verdict{
			Status:     domain.StatusFailed,
			Rationale:  mfaDisabledText(violating),
			AlertTitle: mfaDisabledText(violating),
			TaskTitle:  mfaEnableTask(violating),
		}
	case len(indeterminate) > 0:
		return Verdict{
			Status:    domain.StatusUnknown,
			Rationale: mfaUnknownText(indeterminate),
		}
	default:
		return Verdict{
			Status:    domain.StatusPassed,
			Rationale: "The organization(s) have 2FA enabled",
		}
	}
}

func mfaNoEvidenceVerdict(status domain.Status) Verdict {
	switch status {
	case domain.StatusFailed:
		return Verdict{
			Status:     domain.StatusFailed,
			Rationale:  "No GitHub organizations found",
			AlertTitle: "No GitHub organizations found",
			TaskTitle:  "Register the GitHub organization(s) of the project",
		}
	case domain.StatusPassed:
		return Verdict{
			Status:    domain.StatusPassed,
			Rationale: "No GitHub organizations to check",
		}
	default:
		return Verdict{
			Status:    domain.StatusUnknown,
			Rationale: "No GitHub organizations found, 2FA status unknown",
		}
	}
}

func mfaDisabledText(logins []string) string {
	return fmt.Sprintf("The organization(s) (%s) do not have 2FA enabled", strings.Join(logins, ", "))
}

func mfaUnknownText(logins []string) string {
	return fmt.Sprintf("The organization(s) (%s) have 2FA status unknown", strings.Join(logins, ", "))
}

func mfaEnableTask(logins []string) string {
	return fmt.Sprintf("Enable 2FA for the organization(s) (%s)", strings.Join(logins, ", "))
}
