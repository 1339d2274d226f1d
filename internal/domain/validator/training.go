package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/openkraft/visionboard/internal/domain"
)

// DefaultTrainingValidity is how long a software design training stays current.
const DefaultTrainingValidity = 365 * 24 * time.Hour

const (
	trainingMissing    = "No Software Design Training found"
	trainingOutOfDate  = "Software Design Training is out of date"
	trainingUpToDate   = "Software Design Training is up to date"
	trainingDateAbsent = "Software Design Training date is unknown"
)

// TrainingPolicy tunes the training recency check.
type TrainingPolicy struct {
	// Now is the reference time recency is measured against.
	Now time.Time `mapstructure:"-"`
	// Validity is the maximum age of the latest training. Zero means
	// DefaultTrainingValidity.
	Validity time.Duration `mapstructure:"validity"`
}

// SoftwareDesignTraining requires each project to have held a software design
// training within the validity window.
type SoftwareDesignTraining struct {
	policy TrainingPolicy
}

var _ Validator = (*SoftwareDesignTraining)(nil)

// NewSoftwareDesignTraining creates the training recency validator.
func NewSoftwareDesignTraining(policy TrainingPolicy) (*SoftwareDesignTraining, error) {
	if policy.Now.IsZero() {
		return nil, errors.New("training policy needs a reference time")
	}
	if policy.Validity == 0 {
		policy.Validity = DefaultTrainingValidity
	}
	if policy.Validity < 0 {
		return nil, fmt.Errorf("validity = %s (must be positive)", policy.Validity)
	}
	return &SoftwareDesignTraining{policy: policy}, nil
}

func (*SoftwareDesignTraining) Code() domain.CheckCode { return domain.CheckSoftwareDesignTraining }

func (*SoftwareDesignTraining) RequiredSignals() []domain.SignalKind {
	return []domain.SignalKind{domain.SignalSoftwareDesignTrainings}
}

func (v *SoftwareDesignTraining) Validate(signals domain.Signals, check domain.Check, projects []domain.Project) (*domain.Analysis, error) {
	if err := checkInput(v.Code(), check, projects); err != nil {
		return nil, err
	}

	groups := GroupByProject(signals.Trainings, func(t domain.SoftwareDesignTraining) int64 {
		return t.ProjectID
	}, projects)

	return Aggregate(check, projects, groups, v.Resolve), nil
}

// Resolve judges a project by its most recent dated training.
func (v *SoftwareDesignTraining) Resolve(trainings []domain.SoftwareDesignTraining) Verdict {
	if len(trainings) == 0 {
		return Verdict{
			Status:     domain.StatusFailed,
			Rationale:  trainingMissing,
			AlertTitle: trainingMissing,
			TaskTitle:  "Create a Software Design Training",
		}
	}

	latest, ok := latestTraining(trainings)
	if !ok {
		return Verdict{Status: domain.StatusUnknown, Rationale: trainingDateAbsent}
	}

	if latest.Before(v.policy.Now.Add(-v.policy.Validity)) {
		return Verdict{
			Status:     domain.StatusFailed,
			Rationale:  trainingOutOfDate,
			AlertTitle: trainingOutOfDate,
			TaskTitle:  "Update Software Design Training",
		}
	}

	return Verdict{Status: domain.StatusPassed, Rationale: trainingUpToDate}
}

// latestTraining returns the newest non-zero training date.
func latestTraining(trainings []domain.SoftwareDesignTraining) (time.Time, bool) {
	var latest time.Time
	for _, t := range trainings {
		if t.TrainingDate.After(latest) {
			latest = t.TrainingDate
		}
	}
	return latest, !latest.IsZero()
}
