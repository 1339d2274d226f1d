// Package validator turns raw signal records into compliance results, alerts
// and remediation tasks. Every validator is a pure function of its input:
// no I/O, no clock reads, no mutation of the records it is given.
package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openkraft/visionboard/internal/domain"
)

var (
	// ErrInvalidCheck reports check metadata a validator cannot work with.
	ErrInvalidCheck = errors.New("invalid check")
	// ErrDuplicateProject reports a project list containing the same id twice.
	ErrDuplicateProject = errors.New("duplicate project id")
	// ErrUnknownCheck reports a check code with no registered validator.
	ErrUnknownCheck = errors.New("unknown check")
)

// Validator evaluates every project against one check type.
type Validator interface {
	Code() domain.CheckCode
	// RequiredSignals lists the record kinds Validate reads from Signals.
	RequiredSignals() []domain.SignalKind
	Validate(signals domain.Signals, check domain.Check, projects []domain.Project) (*domain.Analysis, error)
}

// checkInput rejects structural defects in the call itself. These are caller
// or configuration bugs, never compliance findings.
func checkInput(code domain.CheckCode, check domain.Check, projects []domain.Project) error {
	if check.ID == 0 {
		return fmt.Errorf("%w: missing id", ErrInvalidCheck)
	}
	if strings.TrimSpace(check.DetailsURL) == "" {
		return fmt.Errorf("%w: check %d has no details_url", ErrInvalidCheck, check.ID)
	}
	if check.Code != "" && check.Code != code {
		return fmt.Errorf("%w: check %d is a %s check, not %s", ErrInvalidCheck, check.ID, check.Code, code)
	}

	seen := make(map[int64]bool, len(projects))
	for _, p := range projects {
		if seen[p.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateProject, p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
