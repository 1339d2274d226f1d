// Package dataset is a file-backed domain.SignalSource. A dataset is a single
// JSON or YAML document holding projects, the check catalog and the raw
// signal rows, validated against an embedded JSON Schema before decoding.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/openkraft/visionboard/internal/domain"
	"gopkg.in/yaml.v3"
)

// dateLayouts are tried in order when parsing training dates.
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// TrainingDate stays a *string so yaml.v3 hands over the scalar text even
// for unquoted dates it would otherwise resolve to time.Time.
type rawTraining struct {
	ProjectID    int64   `yaml:"project_id"`
	TrainingDate *string `yaml:"training_date"`
}

type rawOrganization struct {
	ProjectID                   int64  `yaml:"project_id"`
	Login                       string `yaml:"login"`
	TwoFactorRequirementEnabled *bool  `yaml:"two_factor_requirement_enabled"`
}

type rawDataset struct {
	Projects      []domain.Project  `yaml:"projects"`
	Checks        []domain.Check    `yaml:"checks"`
	Organizations []rawOrganization `yaml:"github_organizations"`
	Trainings     []rawTraining     `yaml:"software_design_trainings"`
}

// Store serves the rows of one dataset file.
type Store struct {
	path          string
	projects      []domain.Project
	checks        []domain.Check
	organizations []domain.GithubOrganization
	trainings     []domain.SoftwareDesignTraining
}

var _ domain.SignalSource = (*Store)(nil)

// Open reads, validates and decodes the dataset at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	if errs := ValidateBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid dataset %s: %s", path, strings.Join(errs, "; "))
	}

	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	s := &Store{
		path:     path,
		projects: raw.Projects,
		checks:   raw.Checks,
	}
	for _, o := range raw.Organizations {
		s.organizations = append(s.organizations, domain.GithubOrganization{
			ProjectID:                   o.ProjectID,
			Login:                       o.Login,
			TwoFactorRequirementEnabled: o.TwoFactorRequirementEnabled,
		})
	}
	for i, t := range raw.Trainings {
		date, ok := parseDate(t.TrainingDate)
		if !ok {
			logger.Warn("unreadable training date, treating as undated",
				"dataset", path, "index", i, "project_id", t.ProjectID)
		}
		s.trainings = append(s.trainings, domain.SoftwareDesignTraining{
			ProjectID:    t.ProjectID,
			TrainingDate: date,
		})
	}

	logger.Debug("dataset loaded",
		"dataset", path,
		"projects", len(s.projects),
		"checks", len(s.checks),
		"organizations", len(s.organizations),
		"trainings", len(s.trainings),
	)
	return s, nil
}

// Path returns the file the store was opened from.
func (s *Store) Path() string { return s.path }

func (s *Store) Projects(context.Context) ([]domain.Project, error) {
	return slices.Clone(s.projects), nil
}

func (s *Store) Checks(context.Context) ([]domain.Check, error) {
	return slices.Clone(s.checks), nil
}

func (s *Store) Organizations(context.Context) ([]domain.GithubOrganization, error) {
	return slices.Clone(s.organizations), nil
}

func (s *Store) Trainings(context.Context) ([]domain.SoftwareDesignTraining, error) {
	return slices.Clone(s.trainings), nil
}

// parseDate accepts RFC 3339 timestamps and plain dates. Missing or
// unreadable values yield the zero time and false.
func parseDate(v *string) (time.Time, bool) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(*v)); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ValidateFile validates the dataset at path against the schema.
func ValidateFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	return ValidateBytes(data), nil
}
