package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openkraft/visionboard/internal/domain"
	"github.com/openkraft/visionboard/internal/domain/validator"
)

// EvaluateService orchestrates an evaluation:
// load catalog -> pick enabled checks -> fetch required signals -> run validators.
type EvaluateService struct {
	source domain.SignalSource
	logger *slog.Logger
}

func NewEvaluateService(source domain.SignalSource, logger *slog.Logger) *EvaluateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EvaluateService{source: source, logger: logger}
}

// EvaluateRequest selects what an evaluation runs.
type EvaluateRequest struct {
	Config domain.Config
	// Now is the reference time handed to recency checks.
	Now time.Time
	// Only restricts the run to these check codes when non-empty.
	Only []domain.CheckCode
}

type plannedCheck struct {
	check     domain.Check
	validator validator.Validator
}

// Evaluate runs every enabled check of the catalog against every project.
// Reports come back in catalog order whatever order the checks finish in.
func (s *EvaluateService) Evaluate(ctx context.Context, req EvaluateRequest) (*domain.EvaluationRun, error) {
	// 1. Load catalog
	projects, err := s.source.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	checks, err := s.source.Checks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading checks: %w", err)
	}

	// 2. Build validators for the enabled checks
	planned, err := s.plan(checks, req)
	if err != nil {
		return nil, err
	}

	// 3. Fetch only the signal kinds the planned validators read
	signals, err := s.fetchSignals(ctx, planned)
	if err != nil {
		return nil, err
	}

	// 4. Run validators
	reports := make([]domain.CheckReport, len(planned))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Config.Workers())
	for i, p := range planned {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			analysis, err := p.validator.Validate(signals, p.check, projects)
			if err != nil {
				return fmt.Errorf("evaluating check %d (%s): %w", p.check.ID, p.check.Code, err)
			}
			counts := analysis.CountByStatus()
			s.logger.Debug("check evaluated",
				"check", p.check.Code,
				"id", p.check.ID,
				"passed", counts[domain.StatusPassed],
				"failed", counts[domain.StatusFailed],
				"unknown", counts[domain.StatusUnknown],
			)
			reports[i] = domain.CheckReport{Check: p.check, Analysis: *analysis}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	run := &domain.EvaluationRun{Timestamp: req.Now, Reports: reports}
	totals := run.Totals()
	s.logger.Info("evaluation finished",
		"checks", len(reports),
		"projects", len(projects),
		"failed", totals[domain.StatusFailed],
		"unknown", totals[domain.StatusUnknown],
	)
	return run, nil
}

func (s *EvaluateService) plan(checks []domain.Check, req EvaluateRequest) ([]plannedCheck, error) {
	for _, code := range req.Only {
		if !domain.IsKnownCheckCode(code) {
			return nil, fmt.Errorf("%w: %q", validator.ErrUnknownCheck, code)
		}
	}

	enabled := req.Config.EnabledChecks()
	var planned []plannedCheck
	for _, c := range checks {
		if !domain.IsKnownCheckCode(c.Code) {
			s.logger.Warn("no validator for check, skipping", "check", c.Code, "id", c.ID)
			continue
		}
		if !slices.Contains(enabled, c.Code) {
			s.logger.Debug("check disabled by config", "check", c.Code)
			continue
		}
		if len(req.Only) > 0 && !slices.Contains(req.Only, c.Code) {
			continue
		}

		v, err := validator.Create(c.Code, validator.Options{
			Now:    req.Now,
			Params: req.Config.ParamsFor(c.Code),
		})
		if err != nil {
			return nil, err
		}
		planned = append(planned, plannedCheck{check: c, validator: v})
	}
	return planned, nil
}

func (s *EvaluateService) fetchSignals(ctx context.Context, planned []plannedCheck) (domain.Signals, error) {
	needed := make(map[domain.SignalKind]bool)
	for _, p := range planned {
		for _, kind := range p.validator.RequiredSignals() {
			needed[kind] = true
		}
	}

	var signals domain.Signals
	g, gctx := errgroup.WithContext(ctx)
	if needed[domain.SignalGithubOrganizations] {
		g.Go(func() error {
			orgs, err := s.source.Organizations(gctx)
			if err != nil {
				return fmt.Errorf("loading github organizations: %w", err)
			}
			signals.Organizations = orgs
			return nil
		})
	}
	if needed[domain.SignalSoftwareDesignTrainings] {
		g.Go(func() error {
			trainings, err := s.source.Trainings(gctx)
			if err != nil {
				return fmt.Errorf("loading software design trainings: %w", err)
			}
			signals.Trainings = trainings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Signals{}, err
	}
	return signals, nil
}
