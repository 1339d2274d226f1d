package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openkraft/visionboard/internal/domain"
)

// ErrNoDataset is returned when neither the request nor the config names a
// dataset.
var ErrNoDataset = errors.New("no dataset given and none configured")

// DatasetOpener turns a dataset path into a signal source.
type DatasetOpener func(path string) (domain.SignalSource, error)

// WorkspaceService runs an evaluation for a workspace:
// load config -> open dataset -> evaluate -> stamp revision -> persist.
type WorkspaceService struct {
	configs domain.ConfigLoader
	open    DatasetOpener
	git     domain.GitInfo
	results domain.ResultStore
	logger  *slog.Logger
}

func NewWorkspaceService(
	configs domain.ConfigLoader,
	open DatasetOpener,
	git domain.GitInfo,
	results domain.ResultStore,
	logger *slog.Logger,
) *WorkspaceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkspaceService{configs: configs, open: open, git: git, results: results, logger: logger}
}

// WorkspaceRequest describes one evaluation of a workspace.
type WorkspaceRequest struct {
	// ConfigPath is a workspace directory or a config file.
	ConfigPath string
	// Dataset overrides the configured dataset when set.
	Dataset string
	// Now defaults to the current time.
	Now  time.Time
	Only []domain.CheckCode
	// SaveTo persists the run under this workspace path when set.
	SaveTo string
}

// Run evaluates the dataset of a workspace.
func (s *WorkspaceService) Run(ctx context.Context, req WorkspaceRequest) (*domain.EvaluationRun, error) {
	cfg, err := s.configs.Load(req.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	datasetPath := req.Dataset
	if datasetPath == "" {
		datasetPath = cfg.Dataset
	}
	if datasetPath == "" {
		return nil, ErrNoDataset
	}

	source, err := s.open(datasetPath)
	if err != nil {
		return nil, err
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	run, err := NewEvaluateService(source, s.logger).Evaluate(ctx, EvaluateRequest{
		Config: cfg,
		Now:    now,
		Only:   req.Only,
	})
	if err != nil {
		return nil, err
	}

	// Revision is best-effort: datasets outside a repository have none.
	if s.git != nil && s.git.IsGitRepo(datasetPath) {
		if hash, err := s.git.CommitHash(datasetPath); err == nil {
			run.DatasetRevision = hash
		} else {
			s.logger.Debug("dataset revision unavailable", "dataset", datasetPath, "error", err)
		}
	}

	if req.SaveTo != "" {
		if err := s.results.Save(req.SaveTo, run); err != nil {
			return nil, fmt.Errorf("saving results: %w", err)
		}
		s.logger.Debug("results saved", "workspace", req.SaveTo)
	}

	return run, nil
}
