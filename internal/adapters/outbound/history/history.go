package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openkraft/visionboard/internal/domain"
)

const resultsFile = ".visionboard/results.json"

// FileStore implements domain.ResultStore using a JSON file under the
// workspace.
type FileStore struct{}

func New() *FileStore {
	return &FileStore{}
}

// Save merges run into the stored results and writes them back.
func (h *FileStore) Save(workspacePath string, run *domain.EvaluationRun) error {
	stored, err := h.Load(workspacePath)
	if err != nil {
		return err
	}

	stored.Merge(run)

	fp := filepath.Join(workspacePath, resultsFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load reads the stored results. A workspace without a results file yields
// an empty set.
func (h *FileStore) Load(workspacePath string) (*domain.StoredResults, error) {
	fp := filepath.Join(workspacePath, resultsFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.StoredResults{}, nil
		}
		return nil, err
	}

	var stored domain.StoredResults
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}

	return &stored, nil
}
