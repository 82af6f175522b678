package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quadrantlabs/assessment-tracking-service/internal/models"
	"github.com/quadrantlabs/assessment-tracking-service/internal/repositories"
)

const timestampLayout = "20060102_150405"

// AssessmentFileStore stores one JSON document per submission under a data
// directory, named {user_id}_{timestamp}.json. Filename order doubles as
// submission order for a given user.
type AssessmentFileStore struct {
	dir    string
	logger *slog.Logger
}

// NewAssessmentFileStore creates the data directory if needed and returns a
// file-backed repository
func NewAssessmentFileStore(dir string, logger *slog.Logger) (repositories.AssessmentRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	return &AssessmentFileStore{
		dir:    dir,
		logger: logger,
	}, nil
}

func (s *AssessmentFileStore) Create(ctx context.Context, record *models.AssessmentRecord) error {
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal assessment record: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.json", record.UserID, record.SubmittedAt.Format(timestampLayout))
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write assessment record %s: %w", filename, err)
	}

	s.logger.Info("Stored assessment record", "user_id", record.UserID, "file", filename)
	return nil
}

func (s *AssessmentFileStore) List(ctx context.Context) ([]*models.AssessmentRecord, error) {
	files, err := s.recordFiles()
	if err != nil {
		return nil, err
	}

	records := make([]*models.AssessmentRecord, 0, len(files))
	for _, name := range files {
		record, err := s.readRecord(name)
		if err != nil {
			// A corrupt neighbor never aborts a corpus scan
			s.logger.Warn("Skipping unreadable assessment record", "file", name, "error", err)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].UserID != records[j].UserID {
			return records[i].UserID < records[j].UserID
		}
		return records[i].SubmittedAt.Before(records[j].SubmittedAt)
	})

	return records, nil
}

func (s *AssessmentFileStore) GetLatestByUser(ctx context.Context, userID string) (*models.AssessmentRecord, error) {
	files, err := s.recordFiles()
	if err != nil {
		return nil, err
	}

	prefix := userID + "_"
	var candidates []string
	for _, name := range files {
		if strings.HasPrefix(name, prefix) {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	// Filenames embed the submission timestamp, so lexical order is
	// chronological within one user
	sort.Strings(candidates)

	for i := len(candidates) - 1; i >= 0; i-- {
		record, err := s.readRecord(candidates[i])
		if err != nil {
			s.logger.Warn("Skipping unreadable assessment record", "file", candidates[i], "error", err)
			continue
		}
		return record, nil
	}

	return nil, nil
}

func (s *AssessmentFileStore) Count(ctx context.Context) (int64, error) {
	files, err := s.recordFiles()
	if err != nil {
		return 0, err
	}
	return int64(len(files)), nil
}

func (s *AssessmentFileStore) recordFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", s.dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

func (s *AssessmentFileStore) readRecord(name string) (*models.AssessmentRecord, error) {
	payload, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}

	var record models.AssessmentRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
