package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/pokescout-backend/internal/domain"
)

// SyncResult buckets the names of one Sync call. Names are reported trimmed,
// in input order.
type SyncResult struct {
	Success       []string
	Failed        []string
	AlreadyExists []string
	Total         int
}

// Sync runs FetchAndPersist for each name in order. A failing name never
// aborts the batch. A name repeated within the batch is decided by its first
// occurrence: later copies land in AlreadyExists if the first one stored or
// found the record, and in Failed otherwise, without another upstream call.
func (s *Service) Sync(ctx context.Context, names []string) (*SyncResult, error) {
	if len(names) == 0 {
		return nil, domain.NewValidationError("names", "must not be empty")
	}
	if len(names) > s.limits.MaxBatchSize {
		return nil, domain.NewValidationError("names",
			fmt.Sprintf("at most %d entries allowed, got %d", s.limits.MaxBatchSize, len(names)))
	}

	res := &SyncResult{
		Success:       []string{},
		Failed:        []string{},
		AlreadyExists: []string{},
		Total:         len(names),
	}
	stored := make(map[string]bool, len(names))

	for _, raw := range names {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sync: %w", err)
		}

		name := strings.TrimSpace(raw)
		key, err := domain.SanitizeName(name)
		if err != nil {
			res.Failed = append(res.Failed, name)
			continue
		}

		if ok, seen := stored[key]; seen {
			if ok {
				res.AlreadyExists = append(res.AlreadyExists, name)
			} else {
				res.Failed = append(res.Failed, name)
			}
			continue
		}

		result, err := s.FetchAndPersist(ctx, key)
		switch {
		case err != nil:
			stored[key] = false
			res.Failed = append(res.Failed, name)
		case result.Created:
			stored[key] = true
			res.Success = append(res.Success, name)
		default:
			stored[key] = true
			res.AlreadyExists = append(res.AlreadyExists, name)
		}
	}

	s.log.InfoContext(ctx, "sync finished",
		slog.Int("total", res.Total),
		slog.Int("success", len(res.Success)),
		slog.Int("failed", len(res.Failed)),
		slog.Int("already_exists", len(res.AlreadyExists)),
	)
	return res, nil
}
