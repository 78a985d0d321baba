// Package store persists completed analysis results for later retrieval and
// the recent-analyses listing.
package store

import (
	"context"
	"errors"

	"github.com/use-agent/sitegrade/models"
)

// ErrNotFound is returned when no result exists for a session id.
var ErrNotFound = errors.New("result not found")

// ResultStore is the narrow persistence contract the core depends on:
// a document store keyed by session id with a newest-first listing.
type ResultStore interface {
	Put(ctx context.Context, result *models.AnalysisResult) error
	Get(ctx context.Context, sessionID string) (*models.AnalysisResult, error)
	List(ctx context.Context, limit int) ([]models.ResultSummary, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
