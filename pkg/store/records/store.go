package records

import (
	"context"

	"github.com/de-tools/practice-atlas/pkg/models/domain"
	"github.com/de-tools/practice-atlas/pkg/models/store"
)

// Store is a single-page view over a practice's record table. Every backend of
// the service caps one call's result size, so callers page through offsets; the
// filter is applied by the backend before paging.
type Store interface {
	FetchPage(
		ctx context.Context,
		practice string,
		filter domain.RecordFilter,
		offset, limit int,
	) ([]store.TimeRecord, error)
}
