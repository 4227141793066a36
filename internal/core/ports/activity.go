package ports

import (
	"context"
	"time"

	"github.com/pathagar/bookshop-api/internal/core/domain"
)

// ActivityInput is the DTO handed from request paths to the activity pipeline.
type ActivityInput struct {
	Email     string
	Action    string
	Subject   string
	Timestamp time.Time
}

// ActivityService records audit entries. Failures are logged, never
// propagated back into the request that produced the entry.
type ActivityService interface {
	Record(ctx context.Context, in ActivityInput) error
}

// ActivityRepository persists audit entries.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}
