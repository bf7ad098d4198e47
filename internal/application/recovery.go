package application

import (
	"context"

	"github.com/eyedist/backend/internal/domain/shared"
	"github.com/eyedist/backend/internal/infrastructure/logger"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// MaxReferenceRetries bounds how often a write is retried after the
// database rejected one of its foreign keys.
const MaxReferenceRetries = 4

// WriteWithRecovery runs write and, when it fails on a foreign key the
// entity can live without, nulls that reference and tries again. It returns
// the fields that were dropped along the way. Errors that do not name a
// column, or name one the entity cannot clear, are returned as is.
func WriteWithRecovery(ctx context.Context, entity shared.ReferenceClearer, write func(context.Context) error) ([]string, error) {
	var dropped []string
	for attempt := 0; ; attempt++ {
		err := write(ctx)
		if err == nil {
			return dropped, nil
		}
		refErr, ok := shared.AsReferenceError(err)
		if !ok || refErr.Field == "" || attempt >= MaxReferenceRetries {
			return dropped, err
		}
		cleared := entity.ClearReference(refErr.Field)
		if len(cleared) == 0 {
			return dropped, err
		}
		dropped = append(dropped, cleared...)
		logger.L(ctx).Warn("Dropped invalid reference, retrying",
			zap.String("field", refErr.Field),
			zap.Strings("cleared", cleared),
			zap.Int("attempt", attempt+1))
	}
}

// MergeDropped appends fields not already present in dst
func MergeDropped(dst []string, fields ...string) []string {
	return lo.Uniq(append(dst, fields...))
}
