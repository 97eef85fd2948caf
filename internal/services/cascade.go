package services

import (
	"context"
	"fmt"
	"log/slog"
)

// cascadeStep is one unit of a multi-document delete. Document steps are
// required: a failure aborts the cascade. Blob-removal steps are
// best-effort: a failure only leaks a blob in the media store, so it is
// logged and the cascade continues.
type cascadeStep struct {
	name       string
	bestEffort bool
	run        func(ctx context.Context) error
}

// runCascade executes the steps in order. Cascades are not transactional;
// step order is chosen so that an interrupted run never leaves dangling
// references to already-deleted parents.
func runCascade(ctx context.Context, logger *slog.Logger, entity string, steps []cascadeStep) error {
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			if step.bestEffort {
				logger.Warn("cascade step failed, continuing",
					"entity", entity, "step", step.name, "error", err)
				continue
			}
			return fmt.Errorf("cascade %s/%s: %w", entity, step.name, err)
		}
	}
	return nil
}
