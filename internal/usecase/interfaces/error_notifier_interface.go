package interfaces

import (
	"context"

	"nutri_quiz/internal/domain/entities"
)

// IErrorNotifier reports integration failures to operations. Callers treat it
// as best effort.
type IErrorNotifier interface {
	Notify(ctx context.Context, f entities.IntegrationFailure) error
}
