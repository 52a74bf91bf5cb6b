package event

import (
	"context"

	"reservas/entities"
	"reservas/observability"
)

func (h Handler) UpdateOpsReadModel(ctx context.Context, event *entities.ReservationSubmitted) error {
	observability.FromContext(ctx).
		WithField("submission_id", event.SubmissionID).
		Info("Updating ops read model")

	return h.opsReadModel.OnReservationSubmitted(ctx, event)
}
