package event

import (
	"context"

	"reservas/entities"
)

type OpsReadModel interface {
	OnReservationSubmitted(ctx context.Context, event *entities.ReservationSubmitted) error
}

type DataLake interface {
	Create(ctx context.Context, event entities.DataLakeEvent) error
}

type Handler struct {
	opsReadModel OpsReadModel
	dataLake     DataLake
}

func NewHandler(opsReadModel OpsReadModel, dataLake DataLake) Handler {
	if opsReadModel == nil {
		panic("missing opsReadModel")
	}
	if dataLake == nil {
		panic("missing dataLake")
	}
	return Handler{
		opsReadModel: opsReadModel,
		dataLake:     dataLake,
	}
}
