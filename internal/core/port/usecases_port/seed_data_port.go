package usecases_port

import "context"

type SeedDataUseCase interface {
	Execute(ctx context.Context) error
}
