package commands

import (
	"context"

	"postal/internal/core/ports"
)

// AutoSealCommandHandler sweeps all open batches and seals the ones whose
// age and fill satisfy the seal policy.
type AutoSealCommandHandler struct {
	uowFactory BatchUoWFactory
	publisher  ports.EventPublisher
}

// NewAutoSealCommandHandler creates a handler for the periodic seal sweep.
func NewAutoSealCommandHandler(
	uowFactory BatchUoWFactory,
	publisher ports.EventPublisher,
) AutoSealCommandHandler {
	return AutoSealCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle seals every due batch in one transaction and returns how many
// batches were sealed.
func (h *AutoSealCommandHandler) Handle(ctx context.Context, cmd AutoSealCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batchRepo := uow.BatchRepository()
	open, err := batchRepo.GetAllOpen(ctx)
	if err != nil {
		return 0, err
	}

	policy := cmd.Policy()
	sealed := open[:0:0]
	for _, b := range open {
		if !policy.ShouldSeal(b, cmd.Now()) {
			continue
		}
		if sealErr := b.Seal(); sealErr != nil {
			return 0, sealErr
		}
		if updErr := batchRepo.Update(ctx, b); updErr != nil {
			return 0, updErr
		}
		sealed = append(sealed, b)
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, b := range sealed {
		if pubErr := h.publisher.Publish(ctx, ports.NewEvent(
			ports.EventBatchSealed,
			b.ID(),
			map[string]any{"code": b.Code(), "orders": b.OrderCount()},
		)); pubErr != nil {
			return len(sealed), pubErr
		}
	}

	return len(sealed), nil
}
