// Package backpack manages per-trainer item stacks.
package backpack

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/pokecamp/backend/x/audit"
	"github.com/pokecamp/backend/x/core"
)

var tracer = otel.Tracer("backpack")

// Service is the interface for backpack service
type Service interface {
	List(ctx context.Context, userID uint) ([]core.BackpackItem, error)
	Add(ctx context.Context, userID uint, itemName string, quantity int) (core.BackpackItem, error)
	SetQuantity(ctx context.Context, userID, itemID uint, quantity int) (core.BackpackItem, bool, error)
	Remove(ctx context.Context, userID, itemID uint) error
}

type service struct {
	repository Repository
	audit      audit.Service
}

// NewService creates a new backpack service
func NewService(repository Repository, audit audit.Service) Service {
	return &service{repository, audit}
}

func (s *service) List(ctx context.Context, userID uint) ([]core.BackpackItem, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Service.List")
	defer span.End()

	return s.repository.List(ctx, userID)
}

// Add puts quantity of an item into the backpack, stacking onto an
// existing row when the trainer already carries that item.
func (s *service) Add(ctx context.Context, userID uint, itemName string, quantity int) (core.BackpackItem, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Service.Add")
	defer span.End()

	item, err := s.repository.AddOrIncrement(ctx, userID, itemName, quantity)
	if err != nil {
		span.RecordError(err)
		return core.BackpackItem{}, err
	}

	s.audit.Record(ctx, &userID, audit.ActionAddItem,
		fmt.Sprintf("Added %dx '%s' to the backpack.", quantity, itemName))

	return item, nil
}

// SetQuantity overwrites a stack's quantity. Zero deletes the row; the
// bool reports that deletion.
func (s *service) SetQuantity(ctx context.Context, userID, itemID uint, quantity int) (core.BackpackItem, bool, error) {
	ctx, span := tracer.Start(ctx, "Backpack.Service.SetQuantity")
	defer span.End()

	item, err := s.repository.GetItem(ctx, itemID, userID)
	if err != nil {
		return core.BackpackItem{}, false, err
	}

	if quantity == 0 {
		if err := s.repository.Delete(ctx, itemID); err != nil {
			span.RecordError(err)
			return core.BackpackItem{}, false, err
		}
		s.audit.Record(ctx, &userID, audit.ActionRemoveItem,
			fmt.Sprintf("Removed the rest of '%s' from the backpack.", item.ItemName))
		return core.BackpackItem{}, true, nil
	}

	updated, err := s.repository.SetQuantity(ctx, itemID, quantity)
	if err != nil {
		span.RecordError(err)
		return core.BackpackItem{}, false, err
	}

	s.audit.Record(ctx, &userID, audit.ActionEditItem,
		fmt.Sprintf("Changed quantity of '%s': %d -> %d.", item.ItemName, item.Quantity, quantity))

	return updated, false, nil
}

// Remove deletes a stack regardless of its quantity.
func (s *service) Remove(ctx context.Context, userID, itemID uint) error {
	ctx, span := tracer.Start(ctx, "Backpack.Service.Remove")
	defer span.End()

	item, err := s.repository.GetItem(ctx, itemID, userID)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, itemID); err != nil {
		span.RecordError(err)
		return err
	}

	s.audit.Record(ctx, &userID, audit.ActionRemoveItem,
		fmt.Sprintf("Removed the rest of '%s' from the backpack.", item.ItemName))

	return nil
}
