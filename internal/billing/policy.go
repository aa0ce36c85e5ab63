package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/dinelink/dinelink/internal/models"
	"github.com/dinelink/dinelink/internal/storage"
)

// actor is a caller resolved against the event that owns a bill.
//
// One policy governs every bill operation:
//
//	view      any event member (whatever their status) or the organizer
//	mutate    the bill's creator, the organizer, or a confirmed member
//	finalize  the bill's creator or the organizer
//
// Completing a payment is reserved for its payer and checked in place.
type actor struct {
	userID string
	event  *models.Event // nil when the event no longer resolves
	member *models.EventMember
}

func resolveActor(ctx context.Context, q storage.EventStore, eventID, userID string) (actor, error) {
	a := actor{userID: userID}
	event, err := q.GetEvent(ctx, eventID)
	if errors.Is(err, storage.ErrNotFound) {
		return a, nil
	}
	if err != nil {
		return a, storageError("load event", err)
	}
	a.event = event
	for i := range event.Members {
		if event.Members[i].UserID == userID {
			a.member = &event.Members[i]
			break
		}
	}
	return a, nil
}

func (a actor) isOrganizer() bool {
	return a.userID != "" && a.event != nil && a.event.OrganizerID == a.userID
}

func (a actor) isConfirmed() bool {
	return a.member != nil && a.member.Status == models.MemberConfirmed
}

func (a actor) canView() bool {
	return a.isOrganizer() || a.member != nil
}

// canMutate applies to an existing bill; pass nil when creating one.
func (a actor) canMutate(bill *models.Bill) bool {
	if bill != nil && bill.CreatedBy == a.userID {
		return true
	}
	return a.isOrganizer() || a.isConfirmed()
}

func (a actor) canFinalize(bill *models.Bill) bool {
	return bill.CreatedBy == a.userID || a.isOrganizer()
}

// authorizeView loads the actor for bill and fails with ErrAccessDenied
// unless they may view it.
func authorizeView(ctx context.Context, q storage.EventStore, bill *models.Bill, userID string) error {
	a, err := resolveActor(ctx, q, bill.EventID, userID)
	if err != nil {
		return err
	}
	if !a.canView() {
		return fmt.Errorf("%w: user %s cannot view bill %s", ErrAccessDenied, userID, bill.ID)
	}
	return nil
}

// authorizeMutate loads the actor for bill and fails with ErrAccessDenied
// unless they may change it.
func authorizeMutate(ctx context.Context, q storage.EventStore, bill *models.Bill, userID string) error {
	a, err := resolveActor(ctx, q, bill.EventID, userID)
	if err != nil {
		return err
	}
	if !a.canMutate(bill) {
		return fmt.Errorf("%w: user %s cannot modify bill %s", ErrAccessDenied, userID, bill.ID)
	}
	return nil
}

// requireDraft fails with ErrInvalidState once a bill is finalized.
func requireDraft(bill *models.Bill) error {
	if bill.IsFinalized() {
		return fmt.Errorf("%w: bill %s is finalized", ErrInvalidState, bill.ID)
	}
	return nil
}
