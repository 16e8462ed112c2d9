package service

import (
	"fmt"

	"github.com/itchan-dev/forum/internal/config"
	"github.com/itchan-dev/forum/internal/domain"
)

// DeletionPolicy decides whether actor may delete thread.
type DeletionPolicy interface {
	CanDelete(actor domain.User, thread domain.ThreadMetadata) bool
}

type OwnerPolicy struct{}

func (OwnerPolicy) CanDelete(actor domain.User, thread domain.ThreadMetadata) bool {
	return thread.OwnedBy(actor)
}

type OwnerOrAdminPolicy struct{}

func (OwnerOrAdminPolicy) CanDelete(actor domain.User, thread domain.ThreadMetadata) bool {
	return actor.Admin || thread.OwnedBy(actor)
}

func NewDeletionPolicy(name string) (DeletionPolicy, error) {
	switch name {
	case config.DeleteOwner, "":
		return OwnerPolicy{}, nil
	case config.DeleteOwnerOrAdmin:
		return OwnerOrAdminPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown thread deletion policy %q", name)
	}
}
