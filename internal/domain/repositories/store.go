package repositories

import "context"

// Store groups the repositories that share one database handle.
// Transaction runs fn against a Store bound to a single transaction.
type Store interface {
	Entities() EntityRepository
	EntityTypes() EntityTypeRepository
	Meetings() MeetingRepository
	MeetingTypes() MeetingTypeRepository
	ActionItems() ActionItemRepository

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
