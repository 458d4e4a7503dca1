package database

import (
	"context"
	"fmt"
	"log"

	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// Seed inserts the system entity types and meeting types. Safe to run repeatedly.
func Seed(ctx context.Context, store repositories.Store) error {
	if err := store.EntityTypes().EnsureSystemTypes(ctx); err != nil {
		return fmt.Errorf("failed to seed entity types: %w", err)
	}
	if err := store.MeetingTypes().EnsureSystemTypes(ctx); err != nil {
		return fmt.Errorf("failed to seed meeting types: %w", err)
	}
	log.Println("🌱 System entity types and meeting types seeded")
	return nil
}
