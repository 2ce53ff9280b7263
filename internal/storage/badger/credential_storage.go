package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/praecolabs/praeco/internal/interfaces"
	"github.com/praecolabs/praeco/internal/models"
)

// CredentialStorage implements the CredentialStorage interface for Badger.
// Exactly one credential is current at a time; Put replaces any prior record.
type CredentialStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCredentialStorage creates a new CredentialStorage instance
func NewCredentialStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CredentialStorage {
	return &CredentialStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CredentialStorage) Put(ctx context.Context, cred *models.Credential) error {
	if cred.Token == "" {
		return fmt.Errorf("credential token is required")
	}
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}

	now := time.Now().Unix()
	if cred.CreatedAt == 0 {
		cred.CreatedAt = now
	}
	cred.UpdatedAt = now

	// Drop stale records first so only one credential is ever current
	if err := s.db.Store().DeleteMatching(&models.Credential{}, badgerhold.Where("ID").Ne(cred.ID)); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clear previous credentials")
	}

	if err := s.db.Store().Upsert(cred.ID, cred); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

func (s *CredentialStorage) GetCurrent(ctx context.Context) (*models.Credential, error) {
	var creds []models.Credential
	if err := s.db.Store().Find(&creds, nil); err != nil {
		return nil, fmt.Errorf("failed to load credential: %w", err)
	}
	if len(creds) == 0 {
		return nil, nil
	}

	// Newest record wins if a stale one survived
	current := &creds[0]
	for i := range creds {
		if creds[i].UpdatedAt > current.UpdatedAt {
			current = &creds[i]
		}
	}
	return current, nil
}

func (s *CredentialStorage) Delete(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.Credential{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
