package services

import (
	"context"
	"fmt"

	"github.com/podlift/podlift/internal/api"
	"github.com/podlift/podlift/internal/localdata"
	"github.com/podlift/podlift/internal/logging"
)

const (
	metaEmail        = "email"
	metaAccessToken  = "access_token"
	metaRefreshToken = "refresh_token"
)

// AuthService handles login, session resume, and logout. Tokens are persisted
// in local metadata so a new process can continue without re-entering
// credentials.
type AuthService struct {
	client    api.Client
	metadata  localdata.MetadataRepository
	snapshots localdata.SnapshotRepository
	log       logging.Logger
}

func NewAuthService(client api.Client, metadata localdata.MetadataRepository, snapshots localdata.SnapshotRepository, log logging.Logger) *AuthService {
	return &AuthService{client: client, metadata: metadata, snapshots: snapshots, log: log}
}

func (s *AuthService) Login(ctx context.Context, email string, password []byte) error {
	if err := s.client.Login(ctx, email, password); err != nil {
		return err
	}
	if err := s.metadata.Set(ctx, metaEmail, []byte(email)); err != nil {
		return err
	}
	return s.PersistTokens(ctx)
}

// PersistTokens stores the client's current token pair. Called after login
// and after any transparent refresh worth keeping across runs.
func (s *AuthService) PersistTokens(ctx context.Context) error {
	access, refresh := s.client.Tokens()
	if err := s.metadata.Set(ctx, metaAccessToken, []byte(access)); err != nil {
		return err
	}
	if err := s.metadata.Set(ctx, metaRefreshToken, []byte(refresh)); err != nil {
		return err
	}
	return nil
}

// Resume installs a previously persisted token pair into the client. It
// returns false when no stored session exists.
func (s *AuthService) Resume(ctx context.Context) (bool, error) {
	access, err := s.metadata.Get(ctx, metaAccessToken)
	if err != nil {
		return false, fmt.Errorf("failed to load stored session: %w", err)
	}
	refresh, err := s.metadata.Get(ctx, metaRefreshToken)
	if err != nil {
		return false, fmt.Errorf("failed to load stored session: %w", err)
	}
	if len(access) == 0 && len(refresh) == 0 {
		return false, nil
	}

	s.client.SetTokens(string(access), string(refresh))
	s.log.Debug(ctx, "resumed stored session")
	return true, nil
}

// Email returns the account email of the stored session, if any.
func (s *AuthService) Email(ctx context.Context) (string, error) {
	b, err := s.metadata.Get(ctx, metaEmail)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Logout wipes all local state: tokens, account email, and record snapshots.
func (s *AuthService) Logout(ctx context.Context) error {
	s.client.SetTokens("", "")
	if err := s.metadata.Clear(ctx); err != nil {
		return err
	}
	if s.snapshots != nil {
		if err := s.snapshots.Clear(ctx); err != nil {
			return err
		}
	}
	s.log.Info(ctx, "logged out, local data cleared")
	return nil
}
