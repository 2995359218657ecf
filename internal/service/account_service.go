package service

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/google"
	"github.com/planwheel/planwheel-server/internal/model"
	"github.com/planwheel/planwheel-server/internal/repository"
)

// AccountService handles login and Google account linking.
type AccountService struct {
	db     *gorm.DB
	google *google.Client
	log    *zap.SugaredLogger
}

func NewAccountService(db *gorm.DB, googleClient *google.Client, log *zap.SugaredLogger) *AccountService {
	return &AccountService{db: db, google: googleClient, log: log}
}

// Login exchanges an authorization code, upserts the matching user and
// stores the refresh token when Google issued one.
func (s *AccountService) Login(ctx context.Context, code string) (*model.User, error) {
	token, err := s.google.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}
	info, err := s.google.FetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	users := repository.NewUserRepository(s.db)
	user, err := users.UpsertFromGoogle(ctx, info.Email, info.GivenName, info.FamilyName, info.Picture)
	if err != nil {
		return nil, err
	}
	if token.RefreshToken != "" {
		if err := users.SetRefreshToken(ctx, user.ID, token.RefreshToken); err != nil {
			return nil, err
		}
		user.GoogleRefreshToken = token.RefreshToken
	}
	s.log.Infow("user logged in", "user", user.ID)
	return user, nil
}

// Unlink revokes the stored refresh token and clears it.
func (s *AccountService) Unlink(ctx context.Context, userID uint) error {
	users := repository.NewUserRepository(s.db)
	user, err := users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.GoogleLinked() {
		return apperr.ErrGoogleNotLinked
	}
	if err := s.google.Revoke(ctx, user.GoogleRefreshToken); err != nil {
		return err
	}
	return users.SetRefreshToken(ctx, user.ID, "")
}

// Profile returns the user's profile view.
func (s *AccountService) Profile(ctx context.Context, userID uint) (*model.User, error) {
	return repository.NewUserRepository(s.db).FindByID(ctx, userID)
}
