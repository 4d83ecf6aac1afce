package usecase

import (
	"context"
	"strings"
	"time"

	"biz-directory/internal/data/entity"
	"biz-directory/internal/data/repository"
	"biz-directory/internal/dto/request"
	"biz-directory/internal/dto/response"
	"biz-directory/pkg/apperror"
	"biz-directory/pkg/cache"
	"biz-directory/pkg/token"
	"biz-directory/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Authenticate(ctx context.Context, username, password string) (*entity.Identity, error)
	Logout(ctx context.Context, rawToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.IdentityResponse, error)
	ValidateToken(ctx context.Context, rawToken string) (*utils.Identity, error)
}

type authService struct {
	repo     *repository.Repository
	tokens   *token.Manager
	denylist cache.TokenDenylist
	mail     MailService
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	denylist cache.TokenDenylist,
	mail MailService,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		tokens:   tokens,
		denylist: denylist,
		mail:     mail,
		log:      log.With(zap.String("service", "auth")),
	}
}

// Register creates the identity and logs it in.
func (s *authService) Register(ctx context.Context, req *request.SignupRequest) (*response.AuthResponse, error) {
	identity, err := createIdentity(ctx, s.repo, req)
	if err != nil {
		s.log.Warn("Register failed", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	// best effort, never blocks or fails the sign-up
	s.mail.SendWelcome(identity)

	s.log.Info("User registered",
		zap.String("user_id", identity.User.ID.String()),
		zap.String("role", string(identity.Role())))

	return s.issue(identity)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if err := utils.ValidateRequest(req); err != nil {
		return nil, err
	}

	identity, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", identity.User.ID.String()))
	return s.issue(identity)
}

// Authenticate returns apperror.ErrUnauthenticated for both an unknown
// username and a wrong password, after the same bcrypt work.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*entity.Identity, error) {
	user, err := s.repo.User.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err))
		return nil, err
	}

	if user == nil {
		utils.BurnPasswordCheck(password)
		s.log.Warn("Login rejected")
		return nil, apperror.ErrUnauthenticated
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn("Login rejected")
		return nil, apperror.ErrUnauthenticated
	}

	return loadIdentity(ctx, s.repo, user.ID)
}

func (s *authService) issue(identity *entity.Identity) (*response.AuthResponse, error) {
	signed, claims, err := s.tokens.Sign(identity.User.ID, identity.User.Username, string(identity.Role()))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err))
		return nil, err
	}

	resp := response.AuthToResponse(signed, claims.ExpiresAt.Time, identity)
	return &resp, nil
}

// Logout revokes the presented token until it would have expired.
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}

	s.log.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.IdentityResponse, error) {
	identity, err := loadIdentity(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	resp := response.IdentityToResponse(identity)
	return &resp, nil
}

func (s *authService) ValidateToken(ctx context.Context, rawToken string) (*utils.Identity, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperror.ErrUnauthenticated
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}

	return &utils.Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
		TokenID:  claims.ID,
	}, nil
}
