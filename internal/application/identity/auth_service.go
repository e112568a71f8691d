package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/identity"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/auth"
)

// AuthService handles staff authentication and account registration.
type AuthService struct {
	users      identity.UserRepository
	jwtService *auth.JWTService
	hasher     *auth.PasswordHasher
	logger     *zap.Logger
}

// NewAuthService creates an authentication service.
func NewAuthService(users identity.UserRepository, jwtService *auth.JWTService, hasher *auth.PasswordHasher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		hasher:     hasher,
		logger:     logger,
	}
}

// Login authenticates a user and issues a token pair. Credential failures
// are indistinguishable from unknown logins in the response.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByLogin(ctx, req.Login)
	if err != nil {
		s.logger.Warn("login attempt for unknown user", zap.String("login", req.Login))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid login or password")
	}
	if !user.Active {
		s.logger.Warn("login attempt for inactive account", zap.String("login", req.Login))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is inactive")
	}
	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("login", req.Login))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid login or password")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Login:       user.Login,
		Role:        string(user.Role),
		WarehouseID: user.WarehouseID,
	})
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("user logged in", zap.String("login", user.Login), zap.String("user_id", user.ID.String()))
	return &LoginResponse{
		AccessToken:          pair.AccessToken,
		RefreshToken:         pair.RefreshToken,
		AccessTokenExpiresAt: pair.AccessTokenExpiresAt,
		User:                 ToUserResponse(user),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The account is
// re-checked so deactivation takes effect at the next refresh.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid refresh token")
	}
	if !user.Active {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is inactive")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Login:       user.Login,
		Role:        string(user.Role),
		WarehouseID: user.WarehouseID,
	})
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}
	return &LoginResponse{
		AccessToken:          pair.AccessToken,
		RefreshToken:         pair.RefreshToken,
		AccessTokenExpiresAt: pair.AccessTokenExpiresAt,
		User:                 ToUserResponse(user),
	}, nil
}

// Register creates a staff account with a hashed password.
func (s *AuthService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	if _, err := s.users.FindByLogin(ctx, req.Login); err == nil {
		return nil, shared.NewDomainErrorf("ALREADY_EXISTS", "login %s is already taken", req.Login)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to process password")
	}

	user, err := identity.NewUser(req.Login, hash, identity.Role(req.Role), req.WarehouseID)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("login", user.Login), zap.String("role", string(user.Role)))
	resp := ToUserResponse(user)
	return &resp, nil
}

// GetUser retrieves a staff account.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}
