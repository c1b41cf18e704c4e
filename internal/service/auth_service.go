package service

import (
	"context"
	"errors"
	"time"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/entity"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/internal/pkg/serverutils"
	"chameleon-be/internal/repository/contract"
	"chameleon-be/pkg/events"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// CurrentUser resolves a token to its user, or nil when the token is absent or invalid.
	CurrentUser(ctx context.Context, token string) *dto.UserDTO
	Logout(ctx context.Context, claims *serverutils.Claims) error
}

type authService struct {
	users     contract.UserRepository
	tokens    contract.TokenRepository
	jwtAuth   *serverutils.JwtAuth
	publisher IPublisherService
	secret    []byte
	ttl       time.Duration
	logger    logger.ILogger
}

func NewAuthService(
	users contract.UserRepository,
	tokens contract.TokenRepository,
	jwtAuth *serverutils.JwtAuth,
	publisher IPublisherService,
	secret string,
	ttl time.Duration,
	log logger.ILogger,
) IAuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		users:     users,
		tokens:    tokens,
		jwtAuth:   jwtAuth,
		publisher: publisher,
		secret:    []byte(secret),
		ttl:       ttl,
		logger:    log,
	}
}

func toUserDTO(u *entity.User) dto.UserDTO {
	return dto.UserDTO{Id: u.Id.String(), Email: u.Email}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.ttl)
	claims := serverutils.Claims{
		UserID: user.Id.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Id.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	evt := events.NewSessionEvent(events.SessionSignedIn, user.Id.String(), user.Email)
	if err := s.publisher.PublishSession(ctx, evt); err != nil {
		s.logger.Warn("AuthService", "Failed to publish sign-in", map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("AuthService", "User signed in", map[string]interface{}{"user_id": user.Id.String()})

	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		User:        toUserDTO(user),
	}, nil
}

func (s *authService) CurrentUser(ctx context.Context, token string) *dto.UserDTO {
	if token == "" {
		return nil
	}
	claims, err := s.jwtAuth.Parse(ctx, token)
	if err != nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	user, err := s.users.FindById(ctx, id)
	if err != nil {
		return nil
	}
	out := toUserDTO(user)
	return &out
}

// Logout revokes the token until it would have expired and tells open editors.
func (s *authService) Logout(ctx context.Context, claims *serverutils.Claims) error {
	if claims == nil {
		return nil
	}

	until := time.Now().Add(s.ttl)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	if err := s.tokens.Revoke(ctx, claims.ID, until); err != nil {
		return err
	}

	evt := events.NewSessionEvent(events.SessionSignedOut, claims.UserID, claims.Email)
	if err := s.publisher.PublishSession(ctx, evt); err != nil {
		s.logger.Warn("AuthService", "Failed to publish sign-out", map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("AuthService", "User signed out", map[string]interface{}{"user_id": claims.UserID})
	return nil
}
