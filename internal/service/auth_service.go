package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"catalog/internal/auth"
	apperrors "catalog/internal/errors"
	"catalog/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid, revoked or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// TokenResult carries an issued token pair plus the enhanced user fields,
// which are echoed in the grant response body.
type TokenResult struct {
	AccessToken   string
	RefreshToken  string
	ExpiresIn     int64
	UserID        uint
	UserFirstName string
	UserLastName  string
}

// AuthService implements the credential-exchange grants.
type AuthService interface {
	IssueToken(ctx context.Context, email, password string) (*TokenResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResult, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	enhancer   *TokenEnhancer
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates an authentication service.
func NewAuthService(userRepo repository.UserRepository, enhancer *TokenEnhancer, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		enhancer:   enhancer,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// IssueToken performs the password grant: credential check, claim
// enhancement, signing, refresh-token storage.
func (s *authService) IssueToken(ctx context.Context, email, password string) (*TokenResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == apperrors.ErrResourceNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueFor(ctx, email)
}

// Refresh exchanges a stored, unrevoked refresh token for a new token pair.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResult, error) {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if revoked, _ := s.tokenStore.IsRefreshTokenBlacklisted(ctx, tokenID); revoked {
		return nil, ErrInvalidRefreshToken
	}

	storedEmail, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	subject, err := s.jwtService.ExtractSubject(refreshToken)
	if err != nil || subject != storedEmail {
		return nil, ErrInvalidRefreshToken
	}

	// Rotate: the presented token is spent.
	_ = s.tokenStore.DeleteRefreshToken(ctx, tokenID)

	return s.issueFor(ctx, subject)
}

// Logout revokes a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return err
	}
	return s.tokenStore.BlacklistRefreshToken(ctx, tokenID, auth.RefreshTokenExpiry)
}

func (s *authService) issueFor(ctx context.Context, email string) (*TokenResult, error) {
	extra, err := s.enhancer.Enhance(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUnknownSubject) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("enhance token: %w", err)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	authorities := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		authorities = append(authorities, role.Authority)
	}
	extra["authorities"] = authorities

	accessToken, err := s.jwtService.GenerateAccessToken(email, extra)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, email, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		ExpiresIn:     int64(auth.AccessTokenExpiry.Seconds()),
		UserID:        user.ID,
		UserFirstName: user.FirstName,
		UserLastName:  user.LastName,
	}, nil
}
