package service

import (
	"context"
	"fmt"
	"time"

	"flower-storefront/internal/client"
	"flower-storefront/internal/model"
	"flower-storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/gommon/log"
)

const (
	msgSignInFailed = "登入失敗，請重新確認你的帳號、密碼是否正確。"
	defaultTokenTTL = 24 * time.Hour
)

type tokenKey struct{}

// ContextWithToken attaches a token supplied by the caller; it takes
// precedence over the stored credential.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenSource yields the admin token for backend calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type AuthService interface {
	TokenSource
	SignIn(ctx context.Context, username, password string) (*model.Credential, error)
	SignOut(ctx context.Context) error
	Current(ctx context.Context) (*model.Credential, error)
}

type authServiceImpl struct {
	storeClient    client.StoreClient
	credentialRepo repository.CredentialRepository
	logger         *log.Logger
	now            func() time.Time
}

func NewAuthService(
	storeClient client.StoreClient,
	credentialRepo repository.CredentialRepository,
	logger *log.Logger,
) AuthService {
	return &authServiceImpl{
		storeClient:    storeClient,
		credentialRepo: credentialRepo,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *authServiceImpl) SignIn(ctx context.Context, username, password string) (*model.Credential, error) {
	res, err := s.storeClient.SignIn(ctx, username, password)
	if err != nil {
		s.logger.Warnf("sign in %s: %v", username, err)
		return nil, &Failure{Message: msgSignInFailed, Err: err}
	}
	if res.Token == "" {
		return nil, &Failure{Message: msgSignInFailed, Err: fmt.Errorf("sign in %s: empty token", username)}
	}

	credential := &model.Credential{
		Name:      repository.AdminCredential,
		UID:       res.UID,
		Token:     res.Token,
		ExpiresAt: s.expiry(res),
	}
	if err := s.credentialRepo.Upsert(ctx, credential); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}
	return credential, nil
}

// expiry prefers the backend's "expired", then the token's own exp claim.
func (s *authServiceImpl) expiry(res *client.SignInResult) time.Time {
	if !res.Expired.IsZero() {
		return res.Expired
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(res.Token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	return s.now().Add(defaultTokenTTL)
}

func (s *authServiceImpl) SignOut(ctx context.Context) error {
	if err := s.credentialRepo.Delete(ctx, repository.AdminCredential); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// Current returns the stored credential if it has not expired.
func (s *authServiceImpl) Current(ctx context.Context) (*model.Credential, error) {
	credential, err := s.credentialRepo.Get(ctx, repository.AdminCredential)
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	if credential.Expired(s.now()) {
		return nil, ErrUnauthorized
	}
	return credential, nil
}

func (s *authServiceImpl) Token(ctx context.Context) (string, error) {
	if token, ok := ctx.Value(tokenKey{}).(string); ok && token != "" {
		return token, nil
	}
	credential, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return credential.Token, nil
}
