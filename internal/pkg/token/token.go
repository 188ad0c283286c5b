package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// SessionClaims is the payload of a login session token
type SessionClaims struct {
	UserID  uint   `json:"user_id"`
	LoginID string `json:"login_id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// VerificationClaims is the payload of an email verification token.
// TokenID makes every issued token unique so a superseded token can
// never match the stored value again.
type VerificationClaims struct {
	Email   string `json:"email"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, expiring tokens. It is the only
// holder of the signing secret; handlers receive a single instance at
// startup instead of reading the secret per call.
type Service struct {
	secret          []byte
	issuer          string
	sessionTTL      time.Duration
	verificationTTL time.Duration
}

// NewService creates a token service
func NewService(secret, issuer string, sessionTTL, verificationTTL time.Duration) *Service {
	return &Service{
		secret:          []byte(secret),
		issuer:          issuer,
		sessionTTL:      sessionTTL,
		verificationTTL: verificationTTL,
	}
}

// SessionTTL returns the configured session token lifetime
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

// IssueSession issues a signed session token
func (s *Service) IssueSession(userID uint, loginID, role string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:  userID,
		LoginID: loginID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   loginID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IssueVerification issues a signed email verification token and
// returns the token along with its unique ID.
func (s *Service) IssueVerification(email string) (string, string, error) {
	now := time.Now()
	tokenID := uuid.New().String()
	claims := VerificationClaims{
		Email:   email,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.verificationTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

// VerifySession validates a session token and returns its claims
func (s *Service) VerifySession(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

// VerifyVerification validates an email verification token and returns its claims
func (s *Service) VerifyVerification(tokenString string) (*VerificationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &VerificationClaims{}, s.keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*VerificationClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}

func (s *Service) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrTokenInvalid
	}
	return s.secret, nil
}
