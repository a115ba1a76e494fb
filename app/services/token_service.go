// Package services provides technical concerns like session token handling
package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bankforge/bankforge/utils"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService handles session token generation and validation
type TokenService interface {
	GenerateSessionToken(accountNumber int, customerID string) (token string, expiresIn int, err error)
	ValidateSessionToken(token string) (*SessionClaims, error)
}

// SessionClaims represents the claims in a session token
type SessionClaims struct {
	AccountNumber int       `json:"account_number"`
	CustomerID    string    `json:"customer_id"`
	IssuedAt      time.Time `json:"issued_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	TokenID       string    `json:"jti"`
}

// TokenServiceImpl implements TokenService
type TokenServiceImpl struct {
	sessionTTL time.Duration
	secretKey  []byte
	issuer     string
	audience   string
}

// NewTokenService creates a new token service
func NewTokenService(sessionTTL time.Duration, issuer, audience, secretKey string) (TokenService, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}
	return &TokenServiceImpl{
		sessionTTL: sessionTTL,
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		audience:   audience,
	}, nil
}

// GenerateSessionToken issues a signed session token for an authenticated
// account. expiresIn is the token lifetime in seconds.
func (s *TokenServiceImpl) GenerateSessionToken(accountNumber int, customerID string) (string, int, error) {
	now := utils.UTCNow()

	tokenID, err := generateTokenID()
	if err != nil {
		return "", 0, err
	}

	claims := jwt.MapClaims{
		"account_number": accountNumber,
		"customer_id":    customerID,
		"jti":            tokenID,
		"iat":            now.Unix(),
		"exp":            utils.UTCNowAdd(s.sessionTTL).Unix(),
		"iss":            s.issuer,
		"aud":            s.audience,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", 0, err
	}

	return signedString, int(s.sessionTTL.Seconds()), nil
}

// ValidateSessionToken verifies the signature and expiry of a session token
// and returns its claims.
func (s *TokenServiceImpl) ValidateSessionToken(token string) (*SessionClaims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "expired") || strings.Contains(err.Error(), "exp") {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	accountNumber, ok := claims["account_number"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	customerID, ok := claims["customer_id"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}
	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}
	expiresAt, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	if utils.IsExpired(time.Unix(int64(expiresAt), 0)) {
		return nil, ErrTokenExpired
	}

	return &SessionClaims{
		AccountNumber: int(accountNumber),
		CustomerID:    customerID,
		TokenID:       tokenID,
		IssuedAt:      time.Unix(int64(issuedAt), 0),
		ExpiresAt:     time.Unix(int64(expiresAt), 0),
	}, nil
}

// generateTokenID generates a unique token ID
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
