package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "card-fee-simulator"

type StaffClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService checks staff credentials and issues session tokens.
type AuthService struct {
	users  map[string][]byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users map[string]string, secret string, ttl time.Duration) *AuthService {
	hashes := make(map[string][]byte, len(users))
	for name, hash := range users {
		hashes[name] = []byte(hash)
	}
	return &AuthService{users: hashes, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// ParseStaffUsers reads "name:bcrypt-hash" pairs separated by commas. An
// underscore in a name stands for a space.
func ParseStaffUsers(s string) (map[string]string, error) {
	users := make(map[string]string)
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, hash, ok := strings.Cut(entry, ":")
		if !ok || name == "" || hash == "" {
			return nil, fmt.Errorf("staff user entry %q must be name:hash", entry)
		}
		users[strings.ReplaceAll(name, "_", " ")] = hash
	}
	return users, nil
}

func (s *AuthService) Login(username, password string) (string, time.Time, error) {
	hash, ok := s.users[username]
	if !ok {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := StaffClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *AuthService) Verify(tokenStr string) (*StaffClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &StaffClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*StaffClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, known := s.users[claims.Username]; !known {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
