package utils

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "RestaurantFloor"

var (
	jwtSecret = randomSecret()
	tokenTTL  = 12 * time.Hour
)

// SetJWTSecret installs the signing secret. With an empty secret a random one
// is kept, so tokens stop working after a restart.
func SetJWTSecret(secret string, ttl time.Duration) {
	if secret == "" {
		ErrorLogger.Println("Warning: JWT_SECRET not set, using a random secret")
	} else {
		jwtSecret = []byte(secret)
	}
	if ttl > 0 {
		tokenTTL = ttl
	}
}

func randomSecret() []byte {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	return secret
}

type CustomClaims struct {
	StaffID uint `json:"staff_id"`
	Admin   bool `json:"admin"`
	jwt.RegisteredClaims
}

func GenerateToken(staffID uint, admin bool) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		StaffID: staffID,
		Admin:   admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		ErrorLogger.Printf("Error generating token: %v", err)
		return "", err
	}
	return tokenString, nil
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	if IsTokenBlacklisted(tokenString) {
		return nil, errors.New("token has been revoked")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.StaffID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
