package usecase

import (
	"table-booking/internal/domain/actor"
	"table-booking/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (actor.Actor, error)
}

// TokenIssuer signs tokens for the CLI; credentials live outside this service.
type TokenIssuer interface {
	IssueToken(a actor.Actor) (string, error)
}

type tokenServiceImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenServiceImpl{jwtService: jwtService}
}

func NewTokenIssuer(jwtService *jwt.Service) TokenIssuer {
	return &tokenServiceImpl{jwtService: jwtService}
}

func (t *tokenServiceImpl) ValidateToken(tokenString string) (actor.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.Parse(claims.UserID, claims.Roles, claims.Permissions)
}

func (t *tokenServiceImpl) IssueToken(a actor.Actor) (string, error) {
	roles := make([]string, 0, len(a.Roles()))
	for _, r := range a.Roles() {
		roles = append(roles, r.String())
	}
	perms := make([]string, 0, len(a.Permissions()))
	for _, p := range a.Permissions() {
		perms = append(perms, p.String())
	}
	return t.jwtService.GenerateToken(a.ID(), roles, perms)
}
