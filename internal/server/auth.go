package server

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"craveconnect/internal/cache"
	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	tokenIssuer   = "craveconnect-api"
	tokenAudience = "craveconnect-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// Fiber locals set by the auth middleware.
const (
	localUserID      = "userID"
	localUser        = "user"
	localCaps        = "caps"
	localTokenID     = "tokenID"
	localTokenExpiry = "tokenExpiry"
)

// generateToken signs an HS256 token for the user.
func (s *Server) generateToken(userID uint) (string, error) {
	if s.config.JWTSecret == "" {
		return "", errors.New("JWT secret not configured")
	}

	ttl := s.config.JWTTTL
	if ttl <= 0 {
		ttl = tokenTTL
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseToken validates signature, issuer, audience and expiry.
func (s *Server) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return []byte(s.config.JWTSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// consumeTicket redeems a single-use websocket ticket.
func (s *Server) consumeTicket(ctx context.Context, ticket string) (uint, error) {
	if s.redis == nil {
		return 0, models.NewUnauthorizedError("Invalid or expired WebSocket ticket")
	}
	raw, err := s.redis.GetDel(ctx, cache.WSTicketKey(ticket)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.Logger.WarnContext(ctx, "ws ticket lookup failed")
		}
		return 0, models.NewUnauthorizedError("Invalid or expired WebSocket ticket")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewUnauthorizedError("Invalid or expired WebSocket ticket")
	}
	return uint(id), nil
}

// revoked reports whether the token id was blacklisted by a logout. Without redis
// revocation is not enforced.
func (s *Server) revoked(ctx context.Context, jti string) bool {
	if s.redis == nil || jti == "" {
		return false
	}
	n, err := s.redis.Exists(ctx, cache.BlacklistKey(jti)).Result()
	return err == nil && n > 0
}

// authenticate resolves the caller from a websocket ticket or a bearer token. It returns
// nil, nil when the request carries no credentials.
func (s *Server) authenticate(c *fiber.Ctx) (*models.User, error) {
	ctx := c.UserContext()

	var userID uint
	if ticket := c.Query("ticket"); ticket != "" && strings.HasPrefix(c.Path(), "/api/ws") {
		id, err := s.consumeTicket(ctx, ticket)
		if err != nil {
			return nil, err
		}
		userID = id
	} else {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return nil, nil
		}
		claims, err := s.parseToken(tokenString)
		if err != nil {
			return nil, err
		}
		if s.revoked(ctx, claims.ID) {
			return nil, models.NewUnauthorizedError("Token has been revoked")
		}
		id, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil || id == 0 {
			return nil, models.NewUnauthorizedError("Invalid user ID in token")
		}
		userID = uint(id)
		c.Locals(localTokenID, claims.ID)
		c.Locals(localTokenExpiry, claims.ExpiresAt.Time)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.StatusForError(err) == fiber.StatusNotFound {
			return nil, models.NewUnauthorizedError("User no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Account is deactivated")
	}
	return user, nil
}

// setCaller stores the user, id and capability set in locals and syncs the id to the
// request context for logging.
func setCaller(c *fiber.Ctx, user *models.User) {
	c.Locals(localUserID, user.ID)
	c.Locals(localUser, user)
	c.Locals(localCaps, user.Capabilities())
	c.SetUserContext(context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID))
}

// AuthRequired rejects requests without a valid caller.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.authenticate(c)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		setCaller(c, user)
		return c.Next()
	}
}

// AuthOptional resolves the caller when credentials are present. Bad credentials are
// still rejected.
func (s *Server) AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := s.authenticate(c)
		if err != nil {
			return respondError(c, err)
		}
		if user != nil {
			setCaller(c, user)
		}
		return c.Next()
	}
}

// RequireCapability rejects callers whose role lacks capability. Must follow AuthRequired.
func (s *Server) RequireCapability(capability models.Capability, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caps, _ := c.Locals(localCaps).(models.Capabilities)
		if !caps.Has(capability) {
			return models.RespondWithError(c, fiber.StatusForbidden, models.NewForbiddenError(message))
		}
		return c.Next()
	}
}

// actor returns the service-level caller for an authenticated request.
func actor(c *fiber.Ctx) service.Actor {
	user, ok := c.Locals(localUser).(*models.User)
	if !ok || user == nil {
		return service.Actor{}
	}
	return service.ActorFor(user)
}
