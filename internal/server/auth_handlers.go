package server

import (
	"log/slog"
	"strings"
	"time"

	"craveconnect/internal/cache"
	"craveconnect/internal/middleware"
	"craveconnect/internal/models"
	"craveconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthPayload is the token with the account it was issued for.
type AuthPayload struct {
	Token string `json:"token"`
	*models.User
}

// TicketPayload is a single-use websocket ticket.
type TicketPayload struct {
	Ticket    string `json:"ticket"`
	ExpiresIn int    `json:"expiresIn"`
}

// Register handles POST /api/auth/register
// @Summary Register
// @Description Create a Foodie or Chef account and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,role=string} true "Registration"
// @Success 201 {object} Response{data=AuthPayload}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string      `json:"username"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = validation.NormalizeEmail(req.Email)
	if req.Role == "" {
		req.Role = models.RoleFoodie
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Username, email and password are required"))
	}
	for _, check := range []error{
		validation.ValidateUsername(req.Username),
		validation.ValidateEmail(req.Email),
		validation.ValidatePassword(req.Password),
		validation.ValidateSignupRole(req.Role),
	} {
		if check != nil {
			return respondError(c, invalidInput(check))
		}
	}

	ctx := c.UserContext()
	if existing, err := s.userRepo.GetByEmail(ctx, req.Email); err != nil {
		return respondError(c, err)
	} else if existing != nil {
		return respondError(c, models.NewConflictError("Username or email already exists"))
	}
	if existing, err := s.userRepo.GetByUsername(ctx, req.Username); err != nil {
		return respondError(c, err)
	} else if existing != nil {
		return respondError(c, models.NewConflictError("Username or email already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	now := s.now()
	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       req.Role,
		Avatar:     models.DefaultAvatar(req.Username),
		IsActive:   true,
		LastActive: &now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(ctx, "user registered",
		slog.Uint64("user_id", uint64(user.ID)),
		slog.String("role", string(user.Role)),
	)
	return respondCreated(c, AuthPayload{Token: token, User: user})
}

// Login handles POST /api/auth/login
// @Summary Login
// @Description Authenticate with email and password and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Credentials"
// @Success 200 {object} Response{data=AuthPayload}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Email and password are required"))
	}

	ctx := c.UserContext()
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return respondError(c, models.NewUnauthorizedError("Invalid credentials"))
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return respondError(c, models.NewUnauthorizedError("Invalid credentials"))
	}
	if !user.IsActive {
		return respondError(c, models.NewUnauthorizedError("Account is deactivated"))
	}

	updated, err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"last_active": s.now()})
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return respondOK(c, AuthPayload{Token: token, User: updated})
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.userService.GetUserByID(c.UserContext(), actor(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user)
}

// Logout handles POST /api/auth/logout. The token id is blacklisted until the token
// would have expired anyway.
// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals(localTokenID).(string)
	expiry, _ := c.Locals(localTokenExpiry).(time.Time)

	if jti != "" && s.redis != nil {
		ttl := expiry.Sub(s.now())
		if ttl > 0 {
			if err := s.redis.Set(c.UserContext(), cache.BlacklistKey(jti), "1", ttl).Err(); err != nil {
				return respondError(c, models.NewInternalError(err))
			}
		}
	}
	return respondMessage(c, "Logged out successfully")
}

// IssueWSTicket handles POST /api/auth/ws-ticket
// @Summary Issue a websocket ticket
// @Description Returns a single-use ticket valid for 30 seconds for GET /api/ws?ticket=
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=TicketPayload}
// @Failure 503 {object} models.ErrorResponse
// @Router /auth/ws-ticket [post]
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	if s.redis == nil {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			&models.AppError{Code: models.CodeInternal, Message: "Realtime tickets are unavailable"})
	}

	ticket := uuid.NewString()
	err := s.redis.Set(c.UserContext(), cache.WSTicketKey(ticket), actor(c).ID, cache.WSTicketTTL).Err()
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}
	return respondOK(c, TicketPayload{Ticket: ticket, ExpiresIn: int(cache.WSTicketTTL / time.Second)})
}
