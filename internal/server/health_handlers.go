package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	checkHealthy     = "healthy"
	checkUnhealthy   = "unhealthy"
	checkUnavailable = "unavailable"
)

// dependencyChecks pings the database and redis.
func (s *Server) dependencyChecks(ctx context.Context) (db, cache string) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db = checkHealthy
	if sqlDB, err := s.db.DB(); err != nil {
		db = checkUnhealthy
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = checkUnhealthy
	}

	cache = checkUnavailable
	if s.redis != nil {
		cache = checkHealthy
		if err := s.redis.Ping(ctx).Err(); err != nil {
			cache = checkUnhealthy
		}
	}
	return db, cache
}

// HealthCheck handles GET /api/health
// @Summary API health
// @Description Reports database and redis reachability. Redis is optional.
// @Tags health
// @Produce json
// @Success 200 {object} object{success=bool,message=string,checks=object{database=string,redis=string}}
// @Failure 503 {object} object{success=bool,message=string,checks=object{database=string,redis=string}}
// @Router /health [get]
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	db, cache := s.dependencyChecks(c.UserContext())

	status := fiber.StatusOK
	if db != checkHealthy {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"success": status == fiber.StatusOK,
		"message": "CraveConnect API is running",
		"checks": fiber.Map{
			"database": db,
			"redis":    cache,
		},
	})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   s.now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is required for readiness since
// tickets, revocation and live notifications depend on it.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	db, cache := s.dependencyChecks(c.UserContext())

	status := fiber.StatusOK
	overall := checkHealthy
	if db != checkHealthy || cache != checkHealthy {
		status = fiber.StatusServiceUnavailable
		overall = checkUnhealthy
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": db,
			"redis":    cache,
		},
		"time": s.now(),
	})
}
