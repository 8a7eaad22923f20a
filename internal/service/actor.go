// Package service holds the domain rules between the HTTP handlers and the repositories.
package service

import (
	"fmt"
	"strings"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"
)

// Actor is the authenticated caller of a service operation, resolved once per request.
type Actor struct {
	ID       uint
	Username string
	Caps     models.Capabilities
}

// ActorFor builds the Actor for a loaded user.
func ActorFor(u *models.User) Actor {
	return Actor{ID: u.ID, Username: u.Username, Caps: u.Capabilities()}
}

// CanActOn reports whether the actor may mutate a resource owned by ownerID.
func (a Actor) CanActOn(ownerID uint) bool {
	return a.Caps.CanActOn(a.ID, ownerID)
}

// Waker is nudged after a transaction that enqueued a notification commits.
type Waker interface {
	Wake()
}

func wake(w Waker) {
	if w != nil {
		w.Wake()
	}
}

// invalid turns a validation rule failure into a client-facing validation error.
func invalid(err error) *models.AppError {
	msg := err.Error()
	if msg != "" {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return models.NewValidationError(msg)
}

// RecipePoints is awarded to a chef for every published recipe.
const RecipePoints = 10

func recipeLink(id uint) string {
	return fmt.Sprintf("/recipes/%d", id)
}

// recipeNotification returns a builder that notifies the recipe's chef unless the actor
// is the chef.
func recipeNotification(actor Actor, kind models.NotificationType, message func(title string) string) repository.OutboxBuilder {
	return func(r *models.Recipe) *models.NotificationOutbox {
		if r == nil || r.ChefID == actor.ID {
			return nil
		}
		return &models.NotificationOutbox{
			RecipientID: r.ChefID,
			SenderID:    actor.ID,
			Type:        kind,
			Message:     message(r.Title),
			Link:        recipeLink(r.ID),
		}
	}
}

func likeNotification(actor Actor) repository.OutboxBuilder {
	return recipeNotification(actor, models.NotificationLike, func(title string) string {
		return fmt.Sprintf("%s liked your recipe \"%s\"", actor.Username, title)
	})
}

func ratingNotification(actor Actor, value int) repository.OutboxBuilder {
	return recipeNotification(actor, models.NotificationRating, func(title string) string {
		return fmt.Sprintf("%s rated your recipe \"%s\" %d stars", actor.Username, title, value)
	})
}

func commentNotification(actor Actor) repository.OutboxBuilder {
	return recipeNotification(actor, models.NotificationComment, func(title string) string {
		return fmt.Sprintf("%s commented on your recipe \"%s\"", actor.Username, title)
	})
}

func followNotification(actor Actor, followeeID uint) *models.NotificationOutbox {
	return &models.NotificationOutbox{
		RecipientID: followeeID,
		SenderID:    actor.ID,
		Type:        models.NotificationFollow,
		Message:     fmt.Sprintf("%s started following you", actor.Username),
		Link:        fmt.Sprintf("/profile/%d", actor.ID),
	}
}
