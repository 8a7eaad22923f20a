package service

import (
	"context"
	"strings"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"
	"craveconnect/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	waker       Waker
}

type CreateCommentInput struct {
	RecipeID uint
	Text     string
}

type DeleteCommentInput struct {
	RecipeID  uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, waker Waker) *CommentService {
	return &CommentService{commentRepo: commentRepo, waker: waker}
}

// CreateComment stores the comment and notifies the recipe's chef.
func (s *CommentService) CreateComment(ctx context.Context, actor Actor, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateComment(in.Text); err != nil {
		return nil, invalid(err)
	}

	comment := &models.Comment{
		RecipeID:   in.RecipeID,
		UserID:     actor.ID,
		Text:       strings.TrimSpace(in.Text),
		IsApproved: true,
	}
	if err := s.commentRepo.Create(ctx, comment, commentNotification(actor)); err != nil {
		return nil, err
	}
	wake(s.waker)

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, recipeID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByRecipe(ctx, recipeID)
}

// DeleteComment removes a comment. Only its author or a moderator may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, actor Actor, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if in.RecipeID != 0 && comment.RecipeID != in.RecipeID {
		return nil, models.NewNotFoundError("Comment", nil)
	}
	if !actor.CanActOn(comment.UserID) {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}
