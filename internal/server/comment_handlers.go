package server

import (
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetRecipeComments handles GET /api/recipes/:id/comments
// @Summary Recipe comments
// @Description Approved comments, newest first
// @Tags comments
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} Response{data=[]models.Comment}
// @Router /recipes/{id}/comments [get]
func (s *Server) GetRecipeComments(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	comments, err := s.commentService.ListComments(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, comments)
}

// CreateComment handles POST /api/recipes/:id/comments
// @Summary Comment on a recipe
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body object{text=string} true "Comment"
// @Success 201 {object} Response{data=models.Comment}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	comment, err := s.commentService.CreateComment(c.UserContext(), actor(c), service.CreateCommentInput{
		RecipeID: id,
		Text:     req.Text,
	})
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, comment)
}

// DeleteComment handles DELETE /api/recipes/:id/comments/:commentId
// @Summary Delete a comment
// @Description Author of the comment or an admin
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /recipes/{id}/comments/{commentId} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	recipeID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return nil
	}
	if _, err := s.commentService.DeleteComment(c.UserContext(), actor(c), service.DeleteCommentInput{
		RecipeID:  recipeID,
		CommentID: commentID,
	}); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Comment deleted successfully")
}
