package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/admin/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	dash, err := s.adminService.GetDashboard(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(dash)
}

// ToggleBan handles POST /api/admin/users/:id/ban
func (s *Server) ToggleBan(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.adminService.ToggleBan(c.Context(), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// ApproveSkill handles POST /api/admin/skills/:id/approve
func (s *Server) ApproveSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.ApproveSkill(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill approved"})
}

// DeleteSkill handles DELETE /api/admin/skills/:id
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteSkill(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Skill deleted"})
}

// CreateAnnouncement handles POST /api/admin/announcements
func (s *Server) CreateAnnouncement(c *fiber.Ctx) error {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.adminService.CreateAnnouncement(c.Context(), currentUserID(c), req.Title, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
