package server

import (
	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSkills handles GET /api/skills
func (s *Server) GetSkills(c *fiber.Ctx) error {
	catalog, err := s.userService.SkillCatalog(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if catalog == nil {
		catalog = []models.SkillRef{}
	}
	return c.JSON(fiber.Map{"skills": catalog})
}

// GetAnnouncements handles GET /api/announcements
func (s *Server) GetAnnouncements(c *fiber.Ctx) error {
	announcements, err := s.adminService.ListAnnouncements(c.Context(), 10)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if announcements == nil {
		announcements = []models.AdminMessage{}
	}
	return c.JSON(fiber.Map{"announcements": announcements})
}
