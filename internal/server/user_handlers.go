package server

import (
	"strings"

	"skillswap/internal/models"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BrowseUsers handles GET /api/users?q=&availability=&page=
func (s *Server) BrowseUsers(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	availability := strings.TrimSpace(c.Query("availability"))
	page := parsePage(c)

	result, err := s.userService.Browse(c.Context(), q, availability, page)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(result)
}

// GetAvailabilityOptions handles GET /api/users/availability-options
func (s *Server) GetAvailabilityOptions(c *fiber.Ctx) error {
	options, err := s.userService.AvailabilityOptions(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if options == nil {
		options = []string{}
	}
	return c.JSON(fiber.Map{"options": options})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	detail, err := s.userService.GetProfile(c.Context(), userID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(detail)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Name          string   `json:"name"`
		Location      string   `json:"location"`
		ProfilePhoto  string   `json:"profile_photo"`
		Availability  string   `json:"availability"`
		IsPublic      *bool    `json:"is_public"`
		OfferedSkills []string `json:"offered_skills"`
		WantedSkills  []string `json:"wanted_skills"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), userID, service.UpdateProfileInput{
		Name:          req.Name,
		Location:      req.Location,
		ProfilePhoto:  req.ProfilePhoto,
		Availability:  req.Availability,
		IsPublic:      req.IsPublic,
		OfferedSkills: req.OfferedSkills,
		WantedSkills:  req.WantedSkills,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	detail, err := s.userService.GetProfile(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(detail)
}

// GetUserSkills handles GET /api/users/:id/skills
func (s *Server) GetUserSkills(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	summary, err := s.userService.SkillsForUser(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(summary)
}
