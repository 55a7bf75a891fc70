package server

import (
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSwap handles POST /api/swaps
func (s *Server) CreateSwap(c *fiber.Ctx) error {
	var req struct {
		ReceiverID     uint   `json:"receiver_id"`
		OfferedSkillID uint   `json:"offered_skill_id"`
		WantedSkillID  uint   `json:"wanted_skill_id"`
		Message        string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ReceiverID == 0 || req.OfferedSkillID == 0 || req.WantedSkillID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("receiver_id, offered_skill_id, and wanted_skill_id are required"))
	}

	swap, err := s.swapService.CreateSwap(c.Context(), currentUserID(c), service.CreateSwapInput{
		ReceiverID:     req.ReceiverID,
		OfferedSkillID: req.OfferedSkillID,
		WantedSkillID:  req.WantedSkillID,
		Message:        req.Message,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(swap)
}

// GetSwaps handles GET /api/swaps?role=received|sent&status=&page=
func (s *Server) GetSwaps(c *fiber.Ctx) error {
	userID := currentUserID(c)
	role := c.Query("role", "received")

	switch role {
	case "received":
		status := models.SwapStatus(c.Query("status"))
		page := parsePage(c)

		swaps, total, err := s.swapService.ReceivedSwaps(c.Context(), userID, status, page)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		if swaps == nil {
			swaps = []models.SwapRequest{}
		}
		totalPages := int((total + repository.SwapPageSize - 1) / repository.SwapPageSize)
		return c.JSON(fiber.Map{
			"swaps":       swaps,
			"total":       total,
			"page":        page,
			"total_pages": totalPages,
		})
	case "sent":
		swaps, err := s.swapService.SentSwaps(c.Context(), userID)
		if err != nil {
			return models.RespondWithAppError(c, err)
		}
		if swaps == nil {
			swaps = []models.SwapRequest{}
		}
		return c.JSON(fiber.Map{"swaps": swaps})
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("role must be received or sent"))
	}
}

// AcceptSwap handles POST /api/swaps/:id/accept
func (s *Server) AcceptSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.AcceptSwap(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(swap)
}

// RejectSwap handles POST /api/swaps/:id/reject
func (s *Server) RejectSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	swap, err := s.swapService.RejectSwap(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(swap)
}

// DeleteSwap handles DELETE /api/swaps/:id
func (s *Server) DeleteSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.swapService.DeleteSwap(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Swap request deleted"})
}

// RateSwap handles POST /api/swaps/:id/ratings
func (s *Server) RateSwap(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	rating, err := s.swapService.RateSwap(c.Context(), currentUserID(c), id, service.RateSwapInput{
		Score:    req.Score,
		Feedback: req.Feedback,
	})
	if err != nil {
		// Echo the submitted feedback so the client can redisplay the form.
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":    appErr.Message,
				"code":     appErr.Code,
				"feedback": req.Feedback,
			})
		}
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rating)
}

// GetSwapRating handles GET /api/swaps/:id/ratings
func (s *Server) GetSwapRating(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	rating, err := s.swapService.GetOwnRating(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"rating": rating})
}

// GetSwapMessages handles GET /api/swaps/:id/messages
func (s *Server) GetSwapMessages(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	messages, err := s.swapService.Messages(c.Context(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendSwapMessage handles POST /api/swaps/:id/messages
func (s *Server) SendSwapMessage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, err := s.swapService.SendMessage(c.Context(), currentUserID(c), id, req.Content)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetUnreadCount handles GET /api/swaps/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	count, err := s.swapService.UnreadCount(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": count})
}
