package httpapi

import (
	"matchengine/internal/common/errors"
	"matchengine/internal/models"
	"matchengine/internal/search"

	"github.com/gofiber/fiber/v2"
)

type savedSearchesResponse struct {
	Searches []models.SavedSearch `json:"searches"`
	Count    int                  `json:"count"`
}

func (s *Server) createSearch(c *fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	var criteria search.Criteria
	if err := c.BodyParser(&criteria); err != nil {
		return errors.NewValidationFailedError("invalid request body: " + err.Error())
	}

	result, err := s.searches.Create(c.UserContext(), userID, criteria)
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if result.Existing {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(result)
}

func (s *Server) listSearches(c *fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	searches, err := s.searches.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if searches == nil {
		searches = []models.SavedSearch{}
	}
	return c.JSON(savedSearchesResponse{Searches: searches, Count: len(searches)})
}

func (s *Server) deleteSearch(c *fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	if err := s.searches.Delete(c.UserContext(), userID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) runSearch(c *fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	result, err := s.searches.Run(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
