package httpapi

import (
	"matchengine/internal/models"
	"matchengine/internal/search"

	"github.com/gofiber/fiber/v2"
)

type candidatesResponse struct {
	Candidates []models.Profile `json:"candidates"`
	Count      int              `json:"count"`
}

// searchCandidates filters the public candidate pool by the recruiter's
// query parameters. No filters returns the whole pool.
func (s *Server) searchCandidates(c *fiber.Ctx) error {
	if _, err := actingUser(c); err != nil {
		return err
	}

	criteria := search.Criteria{
		Skills:   c.Query("skills"),
		Location: c.Query("location"),
		Projects: c.Query("projects"),
	}

	pool, err := s.profiles.PublicCandidates(c.UserContext())
	if err != nil {
		return err
	}

	matched := criteria.Filter(pool)
	return c.JSON(candidatesResponse{
		Candidates: matched,
		Count:      len(matched),
	})
}
