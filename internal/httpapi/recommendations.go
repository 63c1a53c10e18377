package httpapi

import (
	"time"

	"matchengine/internal/common/errors"
	"matchengine/internal/common/metrics"
	"matchengine/internal/match"

	"github.com/gofiber/fiber/v2"
)

type recommendationsRequest struct {
	Limit int `json:"limit"`
}

type recommendationsResponse struct {
	Recommendations []match.Recommendation `json:"recommendations"`
	Count           int                    `json:"count"`
}

// recommendations ranks active jobs against the acting candidate's skills.
func (s *Server) recommendations(c *fiber.Ctx) error {
	userID, err := actingUser(c)
	if err != nil {
		return err
	}

	var req recommendationsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return errors.NewValidationFailedError("invalid request body: " + err.Error())
		}
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.Matching.DefaultRecommendationLimit
	}

	profile, err := s.profiles.GetByUserID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if profile == nil {
		return errors.NewValidationFailedError("no candidate profile for user " + userID)
	}

	jobs, err := s.jobs.ActiveJobs(c.UserContext())
	if err != nil {
		metrics.RecommendationDuration.WithLabelValues("error").Observe(0)
		return err
	}

	start := time.Now()
	recs := match.Recommend(match.SplitSkills(profile.Skills), jobs, limit)
	metrics.RecommendationDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	return c.JSON(recommendationsResponse{
		Recommendations: recs,
		Count:           len(recs),
	})
}
