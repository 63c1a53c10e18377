package httpapi

import (
	"strconv"

	"matchengine/internal/common/errors"
	"matchengine/internal/geo"
	"matchengine/internal/models"

	"github.com/gofiber/fiber/v2"
)

type nearbyJob struct {
	Job           models.Job `json:"job"`
	DistanceMiles float64    `json:"distanceMiles"`
}

type nearbyJobsResponse struct {
	Origin      string      `json:"origin"`
	RadiusMiles float64     `json:"radiusMiles"`
	Jobs        []nearbyJob `json:"jobs"`
	Count       int         `json:"count"`
}

// nearbyJobs returns active jobs within a commute radius of a free-text
// origin location. Jobs without stored coordinates are excluded; an origin
// that cannot be geocoded rejects the request.
func (s *Server) nearbyJobs(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return errors.NewValidationFailedError("location query parameter is required")
	}

	radius := s.cfg.Matching.DefaultRadiusMiles
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			return errors.NewValidationFailedError("radius must be a positive number")
		}
		radius = parsed
	}

	origin, ok := s.resolver.Resolve(c.UserContext(), location)
	if !ok {
		return errors.NewUnresolvedLocationError(location)
	}

	jobs, err := s.jobs.ActiveJobs(c.UserContext())
	if err != nil {
		return err
	}

	within := geo.FilterByRadius(jobs, origin, radius, func(j models.Job) (geo.Coordinate, bool) {
		if j.Latitude == nil || j.Longitude == nil {
			return geo.Coordinate{}, false
		}
		return geo.Coordinate{Latitude: *j.Latitude, Longitude: *j.Longitude}, true
	})

	results := make([]nearbyJob, 0, len(within))
	for _, w := range within {
		results = append(results, nearbyJob{Job: w.Item, DistanceMiles: w.DistanceMiles})
	}

	return c.JSON(nearbyJobsResponse{
		Origin:      location,
		RadiusMiles: radius,
		Jobs:        results,
		Count:       len(results),
	})
}
