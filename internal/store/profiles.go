package store

import (
	"context"
	"database/sql"

	"matchengine/internal/common/errors"
	"matchengine/internal/models"
)

// ProfileStore reads the candidate pool owned by the profile collaborator.
// The engine never writes profiles.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// PublicCandidates returns every discoverable job-seeker profile, most
// recently updated first. Criteria filtering happens in-process so the
// search and saved-search paths share one set of matching rules.
func (s *ProfileStore) PublicCandidates(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.user_id, u.name, u.email, p.headline, p.bio, p.location,
		       p.skills, p.education, p.work_experience,
		       p.linkedin_url, p.github_url, p.portfolio_url, p.other_url,
		       p.commute_radius, p.is_public, p.created_at, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.is_public = TRUE AND u.user_type = 'job_seeker'
		ORDER BY p.updated_at DESC`)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("profiles_public_candidates", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Email, &p.Headline, &p.Bio, &p.Location,
			&p.Skills, &p.Education, &p.WorkExperience,
			&p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL, &p.OtherURL,
			&p.CommuteRadius, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, errors.NewQueryExecutionFailedError("profiles_public_candidates", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("profiles_public_candidates", err)
	}
	return profiles, nil
}

// GetByUserID fetches one profile by its owning user. Used to load the
// acting candidate's skills and location for recommendations.
func (s *ProfileStore) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.user_id, u.name, u.email, p.headline, p.bio, p.location,
		       p.skills, p.education, p.work_experience,
		       p.linkedin_url, p.github_url, p.portfolio_url, p.other_url,
		       p.commute_radius, p.is_public, p.created_at, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`, userID)

	var p models.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &p.Headline, &p.Bio, &p.Location,
		&p.Skills, &p.Education, &p.WorkExperience,
		&p.LinkedInURL, &p.GitHubURL, &p.PortfolioURL, &p.OtherURL,
		&p.CommuteRadius, &p.IsPublic, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("profiles_get_by_user", err)
	}
	return &p, nil
}
