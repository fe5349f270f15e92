package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/devlink/internal/domain"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	p.id, p.user_id, p.company, p.website, p.location, p.status, p.bio,
	p.github_username, p.skills, p.social, p.created_at, p.updated_at,
	u.id, u.name, u.avatar`

func (r *ProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	social, err := json.Marshal(profile.Social)
	if err != nil {
		return fmt.Errorf("encoding social links: %w", err)
	}

	query := `
		INSERT INTO profiles (id, user_id, company, website, location, status, bio, github_username, skills, social, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.pool.Exec(ctx, query,
		profile.ID, profile.UserID, profile.Company, profile.Website,
		profile.Location, profile.Status, profile.Bio, profile.GithubUsername,
		profile.Skills, social, profile.CreatedAt, profile.UpdatedAt,
	)
	return err
}

func (r *ProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	social, err := json.Marshal(profile.Social)
	if err != nil {
		return fmt.Errorf("encoding social links: %w", err)
	}

	query := `
		UPDATE profiles
		SET company = $1, website = $2, location = $3, status = $4, bio = $5,
			github_username = $6, skills = $7, social = $8, updated_at = $9
		WHERE id = $10`

	_, err = r.pool.Exec(ctx, query,
		profile.Company, profile.Website, profile.Location, profile.Status,
		profile.Bio, profile.GithubUsername, profile.Skills, social,
		profile.UpdatedAt, profile.ID,
	)
	return err
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1`

	row := r.pool.QueryRow(ctx, query, userID)
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadEntries(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range profiles {
		if err := r.loadEntries(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}

	return profiles, nil
}

func (r *ProfileRepo) AddExperience(ctx context.Context, profileID uuid.UUID, exp *domain.Experience) error {
	query := `
		INSERT INTO experiences (id, profile_id, title, company, location, from_date, to_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		exp.ID, profileID, exp.Title, exp.Company, exp.Location,
		exp.From, exp.To, exp.Current, exp.Description, exp.CreatedAt,
	)
	return err
}

func (r *ProfileRepo) RemoveExperience(ctx context.Context, profileID, expID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM experiences WHERE id = $1 AND profile_id = $2", expID, profileID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProfileRepo) AddEducation(ctx context.Context, profileID uuid.UUID, edu *domain.Education) error {
	query := `
		INSERT INTO educations (id, profile_id, school, degree, field_of_study, from_date, to_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		edu.ID, profileID, edu.School, edu.Degree, edu.FieldOfStudy,
		edu.From, edu.To, edu.Current, edu.Description, edu.CreatedAt,
	)
	return err
}

func (r *ProfileRepo) RemoveEducation(ctx context.Context, profileID, eduID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM educations WHERE id = $1 AND profile_id = $2", eduID, profileID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAccount removes everything owned by the user in one transaction so a
// crash can't leave a user without a profile or orphaned posts behind.
func (r *ProfileRepo) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM post_likes WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("deleting likes: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM posts WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("deleting posts: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM profiles WHERE user_id = $1", userID); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if _, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	return tx.Commit(ctx)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	var owner domain.UserSummary
	var social []byte

	err := row.Scan(
		&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Status,
		&p.Bio, &p.GithubUsername, &p.Skills, &social, &p.CreatedAt,
		&p.UpdatedAt, &owner.ID, &owner.Name, &owner.Avatar,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(social, &p.Social); err != nil {
		return nil, fmt.Errorf("decoding social links: %w", err)
	}

	p.User = &owner
	return &p, nil
}

// loadEntries fills the experience and education lists, most recent first.
func (r *ProfileRepo) loadEntries(ctx context.Context, profile *domain.Profile) error {
	expQuery := `
		SELECT id, title, company, location, from_date, to_date, current, description, created_at
		FROM experiences
		WHERE profile_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, expQuery, profile.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	profile.Experience = []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description, &e.CreatedAt); err != nil {
			return err
		}
		profile.Experience = append(profile.Experience, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	eduQuery := `
		SELECT id, school, degree, field_of_study, from_date, to_date, current, description, created_at
		FROM educations
		WHERE profile_id = $1
		ORDER BY created_at DESC, id`

	rows, err = r.pool.Query(ctx, eduQuery, profile.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	profile.Education = []domain.Education{}
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description, &e.CreatedAt); err != nil {
			return err
		}
		profile.Education = append(profile.Education, e)
	}
	return rows.Err()
}
