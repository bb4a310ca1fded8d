package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-editor/internal/types"
)

// ProfileChanges is a partial update to a stored profile. Nil fields
// are left unchanged.
type ProfileChanges struct {
	Name      *string
	Resume    *types.Resume
	IsActive  *bool
	UpdatedAt *int64
}

// ListProfiles returns all profiles owned by a user, oldest first.
func (db *DB) ListProfiles(ctx context.Context, userID uuid.UUID) ([]types.Profile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, resume, updated_at, is_active
		 FROM profiles WHERE user_id = $1 ORDER BY updated_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []types.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// GetProfile retrieves one profile, or nil when not found.
func (db *DB) GetProfile(ctx context.Context, userID, id uuid.UUID) (*types.Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, name, resume, updated_at, is_active
		 FROM profiles WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	p, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// CreateProfile stores a new profile. The server is the identity
// authority: it assigns the profile UUID and re-keys the document
// identifier to match, which is what drives client-side identity
// healing.
func (db *DB) CreateProfile(ctx context.Context, userID uuid.UUID, name string, resume types.Resume) (*types.Profile, error) {
	id := uuid.New()
	resume.ID = id.String()

	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	count, err := db.countProfiles(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := types.Profile{
		ID:        id,
		Name:      name,
		Resume:    resume,
		UpdatedAt: types.NowMillis(),
		IsActive:  count == 0,
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, user_id, name, resume, updated_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		profile.ID, userID, profile.Name, resumeJSON, profile.UpdatedAt, profile.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial update and returns the stored
// profile. A stored document always carries the profile's own UUID as
// its identifier, repairing whatever the client sent.
func (db *DB) UpdateProfile(ctx context.Context, userID, id uuid.UUID, changes ProfileChanges) (*types.Profile, error) {
	current, err := db.GetProfile(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if changes.Name != nil {
		current.Name = *changes.Name
	}
	if changes.Resume != nil {
		resume := *changes.Resume
		resume.ID = id.String()
		current.Resume = resume
	}
	if changes.UpdatedAt != nil {
		current.UpdatedAt = *changes.UpdatedAt
	} else {
		current.UpdatedAt = types.NowMillis()
	}

	if changes.IsActive != nil && *changes.IsActive {
		// Single-active invariant: demote the others first.
		if _, err := db.pool.Exec(ctx,
			`UPDATE profiles SET is_active = FALSE WHERE user_id = $1 AND id <> $2`,
			userID, id,
		); err != nil {
			return nil, fmt.Errorf("failed to demote active profiles: %w", err)
		}
		current.IsActive = true
	} else if changes.IsActive != nil {
		current.IsActive = false
	}

	resumeJSON, err := json.Marshal(current.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE profiles SET name = $1, resume = $2, updated_at = $3, is_active = $4
		 WHERE user_id = $5 AND id = $6`,
		current.Name, resumeJSON, current.UpdatedAt, current.IsActive, userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return current, nil
}

// DeleteProfile removes a profile.
func (db *DB) DeleteProfile(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM profiles WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", id)
	}
	return nil
}

func (db *DB) countProfiles(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}

func scanProfile(row pgx.Row) (*types.Profile, error) {
	var p types.Profile
	var resumeJSON []byte
	if err := row.Scan(&p.ID, &p.Name, &resumeJSON, &p.UpdatedAt, &p.IsActive); err != nil {
		if err == pgx.ErrNoRows {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	if err := json.Unmarshal(resumeJSON, &p.Resume); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume: %w", err)
	}
	return &p, nil
}
