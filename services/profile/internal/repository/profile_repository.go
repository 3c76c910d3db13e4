package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linkiq/linkiq/services/profile/internal/model"
	"github.com/linkiq/linkiq/services/profile/internal/tx"
)

type ProfileRepo struct{ DB *sql.DB }

// CreateIfNotExists inserts an empty profile whose username is the user id
// until the owner picks one.
func (r *ProfileRepo) CreateIfNotExists(ctx context.Context, id string) error {
	_, err := r.conn(ctx).ExecContext(ctx,
		`INSERT INTO profiles(user_id, username, theme) VALUES($1::uuid, $2::text, $3) ON CONFLICT DO NOTHING`,
		id, id, model.DefaultTheme)
	return err
}

const profileColumns = `user_id, username, display_name, avatar_url, bio, theme, theme_song_url, created_at, updated_at`

func (r *ProfileRepo) Get(ctx context.Context, id string) (*model.Profile, error) {
	return r.scanOne(r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id=$1::uuid`, id))
}

func (r *ProfileRepo) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	return r.scanOne(r.conn(ctx).QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username=$1`, username))
}

func (r *ProfileRepo) scanOne(row *sql.Row) (*model.Profile, error) {
	p := &model.Profile{}
	var displayName, avatarURL, bio, songURL sql.NullString
	var theme string

	err := row.Scan(&p.UserID, &p.Username, &displayName, &avatarURL, &bio, &theme, &songURL, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	p.DisplayName = displayName.String
	p.AvatarURL = avatarURL.String
	p.Bio = bio.String
	p.ThemeSongURL = songURL.String
	p.Theme = model.Theme(theme)
	if !p.Theme.Valid() {
		p.Theme = model.DefaultTheme
	}

	return p, nil
}

func (r *ProfileRepo) Update(ctx context.Context, p *model.Profile) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE profiles SET username=$2, display_name=$3, bio=$4, avatar_url=$5, theme=$6, updated_at=NOW() WHERE user_id=$1`,
		p.UserID, p.Username, p.DisplayName, p.Bio, p.AvatarURL, p.Theme)
	if isUniqueViolation(err) {
		return model.ErrUsernameTaken
	}
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrProfileNotFound)
}

func (r *ProfileRepo) SetThemeSong(ctx context.Context, id, url string) error {
	res, err := r.conn(ctx).ExecContext(ctx,
		`UPDATE profiles SET theme_song_url=NULLIF($2, ''), updated_at=NOW() WHERE user_id=$1`, id, url)
	if err != nil {
		return err
	}
	return expectOne(res, model.ErrProfileNotFound)
}

func expectOne(res sql.Result, notFound error) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

func (r *ProfileRepo) conn(ctx context.Context) tx.DBTX { return tx.Conn(ctx, r.DB) }
