package database

import (
	"context"
)

const getUserByUsername = `
SELECT id, username, full_name, hashed_password, team, is_active, created_at, updated_at
FROM users
WHERE username = $1 AND is_active = TRUE
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.HashedPassword, &u.Team,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

const createUser = `
INSERT INTO users (username, full_name, hashed_password, team)
VALUES ($1, $2, $3, $4)
RETURNING id, username, full_name, hashed_password, team, is_active, created_at, updated_at
`

// CreateUserParams are the columns written on user insert.
type CreateUserParams struct {
	Username       string
	FullName       string
	HashedPassword string
	Team           string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Username, arg.FullName, arg.HashedPassword, arg.Team)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.HashedPassword, &u.Team,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
