package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ownby4levy/topup-gateway/internal/domain"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindBySteamID resolves the shop account by its stable external identifier.
func (r *UserRepository) FindBySteamID(ctx context.Context, steamID string) (*domain.User, error) {
	query := `
		SELECT id, steam_id, display_name, balance
		FROM users
		WHERE steam_id = $1
	`

	var u domain.User
	err := r.db.Pool.QueryRow(ctx, query, steamID).Scan(&u.ID, &u.SteamID, &u.DisplayName, &u.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewAccountNotFoundError(steamID)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &u, nil
}
