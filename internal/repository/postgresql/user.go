package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, location_type, skip_location_check, hire_date,
		       created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var usr user.User
	var locationType string
	err := q.QueryRow(ctx, query, id).Scan(
		&usr.ID, &usr.Name, &usr.Email, &locationType, &usr.SkipLocationCheck,
		&usr.HireDate, &usr.CreatedAt, &usr.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	usr.LocationType = user.LocationType(locationType)

	return usr, nil
}
