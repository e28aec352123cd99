package user

import "context"

// UserRepository - read side of the user master data. The engine never
// creates or mutates users; that belongs to an external admin surface.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
}
