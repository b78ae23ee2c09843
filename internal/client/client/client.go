package client

import (
	"context"

	"github.com/dmitrijs2005/diradmin/internal/client/models"
)

// Client is the directory service API as the views use it.
type Client interface {
	Login(ctx context.Context, email, password string) error
	ListUsers(ctx context.Context, page int) (*models.UserPage, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int, u models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}
