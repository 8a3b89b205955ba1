package routes

import (
	"net/http"

	pkgroutes "github.com/waypost/waypost/pkg/routes"
	"github.com/waypost/waypost/pkg/schema"
)

func init() {
	pkgroutes.Register("users/index.go", usersModule)
}

// CreateUserCommand is the validated POST /users body.
type CreateUserCommand struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func usersModule() (*pkgroutes.Builder, error) {
	b := pkgroutes.New()

	if err := b.Get(func(c *pkgroutes.Request) (any, error) {
		return store.list(), nil
	}); err != nil {
		return nil, err
	}

	if err := b.Validate(http.MethodPost, schema.Set{
		Body: schema.For[CreateUserCommand](),
	}); err != nil {
		return nil, err
	}

	if err := b.Post(func(c *pkgroutes.Request) (any, error) {
		cmd := c.Body.(CreateUserCommand)
		user := store.create(cmd.Name, cmd.Email)
		return pkgroutes.JSON(http.StatusCreated, user), nil
	}); err != nil {
		return nil, err
	}

	return b, nil
}
