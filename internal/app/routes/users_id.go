package routes

import (
	"net/http"

	pkgroutes "github.com/waypost/waypost/pkg/routes"
	"github.com/waypost/waypost/pkg/schema"
)

func init() {
	pkgroutes.Register("users/_id.go", userByIDModule)
}

// UserParams is the validated :id path parameter.
type UserParams struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// UpdateUserCommand is the validated PUT /users/:id body.
type UpdateUserCommand struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func userByIDModule() (*pkgroutes.Builder, error) {
	b := pkgroutes.New()

	params := schema.For[UserParams]()

	if err := b.Validate(http.MethodGet, schema.Set{Params: params}); err != nil {
		return nil, err
	}
	if err := b.Get(func(c *pkgroutes.Request) (any, error) {
		user, ok := store.get(c.Params.(UserParams).ID)
		if !ok {
			return userNotFound(), nil
		}
		return user, nil
	}); err != nil {
		return nil, err
	}

	if err := b.Validate(http.MethodPut, schema.Set{
		Params: params,
		Body:   schema.For[UpdateUserCommand](),
	}); err != nil {
		return nil, err
	}
	if err := b.Put(func(c *pkgroutes.Request) (any, error) {
		cmd := c.Body.(UpdateUserCommand)
		user, ok := store.update(c.Params.(UserParams).ID, cmd.Name, cmd.Email)
		if !ok {
			return userNotFound(), nil
		}
		return user, nil
	}); err != nil {
		return nil, err
	}

	if err := b.Validate(http.MethodDelete, schema.Set{Params: params}); err != nil {
		return nil, err
	}
	if err := b.Delete(func(c *pkgroutes.Request) (any, error) {
		if !store.delete(c.Params.(UserParams).ID) {
			return userNotFound(), nil
		}
		return &pkgroutes.Response{Status: http.StatusNoContent}, nil
	}); err != nil {
		return nil, err
	}

	return b, nil
}

func userNotFound() *pkgroutes.Response {
	return pkgroutes.JSON(http.StatusNotFound, map[string]string{
		"error": "User not found",
	})
}
