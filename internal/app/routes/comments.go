package routes

import (
	"net/http"
	"strconv"
	"sync"

	pkgroutes "github.com/waypost/waypost/pkg/routes"
	"github.com/waypost/waypost/pkg/schema"
)

func init() {
	pkgroutes.Register("posts/_slug/comments.go", commentsModule)
}

// CommentParams is the validated :slug path parameter.
type CommentParams struct {
	Slug string `json:"slug" validate:"required"`
}

// CommentsQuery is the validated GET query string. Query values arrive as
// strings; the number rule rejects non-numeric limits.
type CommentsQuery struct {
	Limit string `json:"limit" validate:"omitempty,number"`
}

// CreateCommentCommand is the validated POST body.
type CreateCommentCommand struct {
	Message string `json:"message" validate:"required"`
}

// Comment is a post comment keyed by post slug.
type Comment struct {
	Slug    string `json:"slug"`
	Message string `json:"message"`
}

var comments struct {
	mu   sync.RWMutex
	list []Comment
}

func commentsModule() (*pkgroutes.Builder, error) {
	b := pkgroutes.New()

	params := schema.For[CommentParams]()

	if err := b.Validate(http.MethodGet, schema.Set{
		Params: params,
		Query:  schema.For[CommentsQuery](),
	}); err != nil {
		return nil, err
	}
	if err := b.Get(listComments); err != nil {
		return nil, err
	}

	if err := b.Validate(http.MethodPost, schema.Set{
		Params: params,
		Body:   schema.For[CreateCommentCommand](),
	}); err != nil {
		return nil, err
	}
	if err := b.Post(createComment); err != nil {
		return nil, err
	}

	return b, nil
}

func listComments(c *pkgroutes.Request) (any, error) {
	slug := c.Params.(CommentParams).Slug

	limit := 0
	if q := c.Query.(CommentsQuery); q.Limit != "" {
		limit, _ = strconv.Atoi(q.Limit)
	}

	comments.mu.RLock()
	defer comments.mu.RUnlock()

	result := make([]Comment, 0)
	for _, cm := range comments.list {
		if cm.Slug != slug {
			continue
		}
		result = append(result, cm)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func createComment(c *pkgroutes.Request) (any, error) {
	cm := Comment{
		Slug:    c.Params.(CommentParams).Slug,
		Message: c.Body.(CreateCommentCommand).Message,
	}

	comments.mu.Lock()
	comments.list = append(comments.list, cm)
	comments.mu.Unlock()

	return pkgroutes.JSON(http.StatusCreated, cm), nil
}
