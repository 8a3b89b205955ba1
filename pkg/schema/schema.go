// Package schema defines request-shape validation for route definitions.
// A Set bundles up to four independent sub-schemas (body, query, headers,
// path parameters); each produces a typed value on success or a list of
// issues on failure.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Issue describes a single validation failure.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Schema validates raw request data and returns the typed value it decoded.
type Schema interface {
	Validate(data any) (any, []Issue)
}

// Set bundles the optional sub-schemas for one method. Sub-schemas are
// independent; the validation middleware stops at the first failing part.
type Set struct {
	Body    Schema
	Query   Schema
	Headers Schema
	Params  Schema
}

// Empty reports whether no sub-schema is configured.
func (s Set) Empty() bool {
	return s.Body == nil && s.Query == nil && s.Headers == nil && s.Params == nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type typed[T any] struct{}

// For returns a schema that decodes raw data into T and checks T's
// `validate` struct tags. T should be a struct with json tags matching
// the incoming field names.
func For[T any]() Schema {
	return typed[T]{}
}

func (typed[T]) Validate(data any) (any, []Issue) {
	var target T

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, []Issue{{Rule: "decode", Message: err.Error()}}
	}
	if err := json.Unmarshal(raw, &target); err != nil {
		return nil, []Issue{decodeIssue(err)}
	}

	if reflect.ValueOf(target).Kind() != reflect.Struct {
		return target, nil
	}

	if err := validate.Struct(target); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			issues := make([]Issue, 0, len(verrs))
			for _, fe := range verrs {
				issues = append(issues, Issue{
					Field:   fe.Field(),
					Rule:    fe.Tag(),
					Message: fe.Error(),
				})
			}
			return nil, issues
		}
		return nil, []Issue{{Rule: "struct", Message: err.Error()}}
	}

	return target, nil
}

func decodeIssue(err error) Issue {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return Issue{
			Field:   ute.Field,
			Rule:    "type",
			Message: fmt.Sprintf("expected %s, got %s", ute.Type, ute.Value),
		}
	}
	return Issue{Rule: "decode", Message: err.Error()}
}
