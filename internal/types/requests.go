// Package types provides the request variants accepted by the hunter CLI.
package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind names one of the remote operations.
type Kind string

// Supported kinds.
const (
	KindSearch Kind = "search"
	KindFind   Kind = "find"
	KindVerify Kind = "verify"
)

// Search defaults applied when limit or offset are not given.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// ParseKind maps a command name to its Kind.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(s); k {
	case KindSearch, KindFind, KindVerify:
		return k, true
	}
	return "", false
}

// Request is one of SearchRequest, FindRequest or VerifyRequest.
type Request interface {
	Kind() Kind
	Validate() error
}

// SearchRequest asks for every known address at a domain.
type SearchRequest struct {
	Domain string `csv:"domain" validate:"required"`
	Limit  int    `csv:"limit" validate:"gte=0"`
	Offset int    `csv:"offset" validate:"gte=0"`
	Type   string `csv:"type"`
}

// FindRequest asks for the most likely address of one person.
type FindRequest struct {
	Domain    string `csv:"domain" validate:"required"`
	FirstName string `csv:"first_name" validate:"required"`
	LastName  string `csv:"last_name" validate:"required"`
}

// VerifyRequest asks whether an address is deliverable.
type VerifyRequest struct {
	Email string `csv:"email" validate:"required"`
}

func (SearchRequest) Kind() Kind { return KindSearch }
func (FindRequest) Kind() Kind   { return KindFind }
func (VerifyRequest) Kind() Kind { return KindVerify }

// Validate validates the SearchRequest using the validator.
func (r SearchRequest) Validate() error {
	return validateRequest(r)
}

// Validate validates the FindRequest using the validator.
func (r FindRequest) Validate() error {
	return validateRequest(r)
}

// Validate validates the VerifyRequest using the validator.
func (r VerifyRequest) Validate() error {
	return validateRequest(r)
}

// FieldError describes one invalid field of a request.
type FieldError struct {
	Kind  Kind
	Field string
	Tag   string
}

func (e FieldError) Error() string {
	if e.Tag == "required" {
		return fmt.Sprintf("%s is required when using the %s command", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s is invalid when using the %s command (%s)", e.Field, e.Kind, e.Tag)
}

// ValidationError collects every invalid field of a request, in field
// declaration order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("csv"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

func validateRequest(r Request) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Kind: r.Kind(), Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
