// Package ads implements the Meta Ads domain tools: thin callers that build
// endpoint paths and parameter mappings for accounts, campaigns, ad sets and
// insights, then hand the request to the Graph dispatcher. Each call builds
// its own parameter set; nothing is shared between invocations.
package ads

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/praecolabs/praeco/internal/interfaces"
	"github.com/praecolabs/praeco/internal/tools"
)

// Service exposes the Meta Ads tool operations.
type Service struct {
	graph    interfaces.GraphExecutor
	logger   arbor.ILogger
	validate *validator.Validate
}

// NewService creates the ads service on top of a Graph executor.
func NewService(executor interfaces.GraphExecutor, logger arbor.ILogger) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		graph:    executor,
		logger:   logger,
		validate: v,
	}
}

// validateRequest runs struct validation and converts the first failure into
// a ValidationError so it reaches the caller before any network call.
func (s *Service) validateRequest(req interface{}) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		reason := "is invalid"
		if f.Tag() == "required" {
			reason = "is required"
		}
		return tools.NewValidationError(f.Field(), reason)
	}

	return err
}
