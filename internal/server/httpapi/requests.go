package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"github.com/dmitrijs2005/lifeboard/internal/common"
	"github.com/dmitrijs2005/lifeboard/internal/server/services"
	"github.com/dmitrijs2005/lifeboard/internal/timex"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError wraps common.ErrorValidation with per-field reasons.
type validationError struct {
	msg    string
	fields map[string]string
}

func (e *validationError) Error() string { return e.msg }
func (e *validationError) Unwrap() error { return common.ErrorValidation }

// decode reads a JSON body into dst and validates it. An empty body decodes
// as {} so that missing fields are reported as such.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &validationError{msg: "invalid request body: " + err.Error()}
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Tag()
		names = append(names, fe.Field())
	}
	sort.Strings(names)
	return &validationError{
		msg:    "invalid fields: " + strings.Join(names, ", "),
		fields: fields,
	}
}

// flexBool accepts a JSON boolean or the strings "true" and "false".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("expected a boolean")
	}
	switch s {
	case "true":
		*b = true
	case "false":
		*b = false
	default:
		return fmt.Errorf("expected a boolean, got %q", s)
	}
	return nil
}

type planRequest struct {
	Name        *string     `json:"name" validate:"required"`
	Description *string     `json:"description" validate:"required"`
	StartDate   *timex.Date `json:"start_date" validate:"required"`
	EndDate     *timex.Date `json:"end_date" validate:"required"`
	Status      *string     `json:"status" validate:"required"`
}

func (p *planRequest) input() services.PlanInput {
	return services.PlanInput{
		Name:        *p.Name,
		Description: *p.Description,
		StartDate:   p.StartDate.Time,
		EndDate:     p.EndDate.Time,
		Status:      *p.Status,
	}
}

type statusRequest struct {
	Status *string `json:"status" validate:"required"`
}

type deletedRequest struct {
	Deleted *flexBool `json:"deleted" validate:"required"`
}

type noteRequest struct {
	Name       *string `json:"name" validate:"required"`
	Details    *string `json:"details" validate:"required"`
	Importance *string `json:"importance" validate:"required"`
}

func (n *noteRequest) input() services.NoteInput {
	return services.NoteInput{
		Name:       *n.Name,
		Details:    *n.Details,
		Importance: *n.Importance,
	}
}

type linkRequest struct {
	Link *string `json:"link" validate:"required,url"`
}
