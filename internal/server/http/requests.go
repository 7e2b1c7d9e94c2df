package http

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)
	strongPassword  = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]+$`)

	usernameRules = []validation.Rule{
		validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		validation.Match(usernamePattern).Error("username may contain only letters, digits, underscore and dot"),
	}
)

// isStrongPassword requires upper and lower case letters, a digit and one of
// @$!%*?&, drawn only from those classes.
func isStrongPassword(value any) error {
	s, _ := value.(*string)
	if s == nil {
		if v, ok := value.(string); ok {
			s = &v
		} else {
			return nil
		}
	}
	p := *s
	if !strongPassword.MatchString(p) ||
		!strings.ContainsAny(p, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") ||
		!strings.ContainsAny(p, "abcdefghijklmnopqrstuvwxyz") ||
		!strings.ContainsAny(p, "0123456789") ||
		!strings.ContainsAny(p, "@$!%*?&") {
		return errors.New("password must contain upper and lower case letters, digits and special characters")
	}
	return nil
}

// stringList accepts a JSON array of strings, a string holding such an array
// (as multipart clients send it), or a single bare string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*l = parseStringList(s)
	return nil
}

func parseStringList(s string) stringList {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			return arr
		}
	}
	return stringList{s}
}

type loginRequest struct {
	Email      string `json:"email"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *loginRequest) identifier() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Email
}

func (r loginRequest) Validate() error {
	id := r.identifier()
	return validation.Errors{
		"email":    validation.Validate(id, validation.Required.Error("email or identifier is required")),
		"password": validation.Validate(r.Password, validation.Required.Error("password is required")),
	}.Filter()
}

type profileRequest struct {
	Username        *string `json:"username"`
	Email           *string `json:"email"`
	NewPassword     *string `json:"newPassword"`
	CurrentPassword string  `json:"currentPassword"`
}

func (r *profileRequest) normalize() {
	r.Username = nilIfEmpty(r.Username)
	r.Email = nilIfEmpty(r.Email)
	r.NewPassword = nilIfEmpty(r.NewPassword)
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (r profileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, usernameRules...),
		validation.Field(&r.Email, is.Email.Error("invalid email format")),
		validation.Field(&r.NewPassword,
			validation.Length(8, 0).Error("new password must be at least 8 characters"),
			validation.By(isStrongPassword),
		),
	)
}

type createAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r createAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, append([]validation.Rule{validation.Required.Error("username is required")}, usernameRules...)...),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.Email.Error("invalid email format")),
		validation.Field(&r.Password, validation.Required.Error("password is required"),
			validation.Length(6, 50).Error("password must be between 6 and 50 characters")),
	)
}

type updateAdminRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// normalize treats empty strings as absent.
func (r *updateAdminRequest) normalize() {
	r.Username = nilIfEmpty(r.Username)
	r.Email = nilIfEmpty(r.Email)
}

func (r updateAdminRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, usernameRules...),
		validation.Field(&r.Email, is.Email.Error("invalid email format")),
	)
}

type productRequest struct {
	Name           string     `json:"name"`
	Price          *float64   `json:"price"`
	Stock          *int       `json:"stock"`
	ImagesToAdd    stringList `json:"imagesToAdd"`
	ImagesToRemove stringList `json:"imagesToRemove"`
}

func (r productRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"),
			validation.Length(3, 100).Error("name must be between 3 and 100 characters")),
		validation.Field(&r.Price, validation.NotNil.Error("price is required"),
			validation.Min(0.0).Error("price must be a positive number")),
		validation.Field(&r.Stock, validation.Min(0).Error("stock must not be negative")),
	)
}

type instrumentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (r instrumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"),
			validation.Length(1, 100).Error("name must be at most 100 characters")),
	)
}

type professorRequest struct {
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	Instrument string `json:"instrument"`
	Image      string `json:"image"`
}

func (r professorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required"),
			validation.Length(1, 100).Error("name must be at most 100 characters")),
	)
}
