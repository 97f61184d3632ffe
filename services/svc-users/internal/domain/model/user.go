package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxEmailLength     = 254
	maxGroupNameLength = 100
)

type UserID struct {
	uuid.UUID
}

func NewUserID() UserID {
	return UserID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("%w %q: %v", ErrInvalidUserID, s, err)
	}

	return UserID{UUID: id}, nil
}

func (u UserID) String() string {
	return u.UUID.String()
}

func (u UserID) IsZero() bool {
	return u.UUID == uuid.Nil
}

type GroupID struct {
	uuid.UUID
}

func NewGroupID() GroupID {
	return GroupID{UUID: uuid.Must(uuid.NewV7())}
}

func ParseGroupID(s string) (GroupID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return GroupID{}, fmt.Errorf("%w %q: %v", ErrInvalidGroupID, s, err)
	}

	return GroupID{UUID: id}, nil
}

func (g GroupID) String() string {
	return g.UUID.String()
}

func (g GroupID) IsZero() bool {
	return g.UUID == uuid.Nil
}

type Group struct {
	ID   GroupID
	Name string
}

func NewGroup(name string) *Group {
	return &Group{
		ID:   NewGroupID(),
		Name: name,
	}
}

// User is a registered account. Group is nil when the user belongs to no group
// or when the group relation was not loaded.
type User struct {
	ID        UserID
	Email     string
	Group     *Group
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewUser(email string, group *Group) *User {
	now := time.Now().UTC()

	return &User{
		ID:        NewUserID(),
		Email:     email,
		Group:     group,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) Update(email string, group *Group) {
	u.Email = email
	u.Group = group
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) GroupID() (GroupID, bool) {
	if u.Group == nil {
		return GroupID{}, false
	}

	return u.Group.ID, true
}

// UserInput carries the raw fields of a create or update request.
type UserInput struct {
	Email   string
	GroupID string
}

// Validate checks the input and returns the normalized email and optional group.
func (in UserInput) Validate() (string, *GroupID, error) {
	errs := NewValidationErrors()

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs.Add("email", "email is required", ValidationCodeRequired)
	case utf8.RuneCountInString(email) > maxEmailLength:
		errs.Add("email", "email must not exceed 254 characters", ValidationCodeTooLong)
	case !isEmail(email):
		errs.Add("email", "email must be a valid address", ValidationCodeInvalidMail)
	}

	var groupID *GroupID

	if raw := strings.TrimSpace(in.GroupID); raw != "" {
		id, err := ParseGroupID(raw)
		if err != nil {
			errs.Add("groupId", "groupId must be a UUID", ValidationCodeInvalidUUID)
		} else {
			groupID = &id
		}
	}

	if err := errs.OrNil(); err != nil {
		return "", nil, err
	}

	return strings.ToLower(email), groupID, nil
}

// ValidateGroupName returns the trimmed name or a validation error.
func ValidateGroupName(name string) (string, error) {
	errs := NewValidationErrors()

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs.Add("name", "name is required", ValidationCodeRequired)
	case utf8.RuneCountInString(name) > maxGroupNameLength:
		errs.Add("name", "name must not exceed 100 characters", ValidationCodeTooLong)
	}

	if err := errs.OrNil(); err != nil {
		return "", err
	}

	return name, nil
}

// isEmail accepts a bare address only, rejecting display-name forms.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}

	return addr.Address == s
}
