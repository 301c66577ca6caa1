// error.go
//
// Citenote: manuscripts, papers and citations with session authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of citenote.
// citenote is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// citenote is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with citenote.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package types

import (
	"fmt"

	"go.uber.org/zap"
)

// ErrorKind enumerates the expected failures a record or auth operation can end with.
type ErrorKind int

const (
	KindUsernameNotFound ErrorKind = iota + 1
	KindPasswordMismatch
	KindInvalidRole
	KindAlreadyAuthenticated
	KindNotAuthenticated
	KindResourceAlreadyExists
	KindResourceNotFound
	KindNoEffectiveChange
	KindValidationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsernameNotFound:
		return "UsernameNotFound"
	case KindPasswordMismatch:
		return "PasswordMismatch"
	case KindInvalidRole:
		return "InvalidRole"
	case KindAlreadyAuthenticated:
		return "AlreadyAuthenticated"
	case KindNotAuthenticated:
		return "NotAuthenticated"
	case KindResourceAlreadyExists:
		return "ResourceAlreadyExists"
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindNoEffectiveChange:
		return "NoEffectiveChange"
	case KindValidationFailure:
		return "ValidationFailure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ResourceKind names the record a resource error refers to.
type ResourceKind string

const (
	Manuscript ResourceKind = "manuscript"
	Paper      ResourceKind = "paper"
	Citation   ResourceKind = "citation"
	User       ResourceKind = "user"
)

// Title returns the capitalized resource name used in codes and messages.
func (r ResourceKind) Title() string {
	if r == "" {
		return "Resource"
	}
	return string(r[0]-('a'-'A')) + string(r[1:])
}

// CustomError is a classified, expected failure.
// Resource is empty for the auth kinds and for sentinels matching every variant.
type CustomError struct {
	Kind     ErrorKind    `json:"-"`
	Resource ResourceKind `json:"-"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
}

func (e *CustomError) Error() string {
	return e.Message + " (" + e.Code + ")"
}

// Is matches on kind, and on resource when the target names one.
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Resource == "" || t.Resource == e.Resource)
}

// Render returns the operator warning line for the error.
func (e *CustomError) Render() string {
	return e.Message + "\n" + e.Code
}

// Warn logs the rendered error at warn level.
func (e *CustomError) Warn(log *zap.Logger) {
	log.Warn(e.Render(), zap.String("code", e.Code), zap.Stringer("kind", e.Kind))
}

// Sentinels for errors.Is. The resource variants match any resource.
var (
	ErrUsernameNotFound      = &CustomError{Kind: KindUsernameNotFound}
	ErrPasswordMismatch      = &CustomError{Kind: KindPasswordMismatch}
	ErrInvalidRole           = &CustomError{Kind: KindInvalidRole}
	ErrAlreadyAuthenticated  = &CustomError{Kind: KindAlreadyAuthenticated}
	ErrNotAuthenticated      = &CustomError{Kind: KindNotAuthenticated}
	ErrResourceAlreadyExists = &CustomError{Kind: KindResourceAlreadyExists}
	ErrResourceNotFound      = &CustomError{Kind: KindResourceNotFound}
	ErrNoEffectiveChange     = &CustomError{Kind: KindNoEffectiveChange}
	ErrValidationFailure     = &CustomError{Kind: KindValidationFailure}
)

func UsernameNotFound() *CustomError {
	return &CustomError{Kind: KindUsernameNotFound, Resource: User, Code: "UsernameError", Message: "Invalid Credentials: Wrong username"}
}

func PasswordMismatch() *CustomError {
	return &CustomError{Kind: KindPasswordMismatch, Resource: User, Code: "PasswordError", Message: "Invalid Credentials: Wrong password"}
}

func InvalidRole() *CustomError {
	return &CustomError{Kind: KindInvalidRole, Resource: User, Code: "RoleError", Message: "Invalid user role"}
}

func AlreadyAuthenticated() *CustomError {
	return &CustomError{Kind: KindAlreadyAuthenticated, Code: "UsernameInSession", Message: "Username is present in session"}
}

func NotAuthenticated() *CustomError {
	return &CustomError{Kind: KindNotAuthenticated, Code: "UsernameNotInSession", Message: "Username not present in session"}
}

// AlreadyExists reports a uniqueness conflict on the given resource.
func AlreadyExists(r ResourceKind) *CustomError {
	return &CustomError{
		Kind:     KindResourceAlreadyExists,
		Resource: r,
		Code:     r.Title() + "FoundError",
		Message:  r.Title() + " already exists",
	}
}

// NotFound reports a missing resource.
func NotFound(r ResourceKind) *CustomError {
	return &CustomError{
		Kind:     KindResourceNotFound,
		Resource: r,
		Code:     r.Title() + "NotFoundError",
		Message:  r.Title() + " not found",
	}
}

// NoEffectiveChange reports an update whose new value equals the stored one.
func NoEffectiveChange(r ResourceKind, field string) *CustomError {
	return &CustomError{
		Kind:     KindNoEffectiveChange,
		Resource: r,
		Code:     "UnchangedValueError",
		Message:  fmt.Sprintf("%s %s is unchanged", r.Title(), field),
	}
}

// Validation reports a missing or malformed input.
func Validation(r ResourceKind, format string, args ...interface{}) *CustomError {
	return &CustomError{
		Kind:     KindValidationFailure,
		Resource: r,
		Code:     "ValidationError",
		Message:  fmt.Sprintf(format, args...),
	}
}
