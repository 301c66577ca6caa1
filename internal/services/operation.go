// operation.go
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

package services

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap"
)

// Effect describes what a successful operation did.
type Effect int

const (
	Fetched   Effect = iota // payload returned
	Created                 // record inserted
	Modified                // record updated
	Removed                 // record deleted
	Unchanged               // update skipped by the update policy
)

func (e Effect) status() int {
	switch e {
	case Created:
		return http.StatusCreated
	case Unchanged:
		return http.StatusNoContent
	}
	return http.StatusOK
}

// Outcome is the successful result of an operation.
type Outcome struct {
	Body   interface{}
	Effect Effect
}

// Response is what the dispatcher sends back. A nil Body means an empty body.
type Response struct {
	Body   interface{}
	Status int
}

// Operation is a unit of work run by the Wrapper.
type Operation func() (Outcome, error)

// StatusMode selects the HTTP status for classified errors.
type StatusMode string

const (
	// StatusLegacy reports every classified error as 500.
	StatusLegacy StatusMode = "legacy"
	// StatusREST distinguishes missing, conflicting and unauthorized requests.
	StatusREST StatusMode = "rest"
)

func (m StatusMode) statusFor(kind types.ErrorKind) int {
	if m != StatusREST {
		return http.StatusInternalServerError
	}
	switch kind {
	case types.KindResourceNotFound, types.KindUsernameNotFound:
		return http.StatusNotFound
	case types.KindPasswordMismatch, types.KindNotAuthenticated:
		return http.StatusUnauthorized
	case types.KindResourceAlreadyExists, types.KindValidationFailure, types.KindNoEffectiveChange,
		types.KindInvalidRole, types.KindAlreadyAuthenticated:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Wrapper turns operation results into responses.
type Wrapper struct {
	log  *zap.Logger
	mode StatusMode
}

func NewWrapper(log *zap.Logger, mode StatusMode) *Wrapper {
	if mode == "" {
		mode = StatusLegacy
	}
	return &Wrapper{log: log, mode: mode}
}

// Run executes op and maps its result to a status.
func (w *Wrapper) Run(name string, op Operation) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("operation panicked", zap.String("operation", name), zap.Any("panic", r))
			resp = Response{Status: http.StatusInternalServerError}
		}
		observe(name, resp.Status)
	}()

	out, err := op()
	if err != nil {
		return w.failure(name, err)
	}
	return Response{Body: out.Body, Status: out.Effect.status()}
}

// Check executes an auth operation and reports only whether it succeeded.
func (w *Wrapper) Check(name string, op func() error) (resp Response) {
	failed := Response{
		Body:   map[string]string{"check": name + " unsuccessful"},
		Status: http.StatusBadRequest,
	}
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("operation panicked", zap.String("operation", name), zap.Any("panic", r))
			resp = failed
		}
		observe(name, resp.Status)
	}()

	if err := op(); err != nil {
		w.report(name, err)
		return failed
	}
	return Response{
		Body:   map[string]string{"check": name + " successful"},
		Status: http.StatusOK,
	}
}

func (w *Wrapper) failure(name string, err error) Response {
	ce := w.report(name, err)
	if ce == nil {
		return Response{Status: http.StatusInternalServerError}
	}

	status := w.mode.statusFor(ce.Kind)
	if w.mode == StatusREST {
		return Response{Body: ce, Status: status}
	}
	return Response{Status: status}
}

// report logs err and returns it as a classified error, or nil when unanticipated.
func (w *Wrapper) report(name string, err error) *types.CustomError {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		ce.Warn(w.log.With(zap.String("operation", name)))
		return ce
	}
	w.log.Error(fmt.Sprintf("%s failed", name), zap.String("operation", name), zap.Error(err))
	return nil
}
