// update_policy.go
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
	"strconv"
	"strings"

	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap"
)

// Intent distinguishes a partial update from a full replacement.
type Intent int

const (
	PartialUpdate Intent = iota // PATCH
	FullReplace                 // PUT
)

func (i Intent) String() string {
	if i == FullReplace {
		return "replace"
	}
	return "update"
}

// IntentFor maps an HTTP method to an update intent.
func IntentFor(method string) Intent {
	if strings.EqualFold(method, "PUT") {
		return FullReplace
	}
	return PartialUpdate
}

// UpdatePolicy decides whether an update runs and which field changes count.
type UpdatePolicy struct {
	Kind              types.ResourceKind
	Identifier        string
	IdentifierMutable bool
	ReplaceRequired   []string
	Fields            []string
}

// Decide reports whether an update with the supplied fields should proceed.
// A false result with a nil error is a no-op; it never touches the store.
func (p UpdatePolicy) Decide(log *zap.Logger, intent Intent, supplied map[string]string) (bool, error) {
	if _, ok := supplied[p.Identifier]; ok {
		if intent == FullReplace {
			return false, types.Validation(p.Kind, "%s %s cannot be replaced", p.Kind, p.Identifier)
		}
		if !p.IdentifierMutable {
			return false, types.Validation(p.Kind, "%s %s cannot be changed", p.Kind, p.Identifier)
		}
	}

	if intent == FullReplace {
		for _, field := range p.ReplaceRequired {
			if supplied[field] == "" {
				log.Info("missing data for replace", zap.String("kind", string(p.Kind)), zap.String("field", field))
				return false, nil
			}
		}
	}

	for _, field := range p.Fields {
		if _, ok := supplied[field]; ok {
			return true, nil
		}
	}
	log.Info("no input was provided for update", zap.String("kind", string(p.Kind)))
	return false, nil
}

// Normalize converts a raw value to the canonical form of its field.
func (p UpdatePolicy) Normalize(field, value string) (string, error) {
	if field != p.Identifier {
		return value, nil
	}
	id, err := types.ParseID(p.Kind, value)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(id), 10), nil
}

// Change validates a field transition. An unchanged value aborts the update.
func (p UpdatePolicy) Change(field, current, next string) (string, error) {
	next, err := p.Normalize(field, next)
	if err != nil {
		return "", err
	}
	if current == next {
		return "", types.NoEffectiveChange(p.Kind, field)
	}
	return next, nil
}
