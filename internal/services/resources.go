// resources.go
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
	"context"
	"strconv"

	"github.com/yashodhanketkar/citenote/internal/models"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResourcePolicy is the update policy shared by manuscripts and papers.
func ResourcePolicy(kind types.ResourceKind) UpdatePolicy {
	return UpdatePolicy{
		Kind:              kind,
		Identifier:        "id",
		IdentifierMutable: true,
		ReplaceRequired:   []string{"name", "abstract"},
		Fields:            []string{"id", "name", "abstract"},
	}
}

// ResourceList is the listing payload.
type ResourceList struct {
	Count   int               `json:"count"`
	Results []models.Resource `json:"results"`
}

// ResourceService manages manuscripts or papers, which share one shape.
type ResourceService struct {
	kind   types.ResourceKind
	table  string
	store  *store.Store
	log    *zap.Logger
	policy UpdatePolicy

	// rekey moves dependent rows when a record's id changes.
	rekey func(tx *gorm.DB, from, to uint) error
	// release removes dependent rows before a record is deleted.
	release func(tx *gorm.DB, id uint) error
}

// NewManuscriptService manages manuscripts and their paper links.
func NewManuscriptService(s *store.Store, log *zap.Logger) *ResourceService {
	return &ResourceService{
		kind:   types.Manuscript,
		table:  models.Manuscript{}.TableName(),
		store:  s,
		log:    log.With(zap.String("kind", string(types.Manuscript))),
		policy: ResourcePolicy(types.Manuscript),
		rekey: func(tx *gorm.DB, from, to uint) error {
			return store.Updates[models.ManuscriptPaper](tx.Where("manuscript_id = ?", from),
				map[string]interface{}{"manuscript_id": to})
		},
		release: func(tx *gorm.DB, id uint) error {
			return tx.Where("manuscript_id = ?", id).Delete(&models.ManuscriptPaper{}).Error
		},
	}
}

// NewPaperService manages papers, their manuscript links and their citation.
func NewPaperService(s *store.Store, log *zap.Logger) *ResourceService {
	return &ResourceService{
		kind:   types.Paper,
		table:  models.Paper{}.TableName(),
		store:  s,
		log:    log.With(zap.String("kind", string(types.Paper))),
		policy: ResourcePolicy(types.Paper),
		rekey: func(tx *gorm.DB, from, to uint) error {
			moved := map[string]interface{}{"paper_id": to}
			if err := store.Updates[models.ManuscriptPaper](tx.Where("paper_id = ?", from), moved); err != nil {
				return err
			}
			return store.Updates[models.Citation](tx.Where("paper_id = ?", from), moved)
		},
		release: func(tx *gorm.DB, id uint) error {
			if err := tx.Where("paper_id = ?", id).Delete(&models.ManuscriptPaper{}).Error; err != nil {
				return err
			}
			return tx.Where("paper_id = ?", id).Delete(&models.Citation{}).Error
		},
	}
}

// Kind returns the resource kind served.
func (s *ResourceService) Kind() types.ResourceKind {
	return s.kind
}

func (s *ResourceService) find(tx *gorm.DB, name string) (*models.Resource, error) {
	return store.FindByField[models.Resource](tx.Table(s.table), "name", name)
}

// Get returns the record with the given name.
func (s *ResourceService) Get(ctx context.Context, name string) (*models.Resource, error) {
	var rec *models.Resource
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		rec, err = s.find(db, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, types.NotFound(s.kind)
	}
	return rec, nil
}

// List returns every record. An empty table is reported as not found.
func (s *ResourceService) List(ctx context.Context) (*ResourceList, error) {
	var recs []models.Resource
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		recs, err = store.ListAll[models.Resource](db.Table(s.table))
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, types.NotFound(s.kind)
	}
	return &ResourceList{Count: len(recs), Results: recs}, nil
}

// Create inserts a record. The name must be unique.
func (s *ResourceService) Create(ctx context.Context, name, abstract string) error {
	if name == "" {
		return types.Validation(s.kind, "%s name is required", s.kind)
	}

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := s.find(tx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return types.AlreadyExists(s.kind)
		}
		return store.Create(tx.Table(s.table), &models.Resource{Name: name, Abstract: abstract})
	})
	if store.IsDuplicate(err) {
		return types.AlreadyExists(s.kind)
	}
	if err == nil {
		s.log.Info("record created", zap.String("name", name))
	}
	return err
}

// Update applies supplied fields to the named record under the update policy.
// It reports false when the policy skipped the update.
func (s *ResourceService) Update(ctx context.Context, name string, intent Intent, supplied map[string]string) (bool, error) {
	if name == "" {
		return false, types.Validation(s.kind, "%s name is required", s.kind)
	}

	proceed, err := s.policy.Decide(s.log, intent, supplied)
	if err != nil || !proceed {
		return false, err
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		rec, err := s.find(store.Lock(tx), name)
		if err != nil {
			return err
		}
		if rec == nil {
			return types.NotFound(s.kind)
		}

		current := map[string]string{
			"id":       strconv.FormatUint(uint64(rec.ID), 10),
			"name":     rec.Name,
			"abstract": rec.Abstract,
		}
		changes := map[string]interface{}{}
		for _, field := range s.policy.Fields {
			value, ok := supplied[field]
			if !ok {
				continue
			}
			next, err := s.policy.Change(field, current[field], value)
			if err != nil {
				return err
			}
			s.log.Info("updating field",
				zap.String("name", name),
				zap.String("intent", intent.String()),
				zap.String("field", field),
				zap.String("from", current[field]),
				zap.String("to", next),
			)
			changes[field] = next
		}

		if raw, ok := changes["id"]; ok {
			id, _ := strconv.ParseUint(raw.(string), 10, 64)
			changes["id"] = uint(id)
		}
		if err := store.Updates[models.Resource](tx.Table(s.table).Where("id = ?", rec.ID), changes); err != nil {
			return err
		}
		if to, ok := changes["id"]; ok {
			return s.rekey(tx, rec.ID, to.(uint))
		}
		return nil
	})
	if store.IsDuplicate(err) {
		return false, types.AlreadyExists(s.kind)
	}
	return err == nil, err
}

// Delete removes the named record and everything that depends on it.
func (s *ResourceService) Delete(ctx context.Context, name string) error {
	if name == "" {
		return types.Validation(s.kind, "%s name is required", s.kind)
	}

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		rec, err := s.find(store.Lock(tx), name)
		if err != nil {
			return err
		}
		if rec == nil {
			return types.NotFound(s.kind)
		}
		if err := s.release(tx, rec.ID); err != nil {
			return err
		}
		return tx.Table(s.table).Where("id = ?", rec.ID).Delete(&models.Resource{}).Error
	})
	if err == nil {
		s.log.Info("record deleted", zap.String("name", name))
	}
	return err
}
