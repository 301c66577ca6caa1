// citations.go
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
	"fmt"

	"github.com/yashodhanketkar/citenote/internal/models"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var citationPolicy = UpdatePolicy{
	Kind:              types.Citation,
	Identifier:        "id",
	IdentifierMutable: false,
	ReplaceRequired:   []string{"name", "type"},
}

// CitationService manages the citation of each paper.
type CitationService struct {
	store     *store.Store
	log       *zap.Logger
	catalogue *EntryTypes
	policy    UpdatePolicy
	// bib holds the bibliographic fields, cleared by a full replace when not supplied
	bib []string
}

func NewCitationService(s *store.Store, log *zap.Logger, entryTypes *EntryTypes) *CitationService {
	bib := entryTypes.Fields()
	policy := citationPolicy
	policy.Fields = append([]string{"name", "type", "abstract"}, bib...)

	return &CitationService{
		store:     s,
		log:       log.With(zap.String("kind", string(types.Citation))),
		catalogue: entryTypes,
		policy:    policy,
		bib:       bib,
	}
}

// Fields returns every field a citation accepts.
func (s *CitationService) Fields() []string {
	return s.policy.Fields
}

// CitationCatalogue describes the citation types and fields a paper's citation accepts.
type CitationCatalogue struct {
	Types   []string `json:"types"`
	Columns []string `json:"columns"`
	Extras  []string `json:"extras"`
}

// Catalogue lists the entry types, and the bibliographic fields split by storage.
func (s *CitationService) Catalogue() CitationCatalogue {
	cat := CitationCatalogue{Types: s.catalogue.Names(), Columns: models.CitationColumns(), Extras: []string{}}
	for _, field := range s.bib {
		if !models.IsCitationColumn(field) {
			cat.Extras = append(cat.Extras, field)
		}
	}
	return cat
}

// validate checks the citation against its entry type.
func (s *CitationService) validate(c *models.Citation) error {
	et, ok := s.catalogue.Lookup(c.Type)
	if !ok {
		return types.Validation(types.Citation, "unknown citation type %q", c.Type)
	}
	for _, field := range et.Required {
		if c.Field(field) == "" {
			return types.Validation(types.Citation, "%s citations require %s", c.Type, field)
		}
	}
	for _, field := range s.bib {
		if c.Field(field) != "" && !s.catalogue.Accepts(c.Type, field) {
			return types.Validation(types.Citation, "%s citations do not take %s", c.Type, field)
		}
	}
	return nil
}

func findCitation(tx *gorm.DB, paperID uint) (*models.Citation, error) {
	return store.FindByField[models.Citation](tx, "paper_id", paperID)
}

// Get returns the citation of a paper.
func (s *CitationService) Get(ctx context.Context, paperID uint) (*models.Citation, error) {
	var c *models.Citation
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		c, err = findCitation(db, paperID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, types.NotFound(types.Citation)
	}
	return c, nil
}

// Create adds the citation of a paper. The name defaults to Paper_<id>.
func (s *CitationService) Create(ctx context.Context, paperID uint, fields map[string]string) error {
	c := &models.Citation{PaperID: paperID}
	for _, field := range s.policy.Fields {
		if v := fields[field]; v != "" {
			c.SetField(field, v)
		}
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Paper_%d", paperID)
	}
	if err := s.validate(c); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		p, err := store.FindByID[models.Paper](tx, paperID)
		if err != nil {
			return err
		}
		if p == nil {
			return types.NotFound(types.Paper)
		}
		existing, err := findCitation(tx, paperID)
		if err != nil {
			return err
		}
		if existing != nil {
			return types.AlreadyExists(types.Citation)
		}
		return store.Create(tx, c)
	})
	if store.IsDuplicate(err) {
		return types.AlreadyExists(types.Citation)
	}
	if err == nil {
		s.log.Info("citation created", zap.Uint("paper_id", paperID), zap.String("name", c.Name))
	}
	return err
}

// Update changes the citation of a paper under the update policy.
// A full replace clears bibliographic fields that were not supplied.
func (s *CitationService) Update(ctx context.Context, paperID uint, intent Intent, supplied map[string]string) (bool, error) {
	proceed, err := s.policy.Decide(s.log, intent, supplied)
	if err != nil || !proceed {
		return false, err
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		c, err := findCitation(store.Lock(tx), paperID)
		if err != nil {
			return err
		}
		if c == nil {
			return types.NotFound(types.Citation)
		}

		for _, field := range s.policy.Fields {
			value, ok := supplied[field]
			if !ok {
				continue
			}
			current := c.Field(field)
			next, err := s.policy.Change(field, current, value)
			if err != nil {
				return err
			}
			s.log.Info("updating field",
				zap.Uint("paper_id", paperID),
				zap.String("intent", intent.String()),
				zap.String("field", field),
				zap.String("from", current),
				zap.String("to", next),
			)
			c.SetField(field, next)
		}
		if intent == FullReplace {
			for _, field := range s.bib {
				if _, ok := supplied[field]; !ok {
					c.SetField(field, "")
				}
			}
		}

		if err := s.validate(c); err != nil {
			return err
		}
		return tx.Save(c).Error
	})
	if store.IsDuplicate(err) {
		return false, types.AlreadyExists(types.Citation)
	}
	return err == nil, err
}

// Delete removes the citation of a paper.
func (s *CitationService) Delete(ctx context.Context, paperID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		c, err := findCitation(store.Lock(tx), paperID)
		if err != nil {
			return err
		}
		if c == nil {
			return types.NotFound(types.Citation)
		}
		return store.Delete(tx, c)
	})
	if err == nil {
		s.log.Info("citation deleted", zap.Uint("paper_id", paperID))
	}
	return err
}
