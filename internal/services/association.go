// association.go
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

	"github.com/yashodhanketkar/citenote/internal/models"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// PaperList is the payload of a manuscript's paper listing.
type PaperList struct {
	Count   int            `json:"count"`
	Results []models.Paper `json:"results"`
}

// AssociationService links manuscripts to the papers they cite.
type AssociationService struct {
	store *store.Store
	log   *zap.Logger
}

func NewAssociationService(s *store.Store, log *zap.Logger) *AssociationService {
	return &AssociationService{store: s, log: log}
}

// resolve checks that both ends of a link exist, manuscript first.
func resolve(tx *gorm.DB, manuscriptID, paperID uint) error {
	m, err := store.FindByID[models.Manuscript](tx, manuscriptID)
	if err != nil {
		return err
	}
	if m == nil {
		return types.NotFound(types.Manuscript)
	}
	p, err := store.FindByID[models.Paper](tx, paperID)
	if err != nil {
		return err
	}
	if p == nil {
		return types.NotFound(types.Paper)
	}
	return nil
}

func findLink(tx *gorm.DB, manuscriptID, paperID uint) (*models.ManuscriptPaper, error) {
	return store.FindByField[models.ManuscriptPaper](
		tx.Where("manuscript_id = ?", manuscriptID), "paper_id", paperID)
}

// ListPapers returns the papers linked to a manuscript, ordered by id.
func (s *AssociationService) ListPapers(ctx context.Context, manuscriptID uint) (*PaperList, error) {
	papers := []models.Paper{}
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		m, err := store.FindByID[models.Manuscript](db, manuscriptID)
		if err != nil {
			return err
		}
		if m == nil {
			return types.NotFound(types.Manuscript)
		}
		return db.Clauses(hints.CommentBefore("select", "list_papers")).
			Joins("JOIN manuscripts_papers ON manuscripts_papers.paper_id = papers.id").
			Where("manuscripts_papers.manuscript_id = ?", manuscriptID).
			Order("papers.id").
			Find(&papers).Error
	})
	if err != nil {
		return nil, err
	}
	return &PaperList{Count: len(papers), Results: papers}, nil
}

// AddPaper links a paper to a manuscript. Linking twice is a conflict.
func (s *AssociationService) AddPaper(ctx context.Context, manuscriptID, paperID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := resolve(tx, manuscriptID, paperID); err != nil {
			return err
		}
		link, err := findLink(tx, manuscriptID, paperID)
		if err != nil {
			return err
		}
		if link != nil {
			return types.AlreadyExists(types.Paper)
		}
		return store.Create(tx.Clauses(hints.CommentBefore("insert", "add_paper")),
			&models.ManuscriptPaper{ManuscriptID: manuscriptID, PaperID: paperID})
	})
	// a concurrent insert of the same pair loses at the primary key
	if store.IsDuplicate(err) {
		return types.AlreadyExists(types.Paper)
	}
	if err == nil {
		s.log.Info("paper added to manuscript", zap.Uint("manuscript_id", manuscriptID), zap.Uint("paper_id", paperID))
	}
	return err
}

// RemovePaper unlinks a paper from a manuscript. An absent link is not found.
func (s *AssociationService) RemovePaper(ctx context.Context, manuscriptID, paperID uint) error {
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		if err := resolve(tx, manuscriptID, paperID); err != nil {
			return err
		}
		res := tx.Clauses(hints.CommentBefore("delete", "remove_paper")).
			Where("manuscript_id = ? AND paper_id = ?", manuscriptID, paperID).
			Delete(&models.ManuscriptPaper{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.NotFound(types.Paper)
		}
		return nil
	})
	if err == nil {
		s.log.Info("paper removed from manuscript", zap.Uint("manuscript_id", manuscriptID), zap.Uint("paper_id", paperID))
	}
	return err
}
