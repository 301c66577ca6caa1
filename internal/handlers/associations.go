// associations.go
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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/types"
)

// AssociationHandler serves the papers linked to a manuscript
type AssociationHandler struct {
	Service *services.AssociationService
	Ops     *services.Wrapper
}

type paperRef struct {
	PaperID types.FlexUint64 `json:"paper_id" form:"paper_id" query:"paper_id"`
}

// paperID reads paper_id from a JSON or form body, or the query string.
func paperID(c *fiber.Ctx) (uint, error) {
	var ref paperRef
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&ref); err != nil {
			return 0, types.Validation(types.Paper, "invalid paper_id: %v", err)
		}
	}
	if ref.PaperID == 0 {
		if err := c.QueryParser(&ref); err != nil {
			return 0, types.Validation(types.Paper, "invalid paper_id: %v", err)
		}
	}
	if ref.PaperID == 0 {
		return 0, types.Validation(types.Paper, "paper_id is required")
	}
	return ref.PaperID.ID(), nil
}

// List returns the papers of a manuscript
// @Summary List a manuscript's papers
// @Tags Associations
// @Produce json
// @Param manuscript_id path integer true "Manuscript ID"
// @Success 200 {object} services.PaperList
// @Failure 500 "Manuscript not found"
// @Router /manuscripts/{manuscript_id}/add_paper [get]
func (h *AssociationHandler) List(c *fiber.Ctx) error {
	resp := h.Ops.Run("manuscript.papers", func() (services.Outcome, error) {
		id, err := types.ParseID(types.Manuscript, c.Params("manuscript_id"))
		if err != nil {
			return services.Outcome{}, err
		}
		list, err := h.Service.ListPapers(c.UserContext(), id)
		return services.Outcome{Body: list}, err
	})
	return respond(c, resp)
}

// Add links a paper to a manuscript
// @Summary Add a paper to a manuscript
// @Tags Associations
// @Accept json
// @Accept x-www-form-urlencoded
// @Param manuscript_id path integer true "Manuscript ID"
// @Param paper_id formData integer true "Paper ID, as a number or a string"
// @Success 201
// @Failure 500 "Manuscript or paper not found, or already linked"
// @Router /manuscripts/{manuscript_id}/add_paper [post]
// @Router /manuscripts/{manuscript_id}/add_paper [patch]
func (h *AssociationHandler) Add(c *fiber.Ctx) error {
	resp := h.Ops.Run("manuscript.add_paper", func() (services.Outcome, error) {
		mID, err := types.ParseID(types.Manuscript, c.Params("manuscript_id"))
		if err != nil {
			return services.Outcome{}, err
		}
		pID, err := paperID(c)
		if err != nil {
			return services.Outcome{}, err
		}
		return services.Outcome{Effect: services.Created}, h.Service.AddPaper(c.UserContext(), mID, pID)
	})
	return respond(c, resp)
}

// Remove unlinks a paper from a manuscript
// @Summary Remove a paper from a manuscript
// @Tags Associations
// @Param manuscript_id path integer true "Manuscript ID"
// @Param paper_id query integer true "Paper ID"
// @Success 200
// @Failure 500 "Manuscript, paper or link not found"
// @Router /manuscripts/{manuscript_id}/add_paper [delete]
func (h *AssociationHandler) Remove(c *fiber.Ctx) error {
	resp := h.Ops.Run("manuscript.remove_paper", func() (services.Outcome, error) {
		mID, err := types.ParseID(types.Manuscript, c.Params("manuscript_id"))
		if err != nil {
			return services.Outcome{}, err
		}
		pID, err := paperID(c)
		if err != nil {
			return services.Outcome{}, err
		}
		return services.Outcome{Effect: services.Removed}, h.Service.RemovePaper(c.UserContext(), mID, pID)
	})
	return respond(c, resp)
}
