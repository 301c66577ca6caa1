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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/types"
)

// CitationHandler serves the citation of a paper
type CitationHandler struct {
	Service *services.CitationService
	Ops     *services.Wrapper
}

func (h *CitationHandler) run(c *fiber.Ctx, name string, op func(paperID uint) (services.Outcome, error)) error {
	resp := h.Ops.Run(name, func() (services.Outcome, error) {
		id, err := types.ParseID(types.Paper, c.Params("paper_id"))
		if err != nil {
			return services.Outcome{}, err
		}
		return op(id)
	})
	return respond(c, resp)
}

// Get returns a paper's citation
// @Summary Get a paper's citation
// @Tags Citations
// @Produce json
// @Param paper_id path integer true "Paper ID"
// @Success 200 {object} models.Citation
// @Failure 500 "Citation not found"
// @Router /papers/{paper_id}/citation [get]
func (h *CitationHandler) Get(c *fiber.Ctx) error {
	return h.run(c, "citation.get", func(paperID uint) (services.Outcome, error) {
		citation, err := h.Service.Get(c.UserContext(), paperID)
		return services.Outcome{Body: citation}, err
	})
}

// Post creates a paper's citation from BibTeX fields
// @Summary Create a paper's citation
// @Description Fields depend on the BibTeX entry type; the name defaults to Paper_<paper_id>
// @Tags Citations
// @Accept x-www-form-urlencoded
// @Param paper_id path integer true "Paper ID"
// @Param type formData string true "BibTeX entry type"
// @Param name formData string false "Citation name"
// @Success 201
// @Failure 500 "Paper not found, citation exists or fields invalid"
// @Router /papers/{paper_id}/citation [post]
func (h *CitationHandler) Post(c *fiber.Ctx) error {
	fields := suppliedFields(c, "", h.Service.Fields())
	return h.run(c, "citation.post", func(paperID uint) (services.Outcome, error) {
		return services.Outcome{Effect: services.Created}, h.Service.Create(c.UserContext(), paperID, fields)
	})
}

// Update applies a PATCH or PUT to a paper's citation using updated_<field> values
// @Summary Update a paper's citation
// @Description PUT requires updated_name and updated_type and clears bibliographic fields not supplied
// @Tags Citations
// @Accept x-www-form-urlencoded
// @Param paper_id path integer true "Paper ID"
// @Success 200
// @Success 204 "Nothing to update"
// @Failure 500 "Citation not found, unchanged value or fields invalid"
// @Router /papers/{paper_id}/citation [patch]
// @Router /papers/{paper_id}/citation [put]
func (h *CitationHandler) Update(c *fiber.Ctx) error {
	intent := services.IntentFor(c.Method())
	supplied := suppliedFields(c, "updated_", append([]string{"id"}, h.Service.Fields()...))
	return h.run(c, "citation."+intent.String(), func(paperID uint) (services.Outcome, error) {
		applied, err := h.Service.Update(c.UserContext(), paperID, intent, supplied)
		if !applied {
			return services.Outcome{Effect: services.Unchanged}, err
		}
		return services.Outcome{Effect: services.Modified}, err
	})
}

// Delete removes a paper's citation
// @Summary Delete a paper's citation
// @Tags Citations
// @Param paper_id path integer true "Paper ID"
// @Success 200
// @Failure 500 "Citation not found"
// @Router /papers/{paper_id}/citation [delete]
func (h *CitationHandler) Delete(c *fiber.Ctx) error {
	return h.run(c, "citation.delete", func(paperID uint) (services.Outcome, error) {
		return services.Outcome{Effect: services.Removed}, h.Service.Delete(c.UserContext(), paperID)
	})
}
