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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/services"
)

// ResourceHandler serves manuscripts or papers
type ResourceHandler struct {
	Service *services.ResourceService
	Ops     *services.Wrapper
	// Details is merged into the about payload
	Details fiber.Map
}

var resourceFields = []string{"id", "name", "abstract"}

func (h *ResourceHandler) kind() string {
	return string(h.Service.Kind())
}

// About describes the resource routes
func (h *ResourceHandler) About(c *fiber.Ctx) error {
	about := fiber.Map{
		"resource": h.kind(),
		"fields":   []string{h.kind() + "_name", h.kind() + "_abstract"},
		"updates":  []string{"updated_id", "updated_name", "updated_abstract"},
	}
	for k, v := range h.Details {
		about[k] = v
	}
	return c.JSON(about)
}

// Get returns one record by name, or all records when no name is given
// @Summary Get manuscripts or papers
// @Description Get a record by name, or list every record as count and results
// @Tags Resources
// @Produce json
// @Param manuscript_name query string false "Record name (paper_name for papers)"
// @Success 200 {object} services.ResourceList
// @Failure 500 "Record not found"
// @Router /manuscripts [get]
// @Router /papers [get]
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	name := field(c, h.kind()+"_name")
	resp := h.Ops.Run(h.kind()+".get", func() (services.Outcome, error) {
		if name == "" {
			list, err := h.Service.List(c.UserContext())
			return services.Outcome{Body: list}, err
		}
		rec, err := h.Service.Get(c.UserContext(), name)
		return services.Outcome{Body: rec}, err
	})
	return respond(c, resp)
}

// Post creates a record
// @Summary Create a manuscript or paper
// @Tags Resources
// @Accept x-www-form-urlencoded
// @Param manuscript_name formData string true "Record name (paper_name for papers)"
// @Param manuscript_abstract formData string false "Abstract (paper_abstract for papers)"
// @Success 201
// @Failure 500 "Record exists or name missing"
// @Router /manuscripts [post]
// @Router /papers [post]
func (h *ResourceHandler) Post(c *fiber.Ctx) error {
	name := field(c, h.kind()+"_name")
	abstract := field(c, h.kind()+"_abstract")
	resp := h.Ops.Run(h.kind()+".post", func() (services.Outcome, error) {
		return services.Outcome{Effect: services.Created}, h.Service.Create(c.UserContext(), name, abstract)
	})
	return respond(c, resp)
}

// Update applies a PATCH (partial) or PUT (full replace) to a record
// @Summary Update a manuscript or paper
// @Description PATCH changes the supplied fields; PUT requires name and abstract and may not change the id
// @Tags Resources
// @Accept x-www-form-urlencoded
// @Param manuscript_name formData string true "Record name (paper_name for papers)"
// @Param updated_id formData integer false "New id (PATCH only)"
// @Param updated_name formData string false "New name"
// @Param updated_abstract formData string false "New abstract"
// @Success 200
// @Success 204 "Nothing to update"
// @Failure 500 "Record not found, unchanged value or conflict"
// @Router /manuscripts [patch]
// @Router /manuscripts [put]
// @Router /papers [patch]
// @Router /papers [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	name := field(c, h.kind()+"_name")
	intent := services.IntentFor(c.Method())
	supplied := suppliedFields(c, "updated_", resourceFields)

	resp := h.Ops.Run(h.kind()+"."+intent.String(), func() (services.Outcome, error) {
		applied, err := h.Service.Update(c.UserContext(), name, intent, supplied)
		if !applied {
			return services.Outcome{Effect: services.Unchanged}, err
		}
		return services.Outcome{Effect: services.Modified}, err
	})
	return respond(c, resp)
}

// Delete removes a record by name
// @Summary Delete a manuscript or paper
// @Tags Resources
// @Param manuscript_name query string true "Record name (paper_name for papers)"
// @Success 200
// @Failure 500 "Record not found"
// @Router /manuscripts [delete]
// @Router /papers [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	name := field(c, h.kind()+"_name")
	resp := h.Ops.Run(h.kind()+".delete", func() (services.Outcome, error) {
		return services.Outcome{Effect: services.Removed}, h.Service.Delete(c.UserContext(), name)
	})
	return respond(c, resp)
}
