// routes.go
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
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/internal/middleware"
	"github.com/yashodhanketkar/citenote/internal/utils"
)

// Handlers groups every route handler of the service
type Handlers struct {
	Home         *HomeHandler
	Users        *UserHandler
	Manuscripts  *ResourceHandler
	Papers       *ResourceHandler
	Associations *AssociationHandler
	Citations    *CitationHandler
}

// Register mounts the service routes on router
func Register(router fiber.Router, h Handlers) {
	router.Get("/", h.Home.Home)
	router.Get("/about", h.Home.About)
	router.Get("/health", h.Home.Health)

	users := router.Group("/users")
	users.Get("/", middleware.AuthAdmin(), h.Users.List)
	users.Get("/about", h.Users.About)
	users.Get("/get/:username", middleware.AuthUser(), h.Users.Get)
	users.Patch("/:username/role", h.Users.UpdateRole)
	for path, handler := range map[string]fiber.Handler{
		"/login":    h.Users.Login,
		"/register": h.Users.Register,
		"/logout":   h.Users.Logout,
		"/delete":   h.Users.Delete,
	} {
		users.Get(path, handler)
		users.Post(path, handler)
	}

	resources(router.Group("/manuscripts"), h.Manuscripts)
	resources(router.Group("/papers"), h.Papers)

	links := router.Group("/manuscripts/:manuscript_id/add_paper")
	links.Get("/", h.Associations.List)
	links.Post("/", h.Associations.Add)
	links.Patch("/", h.Associations.Add)
	links.Delete("/", h.Associations.Remove)

	citation := router.Group("/papers/:paper_id/citation")
	citation.Get("/", h.Citations.Get)
	citation.Post("/", h.Citations.Post)
	citation.Patch("/", h.Citations.Update)
	citation.Put("/", h.Citations.Update)
	citation.Delete("/", h.Citations.Delete)
}

func resources(group fiber.Router, h *ResourceHandler) {
	group.Get("/about", h.About)
	group.Get("/", h.Get)
	group.Post("/", h.Post)
	group.Patch("/", h.Update)
	group.Put("/", h.Update)
	group.Delete("/", h.Delete)
}

// NotFound answers requests no route matched
func NotFound(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}

// ErrorHandler renders errors that escape the handlers, such as
// middleware rejections and panics recovered by fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	switch code {
	case fiber.StatusForbidden:
		errorType = "auth"
	case fiber.StatusServiceUnavailable:
		errorType = "unavailable"
	}

	return utils.ErrorResponse(c, message, code, errorType)
}
