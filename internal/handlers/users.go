// users.go
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
	"github.com/yashodhanketkar/citenote/internal/middleware"
	"github.com/yashodhanketkar/citenote/internal/services"
)

// UserHandler serves accounts and sessions
type UserHandler struct {
	Auth *services.AuthService
	Ops  *services.Wrapper
}

// About lists the account routes and the roles open to registration
func (h *UserHandler) About(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"resource": "user",
		"fields":   []string{"username", "password", "role"},
		"roles":    h.Auth.AssignableRoles(),
	})
}

// Login authenticates the caller's session
// @Summary Log in
// @Tags Users
// @Produce json
// @Param username query string true "Username"
// @Param password query string true "Password"
// @Success 200 {object} utils.CheckResponseStruct
// @Failure 400 {object} utils.CheckResponseStruct
// @Router /users/login [get]
// @Router /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	return respond(c, h.Ops.Check("login", func() error {
		return h.Auth.Login(c.UserContext(), sess, field(c, "username"), field(c, "password"))
	}))
}

// Register creates an account without logging in
// @Summary Register
// @Tags Users
// @Produce json
// @Param username query string true "Username"
// @Param password query string true "Password"
// @Param role query string false "Requested role; unknown roles become guest"
// @Success 200 {object} utils.CheckResponseStruct
// @Failure 400 {object} utils.CheckResponseStruct
// @Router /users/register [get]
// @Router /users/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	return respond(c, h.Ops.Check("register", func() error {
		return h.Auth.Register(c.UserContext(), field(c, "username"), field(c, "password"), field(c, "role"))
	}))
}

// Delete removes an account and clears the caller's session
// @Summary Delete an account
// @Tags Users
// @Produce json
// @Param username query string true "Username"
// @Param password query string true "Password"
// @Success 200 {object} utils.CheckResponseStruct
// @Failure 400 {object} utils.CheckResponseStruct
// @Router /users/delete [get]
// @Router /users/delete [post]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	return respond(c, h.Ops.Check("delete", func() error {
		return h.Auth.Delete(c.UserContext(), sess, field(c, "username"), field(c, "password"))
	}))
}

// Logout ends the caller's session
// @Summary Log out
// @Tags Users
// @Produce json
// @Success 200 {object} utils.CheckResponseStruct
// @Failure 400 {object} utils.CheckResponseStruct
// @Router /users/logout [get]
// @Router /users/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.Session(c)
	return respond(c, h.Ops.Check("logout", func() error {
		return h.Auth.Logout(sess)
	}))
}

// Get returns an account by username
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 "User not found"
// @Security CookieAuth
// @Router /users/get/{username} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	resp := h.Ops.Run("user.get", func() (services.Outcome, error) {
		user, err := h.Auth.GetByUsername(c.UserContext(), c.Params("username"))
		return services.Outcome{Body: user}, err
	})
	return respond(c, resp)
}

// List returns every account
// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	resp := h.Ops.Run("user.list", func() (services.Outcome, error) {
		users, err := h.Auth.ListUsers(c.UserContext())
		return services.Outcome{Body: users}, err
	})
	return respond(c, resp)
}

// UpdateRole changes an account's role after re-checking its password
// @Summary Update a user's role
// @Tags Users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username path string true "Username"
// @Param password formData string true "Password"
// @Param new_role formData string true "New role"
// @Success 200 {object} utils.CheckResponseStruct
// @Failure 400 {object} utils.CheckResponseStruct
// @Router /users/{username}/role [patch]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	return respond(c, h.Ops.Check("update role", func() error {
		return h.Auth.UpdateRole(c.UserContext(), c.Params("username"), field(c, "password"), field(c, "new_role"))
	}))
}
