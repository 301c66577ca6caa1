// auth_service.go
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
	"time"

	"github.com/yashodhanketkar/citenote/internal/models"
	"github.com/yashodhanketkar/citenote/internal/security"
	"github.com/yashodhanketkar/citenote/internal/session"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminUsername is the account created by the bootstrap command.
const AdminUsername = "admin"

// AuthService moves sessions between anonymous and authenticated.
type AuthService struct {
	store  *store.Store
	hasher security.Hasher
	roles  *RoleValidator
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(s *store.Store, hasher security.Hasher, roles *RoleValidator, log *zap.Logger) *AuthService {
	return &AuthService{
		store:  s,
		hasher: hasher,
		roles:  roles,
		log:    log.With(zap.String("kind", string(types.User))),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func findUser(tx *gorm.DB, username string) (*models.User, error) {
	u, err := store.FindByField[models.User](tx, "username", username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, types.UsernameNotFound()
	}
	return u, nil
}

// lockAndVerify loads the user row for update and checks the password.
func (s *AuthService) lockAndVerify(tx *gorm.DB, username, password string) (*models.User, error) {
	u, err := findUser(store.Lock(tx), username)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, u.Password) {
		return nil, types.PasswordMismatch()
	}
	return u, nil
}

func requireCredentials(username, password string) error {
	if username == "" || password == "" {
		return types.Validation(types.User, "username and password are required")
	}
	return nil
}

// Login authenticates the session. The session changes only after the
// last_login update commits.
func (s *AuthService) Login(ctx context.Context, sess *session.Session, username, password string) error {
	if sess.IsAuthenticated() {
		return types.AlreadyAuthenticated()
	}
	if err := requireCredentials(username, password); err != nil {
		return err
	}

	var user *models.User
	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		user, err = s.lockAndVerify(tx, username, password)
		if err != nil {
			return err
		}
		now := s.now()
		user.LastLogin = &now
		return store.Updates[models.User](tx.Where("id = ?", user.ID), map[string]interface{}{"last_login": now})
	})
	if err != nil {
		return err
	}

	sess.Authenticate(user.Username, user.Role)
	s.log.Info("user logged in", zap.String("username", user.Username), zap.String("role", user.Role))
	return nil
}

// Register creates an account. It does not log the caller in.
func (s *AuthService) Register(ctx context.Context, username, password, role string) error {
	// admin is refused whatever the credentials
	role, err := s.roles.Validate(role)
	if err != nil {
		return err
	}
	if err := requireCredentials(username, password); err != nil {
		return err
	}
	return s.create(ctx, username, password, role)
}

// CreateAdmin bootstraps the administrator account, bypassing role validation.
func (s *AuthService) CreateAdmin(ctx context.Context, password string) error {
	if password == "" {
		return types.Validation(types.User, "password is required")
	}
	return s.create(ctx, AdminUsername, password, RoleAdmin)
}

func (s *AuthService) create(ctx context.Context, username, password, role string) error {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *gorm.DB) error {
		existing, err := store.FindByField[models.User](tx, "username", username)
		if err != nil {
			return err
		}
		if existing != nil {
			return types.AlreadyExists(types.User)
		}
		return store.Create(tx, &models.User{
			Username:   username,
			Password:   digest,
			Role:       role,
			DateJoined: s.now(),
		})
	})
	if store.IsDuplicate(err) {
		return types.AlreadyExists(types.User)
	}
	if err == nil {
		s.log.Info("user registered", zap.String("username", username), zap.String("role", role))
	}
	return err
}

// Delete removes an account after checking its password, then clears the
// caller's session whichever account was removed.
func (s *AuthService) Delete(ctx context.Context, sess *session.Session, username, password string) error {
	if err := requireCredentials(username, password); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx *gorm.DB) error {
		user, err := s.lockAndVerify(tx, username, password)
		if err != nil {
			return err
		}
		return store.Delete(tx, user)
	})
	if err != nil {
		return err
	}

	sess.Clear()
	s.log.Info("user deleted", zap.String("username", username))
	return nil
}

// Logout ends an authenticated session.
func (s *AuthService) Logout(sess *session.Session) error {
	username, ok := sess.Username()
	if !ok {
		return types.NotAuthenticated()
	}
	sess.Clear()
	s.log.Info("user logged out", zap.String("username", username))
	return nil
}

// GetByUsername returns an account without its password digest.
func (s *AuthService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		user, err = findUser(db, username)
		return err
	})
	return user, err
}

// AssignableRoles returns the roles open to registration and role updates.
func (s *AuthService) AssignableRoles() []string {
	return s.roles.Allowed()
}

// ListUsers returns every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.store.Read(ctx, func(db *gorm.DB) error {
		var err error
		users, err = store.ListAll[models.User](db)
		return err
	})
	return users, err
}

// UpdateRole changes an account's role after re-checking its password.
func (s *AuthService) UpdateRole(ctx context.Context, username, password, newRole string) error {
	if err := requireCredentials(username, password); err != nil {
		return err
	}
	if newRole == "" {
		return types.Validation(types.User, "new role is required")
	}
	role, err := s.roles.Validate(newRole)
	if err != nil {
		return err
	}

	return s.store.Transaction(ctx, func(tx *gorm.DB) error {
		user, err := s.lockAndVerify(tx, username, password)
		if err != nil {
			return err
		}
		// the admin role belongs to the bootstrap account only
		if user.Role == RoleAdmin {
			return types.InvalidRole()
		}
		if user.Role == role {
			return types.NoEffectiveChange(types.User, "role")
		}
		s.log.Info("updating role", zap.String("username", username), zap.String("from", user.Role), zap.String("to", role))
		return store.Updates[models.User](tx.Where("id = ?", user.ID), map[string]interface{}{"role": role})
	})
}
