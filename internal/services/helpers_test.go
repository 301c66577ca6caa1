package services

import (
	"testing"

	"github.com/yashodhanketkar/citenote/data"
	"github.com/yashodhanketkar/citenote/internal/security"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store        *store.Store
	manuscripts  *ResourceService
	papers       *ResourceService
	associations *AssociationService
	citations    *CitationService
	auth         *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := testutil.NewStore(t)
	log := zap.NewNop()
	entryTypes, err := ParseEntryTypes(data.EntryTypes)
	if err != nil {
		t.Fatalf("Failed to load entry types: %v", err)
	}

	return &fixture{
		store:        s,
		manuscripts:  NewManuscriptService(s, log),
		papers:       NewPaperService(s, log),
		associations: NewAssociationService(s, log),
		citations:    NewCitationService(s, log, entryTypes),
		auth: NewAuthService(s,
			security.NewBcryptHasher("pepper", bcrypt.MinCost),
			NewRoleValidator([]string{"guest", "editor"}),
			log),
	}
}
