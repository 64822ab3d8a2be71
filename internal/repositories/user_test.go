package repositories_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	m "inkfolio/internal/models"
	. "inkfolio/internal/repositories"
	"inkfolio/pkg/test"
	"inkfolio/pkg/test/factory"
)

type SQLUserStoreSuite struct {
	suite.Suite
	ctx   context.Context
	db    *sql.DB
	store *SQLUserStore
}

func (s *SQLUserStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = test.InitTestDB()
	s.store = NewSQLUserStore(s.db, DriverSQLite)
}

func (s *SQLUserStoreSuite) TearDownTest() {
	test.CleanDB(s.T(), s.db)
	s.db.Close()
}

func TestSQLUserStoreSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(SQLUserStoreSuite))
}

func (s *SQLUserStoreSuite) TestCreateAssignsIdentity() {
	user, err := s.store.Create(s.ctx, factory.NewUser[m.User](map[string]any{
		"Name":      "Creator",
		"Email":     "creator@example.com",
		"Portfolio": []string{},
		"Favorites": []string{},
	}))

	Expect(err).To(BeNil())
	Expect(user.ID).To(Not(BeEmpty()))
	Expect(user.Name).To(Equal("Creator"))
	Expect(user.CreatedAt.IsZero()).To(BeFalse())
	Expect(user.Portfolio).To(Equal([]string{}))
	Expect(user.Favorites).To(Equal([]string{}))
}

func (s *SQLUserStoreSuite) TestListOrderedByCreation() {
	s.store.Create(s.ctx, factory.NewUser[m.User](map[string]any{"Name": "First"}))
	s.store.Create(s.ctx, factory.NewUser[m.User](map[string]any{"Name": "Second"}))

	users, err := s.store.List(s.ctx)

	Expect(err).To(BeNil())
	Expect(users).To(HaveLen(2))
}

func (s *SQLUserStoreSuite) TestGetNotFound() {
	_, err := s.store.Get(s.ctx, "missing-id")

	Expect(errors.Is(err, m.ErrNotFound)).To(BeTrue())
}

func (s *SQLUserStoreSuite) TestGetByName() {
	s.store.Create(s.ctx, factory.NewUser[m.User](map[string]any{"Name": "Findable"}))

	user, err := s.store.GetByName(s.ctx, "Findable")

	Expect(err).To(BeNil())
	Expect(user.Name).To(Equal("Findable"))

	_, err = s.store.GetByName(s.ctx, "Unknown")
	Expect(errors.Is(err, m.ErrNotFound)).To(BeTrue())
}

func (s *SQLUserStoreSuite) TestUpdatePersistsLists() {
	user, _ := s.store.Create(s.ctx, factory.NewUser[m.User](map[string]any{
		"Name":      "Lister",
		"Portfolio": []string{},
		"Favorites": []string{},
	}))

	user.AttachToPortfolio("tattoo-1")
	user.AttachToPortfolio("tattoo-2")
	user.AddFavorite("tattoo-9")

	updated, err := s.store.Update(s.ctx, user.ID, user)

	Expect(err).To(BeNil())
	Expect(updated.Portfolio).To(Equal([]string{"tattoo-1", "tattoo-2"}))
	Expect(updated.Favorites).To(Equal([]string{"tattoo-9"}))

	// A fresh read sees the same lists.
	fetched, err := s.store.Get(s.ctx, user.ID)

	Expect(err).To(BeNil())
	Expect(fetched.Portfolio).To(Equal([]string{"tattoo-1", "tattoo-2"}))
	Expect(fetched.Favorites).To(Equal([]string{"tattoo-9"}))
}

func (s *SQLUserStoreSuite) TestUpdateNotFound() {
	_, err := s.store.Update(s.ctx, "missing-id", factory.NewUser[m.User](map[string]any{"Name": "Nobody"}))

	Expect(errors.Is(err, m.ErrNotFound)).To(BeTrue())
}

func (s *SQLUserStoreSuite) TestDelete() {
	user, _ := s.store.Create(s.ctx, factory.NewUser[m.User](map[string]any{"Name": "Short-lived"}))

	Expect(s.store.Delete(s.ctx, user.ID)).To(Succeed())

	_, err := s.store.Get(s.ctx, user.ID)
	Expect(errors.Is(err, m.ErrNotFound)).To(BeTrue())

	Expect(errors.Is(s.store.Delete(s.ctx, user.ID), m.ErrNotFound)).To(BeTrue())
}
