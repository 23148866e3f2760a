package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beststore/internal/db"
	"beststore/internal/models"
)

type RepositorySuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	products *GormProducts
	users    *GormUsers
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(s.T().TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate(gdb))

	s.db = gdb
	s.products = NewProducts(gdb)
	s.users = NewUsers(gdb)
}

func (s *RepositorySuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	s.Require().NoError(sqlDB.Close())
}

func (s *RepositorySuite) newProduct(name string) *models.Product {
	return &models.Product{
		Name:          name,
		Brand:         "Acme",
		Category:      "Phones",
		Price:         decimal.RequireFromString("199.99"),
		Description:   "A product used in repository tests",
		ImageFileName: "1700000000000_" + name + ".png",
	}
}

func (s *RepositorySuite) TestSave_InsertAssignsID() {
	p := s.newProduct("first")
	s.Require().NoError(s.products.Save(s.ctx, p))
	s.Require().NotZero(p.ID)

	got, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Require().Equal("first", got.Name)
	s.Require().Equal("Acme", got.Brand)
	s.Require().True(decimal.RequireFromString("199.99").Equal(got.Price))
	s.Require().Equal(p.ImageFileName, got.ImageFileName)
}

func (s *RepositorySuite) TestSave_UpdateKeepsID() {
	p := s.newProduct("before")
	s.Require().NoError(s.products.Save(s.ctx, p))
	id := p.ID

	p.Name = "after"
	p.Price = decimal.RequireFromString("5")
	s.Require().NoError(s.products.Save(s.ctx, p))
	s.Require().Equal(id, p.ID)

	got, err := s.products.FindByID(s.ctx, id)
	s.Require().NoError(err)
	s.Require().Equal("after", got.Name)
	s.Require().True(decimal.NewFromInt(5).Equal(got.Price))

	all, err := s.products.FindAllSorted(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
}

func (s *RepositorySuite) TestFindAllSorted_IDDescending() {
	for _, name := range []string{"a", "b", "c"} {
		s.Require().NoError(s.products.Save(s.ctx, s.newProduct(name)))
	}

	all, err := s.products.FindAllSorted(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Require().Equal("c", all[0].Name)
	s.Require().Equal("b", all[1].Name)
	s.Require().Equal("a", all[2].Name)
	s.Require().Greater(all[0].ID, all[1].ID)
}

func (s *RepositorySuite) TestFindAllSorted_Empty() {
	all, err := s.products.FindAllSorted(s.ctx)
	s.Require().NoError(err)
	s.Require().Empty(all)
}

func (s *RepositorySuite) TestFindByID_NotFound() {
	got, err := s.products.FindByID(s.ctx, 999)
	s.Require().Nil(got)
	s.Require().ErrorIs(err, ErrProductNotFound)
}

func (s *RepositorySuite) TestDelete() {
	p := s.newProduct("doomed")
	s.Require().NoError(s.products.Save(s.ctx, p))

	s.Require().NoError(s.products.Delete(s.ctx, p))

	_, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().ErrorIs(err, ErrProductNotFound)

	s.Require().ErrorIs(s.products.Delete(s.ctx, p), ErrProductNotFound)
}

func (s *RepositorySuite) TestContextCanceled() {
	ctx, cancel := context.WithTimeout(s.ctx, time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := s.products.FindAllSorted(ctx)
	s.Require().Error(err)
}

func (s *RepositorySuite) TestEnsureAdmin_CreatesThenResets() {
	u, err := s.users.EnsureAdmin(s.ctx, "admin", "first-password")
	s.Require().NoError(err)
	s.Require().NotZero(u.ID)
	s.Require().True(models.CheckPassword(u.PasswordHash, "first-password"))

	again, err := s.users.EnsureAdmin(s.ctx, "admin", "second-password")
	s.Require().NoError(err)
	s.Require().Equal(u.ID, again.ID)

	found, err := s.users.FindByUsername(s.ctx, "admin")
	s.Require().NoError(err)
	s.Require().True(models.CheckPassword(found.PasswordHash, "second-password"))
	s.Require().False(models.CheckPassword(found.PasswordHash, "first-password"))
}

func (s *RepositorySuite) TestFindByUsername_NotFound() {
	_, err := s.users.FindByUsername(s.ctx, "nobody")
	s.Require().ErrorIs(err, ErrUserNotFound)
}
