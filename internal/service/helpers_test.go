package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/dto"
	"github.com/hameema-git/ramzan-challange/internal/model"
	"github.com/hameema-git/ramzan-challange/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.DailyRecord{},
		&model.Group{},
		&model.GroupMember{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, location string) *model.User {
	t.Helper()

	user := &model.User{Name: name, Location: location}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user))
	return user
}

// nopSearch satisfies SearchService for tests that don't exercise search.
type nopSearch struct{}

func (nopSearch) IndexGroup(*model.Group, int) error                { return nil }
func (nopSearch) DeleteGroup(string) error                          { return nil }
func (nopSearch) SearchGroups(string) ([]dto.GroupSearchHit, error) { return nil, nil }
