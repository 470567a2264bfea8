package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
)

func TestRegister_NormalizesIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	res, err := svc.Register(context.Background(), IdentityInput{
		Name:     "  Amina Hassan ",
		Location: " CAIRO ",
	})
	require.NoError(t, err)

	assert.Equal(t, "amina hassan", res.User.Name)
	assert.Equal(t, "cairo", res.User.Location)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "Bearer", res.TokenType)
}

func TestRegister_DuplicateIdentityConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	input := IdentityInput{Name: "Amina Hassan", Location: "Cairo"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	// Same person with different casing is still the same identity.
	_, err = svc.Register(ctx, IdentityInput{Name: "AMINA hassan", Location: "cairo"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 409, appErr.Code)
}

func TestRegister_SameNameDifferentLocationAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	_, err := svc.Register(ctx, IdentityInput{Name: "Amina Hassan", Location: "Cairo"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, IdentityInput{Name: "Amina Hassan", Location: "Alexandria"})
	require.NoError(t, err)
}

func TestLogin_UnknownIdentityNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Login(context.Background(), IdentityInput{Name: "Nobody", Location: "Nowhere"})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)
}

func TestLogin_ReturnsExistingUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))
	ctx := context.Background()

	registered, err := svc.Register(ctx, IdentityInput{Name: "Bilal Khan", Location: "Lahore"})
	require.NoError(t, err)

	loggedIn, err := svc.Login(ctx, IdentityInput{Name: "bilal khan", Location: "LAHORE"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestDeleteAccount_CascadesRecordsAndGroups(t *testing.T) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)
	recordRepo := repository.NewRecordRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	authSvc := NewAuthService(userRepo)
	recordSvc := NewRecordService(recordRepo, userRepo, nil)
	groupSvc := NewGroupService(groupRepo, userRepo, recordRepo, nopSearch{})
	ctx := context.Background()

	res, err := authSvc.Register(ctx, IdentityInput{Name: "Dawud", Location: "Jakarta"})
	require.NoError(t, err)
	userID := res.User.ID

	_, err = recordSvc.Save(ctx, userID, "2026-02-18", DailyActivityInput{Pages: 1})
	require.NoError(t, err)
	created, err := groupSvc.Create(ctx, userID, CreateGroupInput{Name: "Dawud's Circle"})
	require.NoError(t, err)

	require.NoError(t, authSvc.DeleteAccount(ctx, userID.String()))

	_, err = authSvc.GetProfile(ctx, userID.String())
	require.Error(t, err)

	records, err := recordSvc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, records)

	other := createTestUser(t, db, "esra", "istanbul")
	_, err = groupSvc.Join(ctx, other.ID, JoinGroupInput{InviteCode: created.InviteCode})
	require.Error(t, err)
}
