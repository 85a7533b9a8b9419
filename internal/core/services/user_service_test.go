package services

import (
	"context"
	"sync"
	"testing"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/core/domain"
	"technotes-api/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	t.Run("creates an active user with hashed password", func(t *testing.T) {
		resp, err := svc.CreateUser(ctx, &CreateUserInput{
			Username: "alice",
			Password: "s3cret-pass",
			Roles:    models.Roles{models.RoleEmployee},
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)
		assert.True(t, resp.Active)

		stored, err := userRepo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-pass", stored.Password)
		assert.True(t, password.Verify("s3cret-pass", stored.Password))
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &CreateUserInput{
			Username: "alice",
			Password: "other-pass",
			Roles:    models.Roles{models.RoleEmployee},
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &CreateUserInput{
			Username: "",
			Password: "pass",
			Roles:    models.Roles{models.RoleEmployee},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = svc.CreateUser(ctx, &CreateUserInput{
			Username: "bob",
			Password: "",
			Roles:    models.Roles{models.RoleEmployee},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects empty role set", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &CreateUserInput{
			Username: "bob",
			Password: "pass123456",
			Roles:    models.Roles{},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	alice := seedUser(t, userRepo, "alice", "alice-pass", models.Roles{models.RoleEmployee}, true)
	seedUser(t, userRepo, "bob", "bob-pass", models.Roles{models.RoleEmployee}, true)

	t.Run("empty password leaves hash untouched", func(t *testing.T) {
		before, err := userRepo.GetByID(ctx, alice.ID)
		require.NoError(t, err)

		resp, err := svc.UpdateUser(ctx, &UpdateUserInput{
			ID:       alice.ID,
			Username: "alice",
			Roles:    models.Roles{models.RoleEmployee, models.RoleManager},
			Active:   true,
		})
		require.NoError(t, err)
		assert.Contains(t, []string(resp.Roles), models.RoleManager)

		after, err := userRepo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Password, after.Password)
	})

	t.Run("supplied password is re-hashed", func(t *testing.T) {
		before, err := userRepo.GetByID(ctx, alice.ID)
		require.NoError(t, err)

		_, err = svc.UpdateUser(ctx, &UpdateUserInput{
			ID:       alice.ID,
			Username: "alice",
			Roles:    models.Roles{models.RoleEmployee},
			Active:   true,
			Password: "brand-new-pass",
		})
		require.NoError(t, err)

		after, err := userRepo.GetByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.NotEqual(t, before.Password, after.Password)
		assert.True(t, password.Verify("brand-new-pass", after.Password))
	})

	t.Run("renaming onto another user conflicts", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, &UpdateUserInput{
			ID:       alice.ID,
			Username: "bob",
			Roles:    models.Roles{models.RoleEmployee},
			Active:   true,
		})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("keeping own username is not a conflict", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, &UpdateUserInput{
			ID:       alice.ID,
			Username: "alice",
			Roles:    models.Roles{models.RoleEmployee},
			Active:   true,
		})
		assert.NoError(t, err)
	})

	t.Run("deactivation persists", func(t *testing.T) {
		resp, err := svc.UpdateUser(ctx, &UpdateUserInput{
			ID:       alice.ID,
			Username: "alice",
			Roles:    models.Roles{models.RoleEmployee},
			Active:   false,
		})
		require.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, &UpdateUserInput{
			ID:       99999,
			Username: "ghost",
			Roles:    models.Roles{models.RoleEmployee},
			Active:   true,
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	userSvc := NewUserService(userRepo)
	noteSvc := NewNoteService(noteRepo, userRepo)
	ctx := context.Background()

	alice := seedUser(t, userRepo, "alice", "alice-pass", models.Roles{models.RoleEmployee}, true)

	t.Run("delete is blocked while notes reference the user", func(t *testing.T) {
		note, err := noteSvc.CreateNote(ctx, &CreateNoteInput{
			UserID: alice.ID,
			Title:  "Fix the printer",
			Text:   "Third floor printer jams on duplex",
		})
		require.NoError(t, err)

		_, err = userSvc.DeleteUser(ctx, alice.ID)
		assert.ErrorIs(t, err, domain.ErrUserHasNotes)

		// still listed after the failed delete
		users, err := userSvc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)

		_, err = noteSvc.DeleteNote(ctx, note.ID)
		require.NoError(t, err)
	})

	t.Run("delete succeeds once notes are gone", func(t *testing.T) {
		resp, err := userSvc.DeleteUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Username)

		users, err := userSvc.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := userSvc.DeleteUser(ctx, 99999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("zero id is invalid", func(t *testing.T) {
		_, err := userSvc.DeleteUser(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUserService_DeleteRacingNoteCreate(t *testing.T) {
	for i := 0; i < 8; i++ {
		db := setupTestDB(t)
		userRepo := repositories.NewUserRepository(db)
		noteRepo := repositories.NewNoteRepository(db)
		userSvc := NewUserService(userRepo)
		noteSvc := NewNoteService(noteRepo, userRepo)
		ctx := context.Background()

		alice := seedUser(t, userRepo, "alice", "alice-pass", models.Roles{models.RoleEmployee}, true)

		var wg sync.WaitGroup
		var noteErr, delErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, noteErr = noteSvc.CreateNote(ctx, &CreateNoteInput{
				UserID: alice.ID, Title: "Racy note", Text: "created mid-delete",
			})
		}()
		go func() {
			defer wg.Done()
			_, delErr = userSvc.DeleteUser(ctx, alice.ID)
		}()
		wg.Wait()

		// whichever side committed first, a live note must never reference
		// a deleted user
		count, err := noteRepo.CountByUserID(ctx, alice.ID)
		require.NoError(t, err)

		_, ownerErr := userRepo.GetByID(ctx, alice.ID)
		if count > 0 {
			assert.NoError(t, ownerErr, "a live note exists, so its owner must too")
			assert.ErrorIs(t, delErr, domain.ErrUserHasNotes)
			assert.NoError(t, noteErr)
		} else {
			assert.NoError(t, delErr)
			assert.ErrorIs(t, noteErr, domain.ErrNoteOwnerMissing)
		}
	}
}

func TestUserRepository_InactiveOnInsert(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	ctx := context.Background()

	carol := seedUser(t, userRepo, "carol", "carol-pass", models.Roles{models.RoleEmployee}, false)

	stored, err := userRepo.GetByID(ctx, carol.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active, "an account created inactive must be stored inactive")
}

func TestUserService_ListUsers(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	svc := NewUserService(userRepo)
	ctx := context.Background()

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	seedUser(t, userRepo, "alice", "alice-pass", models.Roles{models.RoleEmployee}, true)
	seedUser(t, userRepo, "bob", "bob-pass", models.Roles{models.RoleManager}, true)

	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
