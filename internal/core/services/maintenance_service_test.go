package services

import (
	"context"
	"testing"
	"time"

	"technotes-api/internal/adapters/persistence/models"
	"technotes-api/internal/adapters/persistence/repositories"
	"technotes-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMaintenanceService_PurgeExpired(t *testing.T) {
	db := setupTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	cfg := testConfig()
	cfg.Cleanup = config.CleanupConfig{RetentionDays: 30}
	svc := NewMaintenanceService(userRepo, noteRepo, cfg)
	userSvc := NewUserService(userRepo)
	noteSvc := NewNoteService(noteRepo, userRepo)
	ctx := context.Background()

	alice := seedUser(t, userRepo, "alice", "alice-pass", models.Roles{models.RoleEmployee}, true)
	bob := seedUser(t, userRepo, "bob", "bob-pass", models.Roles{models.RoleEmployee}, true)
	carol := seedUser(t, userRepo, "carol", "carol-pass", models.Roles{models.RoleEmployee}, true)

	note, err := noteSvc.CreateNote(ctx, &CreateNoteInput{
		UserID: alice.ID, Title: "Old ticket", Text: "long resolved",
	})
	require.NoError(t, err)
	keep, err := noteSvc.CreateNote(ctx, &CreateNoteInput{
		UserID: bob.ID, Title: "Fresh ticket", Text: "recently closed",
	})
	require.NoError(t, err)
	lingering, err := noteSvc.CreateNote(ctx, &CreateNoteInput{
		UserID: carol.ID, Title: "Lingering ticket", Text: "closed, not yet expired",
	})
	require.NoError(t, err)

	_, err = noteSvc.DeleteNote(ctx, note.ID)
	require.NoError(t, err)
	_, err = noteSvc.DeleteNote(ctx, keep.ID)
	require.NoError(t, err)
	_, err = noteSvc.DeleteNote(ctx, lingering.ID)
	require.NoError(t, err)
	_, err = userSvc.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	_, err = userSvc.DeleteUser(ctx, carol.ID)
	require.NoError(t, err)

	// age alice and her note past the retention window; carol expires too,
	// but her note stays fresh and keeps referencing her
	cutoff := time.Now().AddDate(0, 0, -40)
	require.NoError(t, db.Unscoped().Model(&models.Note{}).
		Where("id = ?", note.ID).Update("deleted_at", cutoff).Error)
	require.NoError(t, db.Unscoped().Model(&models.User{}).
		Where("id IN ?", []uint{alice.ID, carol.ID}).Update("deleted_at", cutoff).Error)

	svc.PurgeExpired()

	var noteCount int64
	require.NoError(t, db.Unscoped().Model(&models.Note{}).Count(&noteCount).Error)
	assert.EqualValues(t, 2, noteCount, "only notes deleted within retention survive")

	err = db.Unscoped().First(&models.Note{}, note.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var userCount int64
	require.NoError(t, db.Unscoped().Model(&models.User{}).Count(&userCount).Error)
	assert.EqualValues(t, 2, userCount, "bob and carol survive")

	err = db.Unscoped().First(&models.User{}, alice.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "alice is fully purged")

	// carol's note row still references her, so she must outlive this run
	// and the purge must not fail on her account
	err = db.Unscoped().First(&models.User{}, carol.ID).Error
	assert.NoError(t, err)
}
