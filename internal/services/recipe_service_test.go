package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sazonapp/sazon-backend/internal/models"
)

func blockRecipe(t *testing.T, svc *RecipeService, recipe *models.Recipe) {
	t.Helper()
	reason := "Contenido inapropiado"
	require.NoError(t, svc.db.Model(recipe).Updates(map[string]interface{}{
		"is_blocked":   true,
		"block_reason": reason,
	}).Error)
}

func TestFeed_HidesBlockedRecipesFromOthers(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, testClock())

	owner := createUser(t, db, "owner", "user")
	viewer := createUser(t, db, "viewer", "user")
	admin := createUser(t, db, "admin", "admin")

	visible := createRecipe(t, db, owner, "Tortilla")
	blocked := createRecipe(t, db, owner, "Oculta")
	blockRecipe(t, svc, blocked)

	recipes, total, err := svc.Feed(viewer, "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, visible.ID, recipes[0].ID)

	// The owner still sees their blocked recipe.
	recipes, total, err = svc.Feed(owner, "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// Admins see everything.
	recipes, total, err = svc.Feed(admin, "", 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, recipes, 2)
}

func TestGet_BlockedRecipeVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, testClock())

	owner := createUser(t, db, "owner", "user")
	viewer := createUser(t, db, "viewer", "user")
	admin := createUser(t, db, "admin", "admin")

	blocked := createRecipe(t, db, owner, "Oculta")
	blockRecipe(t, svc, blocked)

	_, err := svc.Get(viewer, blocked.ID)
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	got, err := svc.Get(owner, blocked.ID)
	require.NoError(t, err)
	assert.Equal(t, blocked.ID, got.ID)

	_, err = svc.Get(admin, blocked.ID)
	assert.NoError(t, err)
}

func TestInteractions_RejectedOnBlockedRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, testClock())

	owner := createUser(t, db, "owner", "user")
	viewer := createUser(t, db, "viewer", "user")

	blocked := createRecipe(t, db, owner, "Oculta")
	blockRecipe(t, svc, blocked)

	_, err := svc.AddComment(viewer, blocked.ID, "se ve rica")
	assert.ErrorIs(t, err, ErrRecipeBlocked)

	err = svc.Like(viewer, blocked.ID)
	assert.ErrorIs(t, err, ErrRecipeBlocked)

	// The owner keeps interacting with their own recipe.
	comment, err := svc.AddComment(owner, blocked.ID, "nota para mí")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, comment.AuthorID)

	require.NoError(t, svc.Like(owner, blocked.ID))

	var reloaded models.Recipe
	require.NoError(t, db.First(&reloaded, "id = ?", blocked.ID).Error)
	assert.Equal(t, 1, reloaded.Likes)
}

func TestAddComment_OnHealthyRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewRecipeService(db, testClock())

	owner := createUser(t, db, "owner", "user")
	viewer := createUser(t, db, "viewer", "user")
	recipe := createRecipe(t, db, owner, "Tortilla")

	comment, err := svc.AddComment(viewer, recipe.ID, "qué buena pinta")
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, comment.RecipeID)
	assert.Equal(t, testNow, comment.CreatedAt)
}
