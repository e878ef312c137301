package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sazonapp/sazon-backend/internal/clock"
	"github.com/sazonapp/sazon-backend/internal/models"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrRecipeBlocked  = errors.New("recipe is not available")
)

// VisibleRecipes is the single discovery filter for blocked recipes: a
// blocked recipe is visible only to its author and to admins. Every read
// path (feed, search, get) goes through this scope so no listing leaks
// blocked content.
func VisibleRecipes(viewer *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewer != nil && viewer.IsAdmin() {
			return db
		}
		if viewer != nil {
			return db.Where("is_blocked = false OR author_id = ?", viewer.ID)
		}
		return db.Where("is_blocked = false")
	}
}

// RecipeService is the thin recipe surface the moderation core needs:
// discovery, lookup and the interactions whose rejection rules depend on
// block state.
type RecipeService struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewRecipeService(db *gorm.DB, clk clock.Clock) *RecipeService {
	return &RecipeService{db: db, clk: clk}
}

// Feed lists recipes newest-first, filtered through VisibleRecipes.
func (s *RecipeService) Feed(viewer *models.User, search string, limit, offset int) ([]models.Recipe, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Recipe{}).Scopes(VisibleRecipes(viewer))
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&recipes).Error; err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Get returns a recipe, applying the same visibility rule as Feed.
func (s *RecipeService) Get(viewer *models.User, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.Scopes(VisibleRecipes(viewer)).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// interactable rejects interactions with a blocked recipe for everyone
// but its author.
func (s *RecipeService) interactable(viewer *models.User, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.IsBlocked && recipe.AuthorID != viewer.ID {
		return nil, ErrRecipeBlocked
	}
	return &recipe, nil
}

func (s *RecipeService) AddComment(viewer *models.User, recipeID uuid.UUID, body string) (*models.Comment, error) {
	recipe, err := s.interactable(viewer, recipeID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.New(),
		RecipeID:  recipe.ID,
		AuthorID:  viewer.ID,
		Body:      body,
		CreatedAt: s.clk.Now(),
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *RecipeService) Like(viewer *models.User, recipeID uuid.UUID) error {
	recipe, err := s.interactable(viewer, recipeID)
	if err != nil {
		return err
	}
	return s.db.Model(recipe).Update("likes", gorm.Expr("likes + 1")).Error
}
