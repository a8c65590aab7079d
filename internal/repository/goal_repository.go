package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalKind string

const (
	GoalKindSkill GoalKind = "skill"
	GoalKindDrop  GoalKind = "drop"
	GoalKindOther GoalKind = "other"
)

// GoalDependency points at another goal that has to be completed first.
type GoalDependency struct {
	GoalID   string   `json:"goal_id"`
	GoalType GoalKind `json:"goal_type"`
}

// Goal stores every goal kind in one table; the columns that do not apply
// to a kind stay at their zero value.
type Goal struct {
	ID   string   `gorm:"primaryKey;size:36" json:"id"`
	Kind GoalKind `gorm:"size:16;index;not null" json:"type"`

	// skill
	SkillName    string `gorm:"size:32" json:"skill_name,omitempty"`
	TargetLevel  int    `json:"target_level,omitempty"`
	CurrentLevel int    `json:"current_level,omitempty"`
	CurrentXP    uint64 `json:"current_xp,omitempty"`

	// drop
	ItemID       uint64 `json:"item_id,omitempty"`
	ItemName     string `gorm:"size:128" json:"item_name,omitempty"`
	ItemIcon     string `gorm:"size:512" json:"item_icon,omitempty"`
	TargetDrops  int    `json:"target_drops,omitempty"`
	CurrentDrops int    `json:"current_drops"`

	// other
	Title string `gorm:"size:256" json:"title,omitempty"`
	Done  bool   `json:"done"`

	Dependencies []GoalDependency `gorm:"serializer:json" json:"dependencies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// AutoMigrate ensures DB schema is up to date for this repository.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Goal{})
}

func (r *GoalRepository) Create(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GoalRepository) Get(ctx context.Context, id string) (*Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all goals in creation order.
func (r *GoalRepository) List(ctx context.Context) ([]Goal, error) {
	var goals []Goal
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *GoalRepository) Save(ctx context.Context, g *Goal) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Goal{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
