package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"

	"osrsgoals/internal/repository"
)

// ErrInvalidGoal is wrapped by every validation failure.
var ErrInvalidGoal = errors.New("invalid goal")

// GoalStore persists goals. *repository.GoalRepository implements it.
type GoalStore interface {
	Create(ctx context.Context, g *repository.Goal) error
	Get(ctx context.Context, id string) (*repository.Goal, error)
	List(ctx context.Context) ([]repository.Goal, error)
	Save(ctx context.Context, g *repository.Goal) error
	Delete(ctx context.Context, id string) error
}

type SkillGoalInput struct {
	SkillName    string                      `json:"skill_name"`
	TargetLevel  int                         `json:"target_level"`
	PlayerName   string                      `json:"player_name"`
	Dependencies []repository.GoalDependency `json:"dependencies"`
}

type DropGoalInput struct {
	ItemName     string                      `json:"item_name"`
	ItemID       uint64                      `json:"item_id"`
	ItemIcon     string                      `json:"item_icon"`
	TargetDrops  int                         `json:"target_drops"`
	Dependencies []repository.GoalDependency `json:"dependencies"`
}

type OtherGoalInput struct {
	Title        string                      `json:"title"`
	Dependencies []repository.GoalDependency `json:"dependencies"`
}

// GoalSummary is the short form used for dependency listings.
type GoalSummary struct {
	ID         string              `json:"id"`
	Type       repository.GoalKind `json:"type"`
	Label      string              `json:"label"`
	IconPath   string              `json:"icon_path,omitempty"`
	IsComplete bool                `json:"is_complete"`
}

// GoalView is a stored goal plus everything derived from it for display.
type GoalView struct {
	repository.Goal
	Label         string        `json:"label"`
	IconPath      string        `json:"icon_path,omitempty"`
	IsComplete    bool          `json:"is_complete"`
	Progress      float64       `json:"progress"`
	RemainingText string        `json:"remaining_text"`
	IsBlocked     bool          `json:"is_blocked"`
	BlockedBy     []GoalSummary `json:"blocked_by,omitempty"`
}

// GoalService tracks skill, drop and free-form goals.
type GoalService struct {
	store  GoalStore
	lookup OSRSAPI
}

func NewGoalService(store GoalStore, lookup OSRSAPI) *GoalService {
	return &GoalService{store: store, lookup: lookup}
}

// AddSkillGoal creates a goal to reach TargetLevel in a skill. When a player
// name is given the current level and xp are seeded from the hiscores.
func (s *GoalService) AddSkillGoal(ctx context.Context, in SkillGoalInput) (*repository.Goal, error) {
	skill, ok := CanonicalSkill(in.SkillName)
	if !ok {
		return nil, fmt.Errorf("%w: unknown skill %q", ErrInvalidGoal, in.SkillName)
	}
	if in.TargetLevel < MinTargetLevel || in.TargetLevel > MaxTargetLevel {
		return nil, fmt.Errorf("%w: target level must be between %d and %d", ErrInvalidGoal, MinTargetLevel, MaxTargetLevel)
	}

	goal := &repository.Goal{
		Kind:         repository.GoalKindSkill,
		SkillName:    skill,
		TargetLevel:  in.TargetLevel,
		CurrentLevel: 1,
	}

	if name := strings.TrimSpace(in.PlayerName); name != "" {
		skills, err := s.lookup.LookupPlayer(ctx, name)
		if err != nil {
			return nil, err
		}
		for _, sk := range skills {
			if strings.EqualFold(sk.Name, skill) {
				goal.CurrentLevel = int(sk.Level)
				goal.CurrentXP = sk.XP
				break
			}
		}
	}

	if goal.CurrentLevel >= goal.TargetLevel {
		return nil, fmt.Errorf("%w: you already have level %d %s", ErrInvalidGoal, goal.CurrentLevel, skill)
	}

	return s.create(ctx, goal, in.Dependencies)
}

// AddDropGoal creates a goal to collect TargetDrops of an item.
func (s *GoalService) AddDropGoal(ctx context.Context, in DropGoalInput) (*repository.Goal, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", ErrInvalidGoal)
	}

	target := in.TargetDrops
	if target < 1 {
		target = 1
	}

	return s.create(ctx, &repository.Goal{
		Kind:        repository.GoalKindDrop,
		ItemID:      in.ItemID,
		ItemName:    name,
		ItemIcon:    in.ItemIcon,
		TargetDrops: target,
	}, in.Dependencies)
}

// AddOtherGoal creates a free-form goal completed by hand.
func (s *GoalService) AddOtherGoal(ctx context.Context, in OtherGoalInput) (*repository.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}

	return s.create(ctx, &repository.Goal{
		Kind:  repository.GoalKindOther,
		Title: title,
	}, in.Dependencies)
}

func (s *GoalService) create(ctx context.Context, goal *repository.Goal, deps []repository.GoalDependency) (*repository.Goal, error) {
	for _, d := range deps {
		switch d.GoalType {
		case repository.GoalKindSkill, repository.GoalKindDrop, repository.GoalKindOther:
		default:
			return nil, fmt.Errorf("%w: unknown dependency type %q", ErrInvalidGoal, d.GoalType)
		}
		target, err := s.store.Get(ctx, d.GoalID)
		if errors.Is(err, repository.ErrGoalNotFound) {
			return nil, fmt.Errorf("%w: dependency %s not found", ErrInvalidGoal, d.GoalID)
		}
		if err != nil {
			return nil, err
		}
		if target.Kind != d.GoalType {
			return nil, fmt.Errorf("%w: dependency %s is a %s goal, not %s", ErrInvalidGoal, d.GoalID, target.Kind, d.GoalType)
		}
	}

	goal.ID = uuid.NewString()
	if len(deps) > 0 {
		goal.Dependencies = deps
	}

	if err := s.store.Create(ctx, goal); err != nil {
		return nil, err
	}
	log.Printf("[INFO] created %s goal %s", goal.Kind, goal.ID)
	return goal, nil
}

// IncrementDrops records one more drop on a drop goal.
func (s *GoalService) IncrementDrops(ctx context.Context, id string) (*repository.Goal, error) {
	return s.update(ctx, id, repository.GoalKindDrop, func(g *repository.Goal) {
		g.CurrentDrops++
	})
}

// DecrementDrops removes one drop, never going below zero.
func (s *GoalService) DecrementDrops(ctx context.Context, id string) (*repository.Goal, error) {
	return s.update(ctx, id, repository.GoalKindDrop, func(g *repository.Goal) {
		if g.CurrentDrops > 0 {
			g.CurrentDrops--
		}
	})
}

// ToggleDone flips the completion flag of a free-form goal.
func (s *GoalService) ToggleDone(ctx context.Context, id string) (*repository.Goal, error) {
	return s.update(ctx, id, repository.GoalKindOther, func(g *repository.Goal) {
		g.Done = !g.Done
	})
}

func (s *GoalService) update(ctx context.Context, id string, kind repository.GoalKind, apply func(*repository.Goal)) (*repository.Goal, error) {
	goal, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if goal.Kind != kind {
		return nil, fmt.Errorf("%w: goal %s is a %s goal", ErrInvalidGoal, id, goal.Kind)
	}

	apply(goal)
	if err := s.store.Save(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// SyncSkillGoals refreshes the current level and xp of every skill goal from
// the player's hiscore entry and returns the updated goal list.
func (s *GoalService) SyncSkillGoals(ctx context.Context, playerName string) ([]GoalView, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrInvalidGoal)
	}

	skills, err := s.lookup.LookupPlayer(ctx, strings.TrimSpace(playerName))
	if err != nil {
		return nil, err
	}

	goals, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	updated := 0
	for i := range goals {
		g := &goals[i]
		if g.Kind != repository.GoalKindSkill {
			continue
		}
		for _, sk := range skills {
			if !strings.EqualFold(sk.Name, g.SkillName) {
				continue
			}
			if g.CurrentLevel != int(sk.Level) || g.CurrentXP != sk.XP {
				g.CurrentLevel = int(sk.Level)
				g.CurrentXP = sk.XP
				if err := s.store.Save(ctx, g); err != nil {
					return nil, err
				}
				updated++
			}
			break
		}
	}
	log.Printf("[INFO] synced %d skill goals for %q", updated, playerName)

	return buildViews(goals), nil
}

// ListGoals returns every goal with its derived progress and blocking state.
func (s *GoalService) ListGoals(ctx context.Context) ([]GoalView, error) {
	goals, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return buildViews(goals), nil
}

func buildViews(goals []repository.Goal) []GoalView {
	summaries := make(map[repository.GoalDependency]GoalSummary, len(goals))
	for _, g := range goals {
		summaries[repository.GoalDependency{GoalID: g.ID, GoalType: g.Kind}] = summarize(g)
	}

	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		sum := summaries[repository.GoalDependency{GoalID: g.ID, GoalType: g.Kind}]
		v := GoalView{
			Goal:       g,
			Label:      sum.Label,
			IconPath:   sum.IconPath,
			IsComplete: sum.IsComplete,
		}

		switch g.Kind {
		case repository.GoalKindSkill:
			target := XPForLevel(g.TargetLevel)
			if target > 0 {
				v.Progress = percent(float64(g.CurrentXP), float64(target))
			}
			var remaining uint64
			if target > g.CurrentXP {
				remaining = target - g.CurrentXP
			}
			v.RemainingText = formatThousands(remaining) + " XP remaining"
		case repository.GoalKindDrop:
			v.Progress = percent(float64(g.CurrentDrops), float64(g.TargetDrops))
			v.RemainingText = fmt.Sprintf("%d drops remaining", max(0, g.TargetDrops-g.CurrentDrops))
		case repository.GoalKindOther:
			if g.Done {
				v.Progress = 100
			}
		}

		// Dependencies on goals that no longer exist do not block.
		for _, d := range g.Dependencies {
			if dep, ok := summaries[d]; ok && !dep.IsComplete {
				v.BlockedBy = append(v.BlockedBy, dep)
			}
		}
		v.IsBlocked = len(v.BlockedBy) > 0

		views = append(views, v)
	}
	return views
}

func summarize(g repository.Goal) GoalSummary {
	sum := GoalSummary{ID: g.ID, Type: g.Kind}
	switch g.Kind {
	case repository.GoalKindSkill:
		sum.Label = fmt.Sprintf("%d %s", g.TargetLevel, g.SkillName)
		sum.IconPath = "/skills/" + strings.ToLower(g.SkillName) + ".png"
		sum.IsComplete = g.CurrentLevel >= g.TargetLevel
	case repository.GoalKindDrop:
		sum.Label = g.ItemName
		sum.IconPath = g.ItemIcon
		sum.IsComplete = g.CurrentDrops >= g.TargetDrops
	case repository.GoalKindOther:
		sum.Label = g.Title
		sum.IsComplete = g.Done
	}
	return sum
}

func percent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, current/target*100)
}
