package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/citydir/orgdirectory-backend/internal/apierr"
	"github.com/citydir/orgdirectory-backend/internal/logger"
	"github.com/citydir/orgdirectory-backend/internal/repos"
	"github.com/citydir/orgdirectory-backend/internal/types"
)

// subtreeMaxExtraDepth bounds the subtree walk to three levels below the
// root. The tree invariant already caps depth at three, so the bound is a
// backstop against data written around the API (it also breaks cycles).
const subtreeMaxExtraDepth = 3

type ActivityUpdateInput struct {
	Name     *string
	ParentID *uint
}

type ActivityService interface {
	Create(ctx context.Context, name string, parentID *uint) (*types.Activity, error)
	Update(ctx context.Context, id uint, in ActivityUpdateInput) (*types.Activity, error)
	Delete(ctx context.Context, id uint) error
	// Subtree returns root plus every descendant reachable within the depth
	// bound, each activity at most once.
	Subtree(ctx context.Context, tx *gorm.DB, root *types.Activity) ([]*types.Activity, error)
}

type activityService struct {
	db              *gorm.DB
	log             *logger.Logger
	activityRepo    repos.ActivityRepo
	orgActivityRepo repos.OrganizationActivityRepo
}

func NewActivityService(
	db *gorm.DB,
	baseLog *logger.Logger,
	activityRepo repos.ActivityRepo,
	orgActivityRepo repos.OrganizationActivityRepo,
) ActivityService {
	return &activityService{
		db:              db,
		log:             baseLog.With("service", "ActivityService"),
		activityRepo:    activityRepo,
		orgActivityRepo: orgActivityRepo,
	}
}

func (s *activityService) Create(ctx context.Context, name string, parentID *uint) (*types.Activity, error) {
	var created *types.Activity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.activityRepo.NameExists(ctx, tx, name, 0)
		if err != nil {
			return err
		}
		if exists {
			return apierr.Conflict("activity %q already exists", name)
		}

		level := 1
		if parentID != nil {
			parent, err := s.activityRepo.GetByID(ctx, tx, *parentID)
			if err != nil {
				return err
			}
			if parent == nil {
				return apierr.Invalid("parent activity %d not found", *parentID)
			}
			if parent.Level >= types.MaxActivityLevel {
				return apierr.Invalid("activity nesting deeper than %d levels is not allowed", types.MaxActivityLevel)
			}
			level = parent.Level + 1
		}

		created, err = s.activityRepo.Create(ctx, tx, &types.Activity{
			Name:     name,
			ParentID: parentID,
			Level:    level,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Activity created", "activity_id", created.ID, "level", created.Level)
	return created, nil
}

func (s *activityService) Update(ctx context.Context, id uint, in ActivityUpdateInput) (*types.Activity, error) {
	var updated *types.Activity
	err := s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.activityRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if activity == nil {
			return apierr.NotFound("activity %d not found", id)
		}

		if in.Name != nil {
			exists, err := s.activityRepo.NameExists(ctx, tx, *in.Name, id)
			if err != nil {
				return err
			}
			if exists {
				return apierr.Conflict("activity %q already exists", *in.Name)
			}
			activity.Name = *in.Name
		}

		if in.ParentID != nil {
			if err := s.reparent(ctx, tx, activity, *in.ParentID); err != nil {
				return err
			}
		}

		if err := s.activityRepo.Save(ctx, tx, activity); err != nil {
			return err
		}
		updated = activity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// reparent moves activity under newParentID, recomputing levels across the
// moved subtree. The move is refused when it would push any descendant past
// the depth cap, or when the new parent sits inside the moved subtree.
func (s *activityService) reparent(ctx context.Context, tx *gorm.DB, activity *types.Activity, newParentID uint) error {
	if newParentID == activity.ID {
		return apierr.Invalid("activity cannot be its own parent")
	}

	parent, err := s.activityRepo.GetByID(ctx, tx, newParentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return apierr.Invalid("parent activity %d not found", newParentID)
	}

	subtree, err := s.Subtree(ctx, tx, activity)
	if err != nil {
		return err
	}
	height := 1
	for _, node := range subtree {
		if node.ID == newParentID {
			return apierr.Invalid("activity cannot be moved under its own descendant")
		}
		if h := node.Level - activity.Level + 1; h > height {
			height = h
		}
	}

	newLevel := parent.Level + 1
	if newLevel+height-1 > types.MaxActivityLevel {
		return apierr.Invalid("activity nesting deeper than %d levels is not allowed", types.MaxActivityLevel)
	}

	shift := newLevel - activity.Level
	activity.ParentID = &newParentID
	activity.Level = newLevel
	for _, node := range subtree {
		if node.ID == activity.ID {
			continue
		}
		node.Level += shift
		if err := s.activityRepo.Save(ctx, tx, node); err != nil {
			return err
		}
	}
	return nil
}

func (s *activityService) Delete(ctx context.Context, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.activityRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if activity == nil {
			return apierr.NotFound("activity %d not found", id)
		}

		children, err := s.activityRepo.CountChildren(ctx, tx, id)
		if err != nil {
			return err
		}
		if children > 0 {
			return apierr.Conflict("activity %d still has child activities", id)
		}

		if err := s.orgActivityRepo.DeleteByActivityID(ctx, tx, id); err != nil {
			return err
		}
		return s.activityRepo.Delete(ctx, tx, id)
	})
}

func (s *activityService) Subtree(ctx context.Context, tx *gorm.DB, root *types.Activity) ([]*types.Activity, error) {
	if root == nil {
		return nil, nil
	}
	visited := map[uint]bool{root.ID: true}
	result := []*types.Activity{root}
	frontier := []uint{root.ID}

	for depth := 1; depth <= subtreeMaxExtraDepth; depth++ {
		children, err := s.activityRepo.ListByParentIDs(ctx, tx, frontier)
		if err != nil {
			return nil, err
		}
		var next []uint
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			result = append(result, child)
			next = append(next, child.ID)
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return result, nil
}
