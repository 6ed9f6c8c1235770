package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chorehub/chorehub/internal/models"
	"github.com/chorehub/chorehub/internal/storage"
)

// GroupService implements group membership operations.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroupInput describes a new group.
type CreateGroupInput struct {
	Name       string
	Status     string
	Expiration int64
	Timezone   string
	CreatorID  string
}

// CreateGroup creates a group with the creator as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, in CreateGroupInput) (*models.Group, error) {
	creator, err := s.store.GetUserByID(ctx, in.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}
	if creator == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, in.CreatorID)
	}

	group := &models.Group{
		Name:       in.Name,
		Status:     in.Status,
		Expiration: in.Expiration,
		Timezone:   in.Timezone,
		CreatorID:  creator.ID,
		Members:    []string{creator.ID},
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "creator", creator.Username)
	return group, nil
}

// GroupDetail is a group plus its resolved member users.
type GroupDetail struct {
	Group   *models.Group
	Creator *models.User
	Members []*models.User
}

// GetGroup retrieves a group with its creator and members resolved.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*GroupDetail, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}

	creator, err := s.store.GetUserByID(ctx, group.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}

	members := make([]*models.User, 0, len(group.Members))
	for _, userID := range group.Members {
		user, err := s.store.GetUserByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up member: %w", err)
		}
		if user != nil {
			members = append(members, user)
		}
	}

	return &GroupDetail{Group: group, Creator: creator, Members: members}, nil
}

// AddMembersResult reports the per-username outcome of AddMembers.
type AddMembersResult struct {
	Success  []string
	NotFound []string
}

// AddMembers adds users to a group by username. Unknown usernames are
// collected rather than failing the whole request; usernames that are
// already members are skipped silently.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, usernames []string) (*AddMembersResult, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, ErrGroupNotFound
	}

	result := &AddMembersResult{}
	var toAdd []string
	for _, username := range usernames {
		user, err := s.store.GetUserByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil {
			result.NotFound = append(result.NotFound, username)
			continue
		}
		if group.HasMember(user.ID) {
			continue
		}
		toAdd = append(toAdd, user.ID)
		result.Success = append(result.Success, username)
	}

	if len(toAdd) > 0 {
		if err := s.store.AddGroupMembers(ctx, groupID, toAdd); err != nil {
			slog.Error("AddMembers failed", "group_id", groupID, "error", err)
			return nil, err
		}
	}

	slog.Info("Group members added",
		"group_id", groupID,
		"added", len(result.Success),
		"not_found", len(result.NotFound),
	)
	return result, nil
}

// LeaveGroup removes the user from the group. The creator cannot
// leave; the only way out for them is deleting the group.
func (s *GroupService) LeaveGroup(ctx context.Context, groupID, userID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return ErrGroupNotFound
	}

	if group.CreatorID == userID {
		return ErrCreatorCannotLeave
	}
	if !group.HasMember(userID) {
		return fmt.Errorf("%w: %s", ErrUserNotInGroup, userID)
	}

	if err := s.store.RemoveGroupMember(ctx, groupID, userID); err != nil {
		slog.Error("LeaveGroup failed", "group_id", groupID, "user_id", userID, "error", err)
		return err
	}

	slog.Info("User left group", "group_id", groupID, "user_id", userID)
	return nil
}

// DeleteGroup removes a group and everything hanging off it. Only the
// creator may delete.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID, actorID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return ErrGroupNotFound
	}
	if group.CreatorID != actorID {
		return ErrNotGroupCreator
	}

	if err := s.store.DeleteGroup(ctx, groupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", groupID, "error", err)
		return err
	}

	slog.Info("Group deleted", "group_id", groupID)
	return nil
}

// ListUserGroups retrieves every group the user belongs to.
func (s *GroupService) ListUserGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	return s.store.ListGroupsByMember(ctx, userID)
}
