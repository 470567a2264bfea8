package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/hameema-git/ramzan-challange/internal/dto"
	"github.com/hameema-git/ramzan-challange/internal/model"
	"github.com/hameema-git/ramzan-challange/internal/repository"
	"github.com/hameema-git/ramzan-challange/pkg/apperror"
	"github.com/hameema-git/ramzan-challange/pkg/logger"
)

const inviteCodeCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type CreateGroupInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	// IncludeCreatorInCompetition defaults to true when omitted.
	IncludeCreatorInCompetition *bool `json:"include_creator_in_competition"`
}

type JoinGroupInput struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

type GroupService interface {
	Create(ctx context.Context, creatorID uuid.UUID, input CreateGroupInput) (*dto.GroupSummary, error)
	Join(ctx context.Context, userID uuid.UUID, input JoinGroupInput) (*dto.GroupSummary, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]dto.GroupSummary, error)
	// Detail builds the group page for a member: the summary plus a
	// leaderboard recomputed from the members' stored daily totals.
	Detail(ctx context.Context, userID uuid.UUID, groupID string) (*dto.GroupDetail, error)
	Delete(ctx context.Context, userID uuid.UUID, groupID string) error
	Search(ctx context.Context, query string) ([]dto.GroupSearchHit, error)
}

type groupService struct {
	repo       repository.GroupRepository
	userRepo   repository.UserRepository
	recordRepo repository.RecordRepository
	search     SearchService
	sanitizer  *bluemonday.Policy
}

func NewGroupService(
	repo repository.GroupRepository,
	userRepo repository.UserRepository,
	recordRepo repository.RecordRepository,
	search SearchService,
) GroupService {
	return &groupService{
		repo:       repo,
		userRepo:   userRepo,
		recordRepo: recordRepo,
		search:     search,
		sanitizer:  bluemonday.StrictPolicy(),
	}
}

func (s *groupService) Create(ctx context.Context, creatorID uuid.UUID, input CreateGroupInput) (*dto.GroupSummary, error) {
	name := strings.TrimSpace(s.sanitizer.Sanitize(input.Name))
	if len(name) < 2 {
		return nil, apperror.New(http.StatusBadRequest, "group name is too short", apperror.ErrInvalidInput)
	}

	normalized := strings.ToLower(name)
	if _, err := s.repo.FindByNormalizedName(ctx, normalized); err == nil {
		return nil, apperror.New(http.StatusConflict,
			"a group with this name already exists", apperror.ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := s.freshInviteCode(ctx, name)
	if err != nil {
		return nil, err
	}

	group := &model.Group{
		Name:                        name,
		NormalizedName:              normalized,
		CreatedBy:                   creatorID,
		InviteCode:                  code,
		IncludeCreatorInCompetition: input.IncludeCreatorInCompetition,
	}

	if err := s.repo.Create(ctx, group, creatorID); err != nil {
		return nil, err
	}

	if err := s.search.IndexGroup(group, 1); err != nil {
		logger.Log.Warn("failed to index group", logger.Err(err))
	}

	summary := s.toSummary(group, 1)
	return &summary, nil
}

func (s *groupService) Join(ctx context.Context, userID uuid.UUID, input JoinGroupInput) (*dto.GroupSummary, error) {
	code := strings.ToUpper(strings.TrimSpace(input.InviteCode))

	group, err := s.repo.FindByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "invalid invite code", apperror.ErrNotFound)
		}
		return nil, err
	}

	if err := s.repo.AddMember(ctx, group.ID, userID); err != nil {
		return nil, err
	}

	group, err = s.repo.FindByID(ctx, group.ID.String())
	if err != nil {
		return nil, err
	}

	if err := s.search.IndexGroup(group, len(group.Members)); err != nil {
		logger.Log.Warn("failed to reindex group", logger.Err(err))
	}

	summary := s.toSummary(group, len(group.Members))
	return &summary, nil
}

func (s *groupService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.GroupSummary, error) {
	groups, err := s.repo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.GroupSummary, 0, len(groups))
	for i := range groups {
		summaries = append(summaries, s.toSummary(&groups[i], len(groups[i].Members)))
	}

	return summaries, nil
}

func (s *groupService) Detail(ctx context.Context, userID uuid.UUID, groupID string) (*dto.GroupDetail, error) {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(http.StatusNotFound, "group not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !isMember(group, userID) {
		return nil, apperror.New(http.StatusForbidden, "join this group to view it", apperror.ErrForbidden)
	}

	entries, err := s.memberLeaderboard(ctx, group)
	if err != nil {
		return nil, err
	}

	detail := &dto.GroupDetail{
		Group:       s.toSummary(group, len(group.Members)),
		Leaderboard: entries,
	}

	if entry := FindEntry(entries, userID); entry != nil {
		detail.MyRank = &entry.Rank
	} else if userID == group.CreatedBy && !group.CreatorCompetes() {
		detail.AdminOnly = true
	}

	return detail, nil
}

func (s *groupService) Delete(ctx context.Context, userID uuid.UUID, groupID string) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(http.StatusNotFound, "group not found", apperror.ErrNotFound)
		}
		return err
	}

	if group.CreatedBy != userID {
		return apperror.New(http.StatusForbidden, "only the creator can delete a group", apperror.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, groupID); err != nil {
		return err
	}

	if err := s.search.DeleteGroup(groupID); err != nil {
		logger.Log.Warn("failed to remove group from index", logger.Err(err))
	}

	return nil
}

func (s *groupService) Search(ctx context.Context, query string) ([]dto.GroupSearchHit, error) {
	return s.search.SearchGroups(strings.TrimSpace(query))
}

// memberLeaderboard recomputes each member's total from their stored
// daily totals rather than trusting the cached running total. A creator
// who opted out of the competition is left off the board.
func (s *groupService) memberLeaderboard(ctx context.Context, group *model.Group) ([]dto.LeaderboardEntry, error) {
	ids := make([]string, 0, len(group.Members))
	for _, m := range group.Members {
		if m.UserID == group.CreatedBy && !group.CreatorCompetes() {
			continue
		}
		ids = append(ids, m.UserID.String())
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	totals, err := s.recordRepo.SumByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	summed := make(map[uuid.UUID]float64, len(totals))
	for _, t := range totals {
		summed[t.UserID] = t.TotalPoints
	}

	scored := make([]ScoredUser, 0, len(users))
	for _, u := range users {
		scored = append(scored, ScoredUser{
			ID:          u.ID,
			Name:        u.Name,
			Location:    u.Location,
			TotalPoints: summed[u.ID],
		})
	}

	return Rank(scored), nil
}

func isMember(group *model.Group, userID uuid.UUID) bool {
	for _, m := range group.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func (s *groupService) toSummary(group *model.Group, memberCount int) dto.GroupSummary {
	return dto.GroupSummary{
		ID:          group.ID,
		Name:        group.Name,
		InviteCode:  group.InviteCode,
		CreatedBy:   group.CreatedBy,
		MemberCount: memberCount,
		CreatedAt:   group.CreatedAt,
	}
}

// freshInviteCode derives a code from the group name plus a random
// suffix, retrying on the unlikely collision.
func (s *groupService) freshInviteCode(ctx context.Context, name string) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateInviteCode(name)
		if err != nil {
			return "", err
		}

		_, err = s.repo.FindByInviteCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}

	return "", apperror.ErrInternal
}

// generateInviteCode builds codes like "QURAN-7K2M": the first letters of
// the name, then a dash, then four random characters.
func generateInviteCode(name string) (string, error) {
	var prefix strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			prefix.WriteRune(r)
			if prefix.Len() == 6 {
				break
			}
		}
	}
	if prefix.Len() == 0 {
		prefix.WriteString("GROUP")
	}

	suffix := make([]byte, 4)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeCharset))))
		if err != nil {
			return "", err
		}
		suffix[i] = inviteCodeCharset[n.Int64()]
	}

	return prefix.String() + "-" + string(suffix), nil
}
