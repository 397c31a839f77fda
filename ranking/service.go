package ranking

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"stamprally-backend/models"
)

type Service struct {
	repo    Repository
	friends FriendSource
	now     func() time.Time
}

func NewService(repo Repository, friends FriendSource) *Service {
	return &Service{repo: repo, friends: friends, now: time.Now}
}

type CalcResult struct {
	PeriodType   PeriodType `json:"period_type"`
	Period       string     `json:"period"`
	PeriodKey    string     `json:"period_key"`
	RankingCount int        `json:"rankings_count"`
}

// Calculate recomputes and persists the leaderboard for the period
// containing "now". The full entry set for the period key is replaced.
// Ties are broken by participant id ascending so repeated runs over the
// same collections produce identical leaderboards.
func (s *Service) Calculate(ctx context.Context, pt PeriodType) (*CalcResult, error) {
	now := s.now()

	label, err := Label(pt, now)
	if err != nil {
		return nil, err
	}
	start, err := Start(pt, now)
	if err != nil {
		return nil, err
	}
	periodKey := Key(pt, label)

	log.Printf("Calculating rankings: type=%s period=%s start=%s", pt, label, start.Format(time.RFC3339))

	counts, err := s.repo.CountCollectionsSince(ctx, start.Unix())
	if err != nil {
		return nil, fmt.Errorf("aggregate collections: %w", err)
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].StampCount != counts[j].StampCount {
			return counts[i].StampCount > counts[j].StampCount
		}
		return counts[i].UserID < counts[j].UserID
	})

	entries := make([]models.RankingEntry, 0, len(counts))
	for i, c := range counts {
		entries = append(entries, models.RankingEntry{
			Rank:        i + 1,
			UserID:      c.UserID,
			StampCount:  c.StampCount,
			DisplayName: c.DisplayName,
		})
	}

	if err := s.repo.ReplaceLeaderboard(ctx, periodKey, entries, now.Unix()); err != nil {
		return nil, fmt.Errorf("replace leaderboard %s: %w", periodKey, err)
	}

	return &CalcResult{
		PeriodType:   pt,
		Period:       label,
		PeriodKey:    periodKey,
		RankingCount: len(entries),
	}, nil
}

// Rankings returns the persisted leaderboard for a period. An empty label
// selects the current period.
func (s *Service) Rankings(ctx context.Context, pt PeriodType, label string) (string, []models.RankingEntry, error) {
	if label == "" {
		var err error
		label, err = Label(pt, s.now())
		if err != nil {
			return "", nil, err
		}
	} else if pt != Weekly && pt != Monthly {
		return "", nil, ErrUnknownPeriodType
	}

	entries, err := s.repo.GetLeaderboard(ctx, Key(pt, label))
	if err != nil {
		return "", nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return label, entries, nil
}

// FriendRankings filters a persisted leaderboard to the participant's
// active friends plus themself and re-ranks the subset densely from 1,
// preserving the full leaderboard's order.
func (s *Service) FriendRankings(ctx context.Context, userID string, pt PeriodType, label string) (string, []models.RankingEntry, error) {
	if label == "" {
		var err error
		label, err = Label(pt, s.now())
		if err != nil {
			return "", nil, err
		}
	} else if pt != Weekly && pt != Monthly {
		return "", nil, ErrUnknownPeriodType
	}

	friendIDs, err := s.friends.GetActiveFriendIDs(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("load friends of %s: %w", userID, err)
	}

	include := make(map[string]bool, len(friendIDs)+1)
	for _, id := range friendIDs {
		include[id] = true
	}
	include[userID] = true

	all, err := s.repo.GetLeaderboard(ctx, Key(pt, label))
	if err != nil {
		return "", nil, fmt.Errorf("read leaderboard: %w", err)
	}

	filtered := make([]models.RankingEntry, 0)
	for _, e := range all {
		if !include[e.UserID] {
			continue
		}
		e.Rank = len(filtered) + 1
		e.IsSelf = e.UserID == userID
		filtered = append(filtered, e)
	}

	return label, filtered, nil
}

type Comparison struct {
	User         models.UserComparison `json:"user"`
	Friend       models.UserComparison `json:"friend"`
	RankDiff     int                   `json:"rank_diff"`
	UserIsHigher bool                  `json:"user_is_higher"`
}

// Compare reports the all-time stamp counts of two participants.
func (s *Service) Compare(ctx context.Context, userID, friendID string) (*Comparison, error) {
	user, err := s.comparisonFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	friend, err := s.comparisonFor(ctx, friendID)
	if err != nil {
		return nil, err
	}

	diff := user.StampCount - friend.StampCount
	return &Comparison{
		User:         user,
		Friend:       friend,
		RankDiff:     diff,
		UserIsHigher: diff > 0,
	}, nil
}

func (s *Service) comparisonFor(ctx context.Context, userID string) (models.UserComparison, error) {
	name, err := s.repo.GetDisplayName(ctx, userID)
	if err != nil {
		return models.UserComparison{}, fmt.Errorf("load user %s: %w", userID, err)
	}
	count, err := s.repo.CountUserStamps(ctx, userID)
	if err != nil {
		return models.UserComparison{}, fmt.Errorf("count stamps for %s: %w", userID, err)
	}
	return models.UserComparison{UserID: userID, DisplayName: name, StampCount: count}, nil
}
