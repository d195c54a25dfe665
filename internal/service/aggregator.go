package service

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"adminpanel/internal/models"

	"golang.org/x/sync/errgroup"
)

type UserSource interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

type PostSource interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CountPostsPerUser(ctx context.Context) ([]models.PostCount, error)
}

// AggregatorService joins data from the users and posts services into the
// denormalized views the admin UI renders. Either upstream failing fails the
// whole call; no partial result is returned.
type AggregatorService interface {
	UsersWithCounts(ctx context.Context) ([]models.UserWithCount, error)
	PostsEnriched(ctx context.Context) ([]models.EnrichedPost, error)
}

type aggregatorService struct {
	users   UserSource
	posts   PostSource
	timeout time.Duration
}

func NewAggregatorService(users UserSource, posts PostSource, timeout time.Duration) AggregatorService {
	return &aggregatorService{users: users, posts: posts, timeout: timeout}
}

func (a *aggregatorService) UsersWithCounts(ctx context.Context) ([]models.UserWithCount, error) {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()

	var users []models.User
	var counts []models.PostCount

	err := fetchBoth(ctx,
		func(ctx context.Context) (err error) {
			users, err = a.users.ListUsers(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			counts, err = a.posts.CountPostsPerUser(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return MergeUsersWithCounts(users, counts), nil
}

func (a *aggregatorService) PostsEnriched(ctx context.Context) ([]models.EnrichedPost, error) {
	ctx, cancel := a.withDeadline(ctx)
	defer cancel()

	var posts []models.Post
	var users []models.User

	err := fetchBoth(ctx,
		func(ctx context.Context) (err error) {
			posts, err = a.posts.ListPosts(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			users, err = a.users.ListUsers(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}

	return EnrichPosts(posts, users), nil
}

func (a *aggregatorService) withDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

// fetchBoth runs first and second concurrently and waits for both. The first
// failure cancels the other call. The returned error is the first one in call
// order that was not caused by that cancellation.
func fetchBoth(ctx context.Context, first, second func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)

	var errs [2]error
	// 1-based index of the call that failed first; 0 while none has.
	var leader atomic.Int32

	run := func(i int, fn func(context.Context) error) func() error {
		return func() error {
			errs[i] = fn(gctx)
			if errs[i] != nil {
				leader.CompareAndSwap(0, int32(i+1))
			}
			return errs[i]
		}
	}
	g.Go(run(0, first))
	g.Go(run(1, second))

	groupErr := g.Wait()
	if groupErr == nil {
		return nil
	}

	lead := int(leader.Load()) - 1
	for i, err := range errs {
		if err == nil {
			continue
		}
		if i != lead && cancelledBySibling(ctx, gctx, err) {
			continue
		}
		return err
	}
	return groupErr
}

// cancelledBySibling reports whether err only ended because the group context
// was cancelled. The HTTP client wraps the cancel cause (the sibling's error)
// rather than returning context.Canceled. Parent deadlines do not count.
func cancelledBySibling(parent, group context.Context, err error) bool {
	if parent.Err() != nil || group.Err() == nil {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.Cause(group))
}

// MergeUsersWithCounts keeps the order of users; users with no count row get 0.
func MergeUsersWithCounts(users []models.User, counts []models.PostCount) []models.UserWithCount {
	countByUser := make(map[int64]int64, len(counts))
	for _, c := range counts {
		countByUser[c.UserID] = c.Count
	}

	merged := make([]models.UserWithCount, 0, len(users))
	for _, u := range users {
		merged = append(merged, models.UserWithCount{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			PostCount: countByUser[u.ID],
		})
	}
	return merged
}

// EnrichPosts keeps the order of posts; a post whose author is not in users
// gets a nil User.
func EnrichPosts(posts []models.Post, users []models.User) []models.EnrichedPost {
	userByID := make(map[int64]models.UserSummary, len(users))
	for _, u := range users {
		userByID[u.ID] = models.UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
	}

	enriched := make([]models.EnrichedPost, 0, len(posts))
	for _, p := range posts {
		ep := models.EnrichedPost{
			ID:      p.ID,
			Title:   p.Title,
			Content: p.Content,
		}
		if u, ok := userByID[p.UserID]; ok {
			ep.User = &u
		}
		enriched = append(enriched, ep)
	}
	return enriched
}
