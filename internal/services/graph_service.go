package services

import (
	"context"
	"fmt"

	"github.com/anonto42/linkup/backend/internal/models"
	"github.com/anonto42/linkup/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

const (
	mutualPreviewLimit = 5
	suggestionLimit    = 20

	defaultLookupConcurrency = 8
)

// GraphService answers read-only questions about the connection graph
type GraphService struct {
	userRepository    repositories.UserRepository
	lookupConcurrency int
}

// NewGraphService creates a new GraphService. lookupConcurrency bounds the
// parallel user lookups of NetworkStats; values below 1 use the default.
func NewGraphService(userRepo repositories.UserRepository, lookupConcurrency int) *GraphService {
	if lookupConcurrency < 1 {
		lookupConcurrency = defaultLookupConcurrency
	}
	return &GraphService{userRepository: userRepo, lookupConcurrency: lookupConcurrency}
}

// MutualConnections counts the users present in both userA's and userB's
// connections. The preview holds the first few in userA's follow order.
func (s *GraphService) MutualConnections(ctx context.Context, userA, userB string) (*models.MutualConnections, error) {
	aID, bID, err := parsePair(userA, userB)
	if err != nil {
		return nil, err
	}
	b, err := loadUser(ctx, s.userRepository, bID, "user not found")
	if err != nil {
		return nil, err
	}
	a, err := loadUser(ctx, s.userRepository, aID, "user not found")
	if err != nil {
		return nil, err
	}

	mutual := a.ConnectionSet().Intersect(b.ConnectionSet())
	preview := mutual
	if len(preview) > mutualPreviewLimit {
		preview = preview[:mutualPreviewLimit]
	}

	byID, err := usersByID(ctx, s.userRepository, preview)
	if err != nil {
		return nil, err
	}
	result := &models.MutualConnections{
		Count:       len(mutual),
		Connections: make([]models.UserCompact, 0, len(preview)),
	}
	for _, id := range preview {
		if u, ok := byID[id]; ok {
			result.Connections = append(result.Connections, u.ToCompact())
		}
	}
	return result, nil
}

// NetworkStats counts userID's direct connections and the distinct users two
// hops away, excluding userID and its direct connections. Any failed lookup
// of a direct connection aborts the computation.
func (s *GraphService) NetworkStats(ctx context.Context, userID string) (*models.NetworkStats, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.userRepository, id, "user not found")
	if err != nil {
		return nil, err
	}

	direct := user.ConnectionSet()
	lists := make([][]primitive.ObjectID, direct.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupConcurrency)
	for i, cid := range direct.IDs() {
		g.Go(func() error {
			c, err := s.userRepository.GetUserByID(gctx, cid)
			if err != nil {
				return fmt.Errorf("load connection %s: %w", cid.Hex(), err)
			}
			lists[i] = c.Connections
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Wrap(ErrInternal, "failed to compute network stats", err)
	}

	network := models.NewConnectionSet(nil)
	for _, list := range lists {
		for _, fof := range list {
			if fof == user.ID || direct.Has(fof) {
				continue
			}
			network.Add(fof)
		}
	}

	return &models.NetworkStats{
		Connections: len(user.Connections),
		NetworkSize: network.Len(),
	}, nil
}

// Suggestions lists users that userID is not connected to, in store order.
// There is no ranking.
func (s *GraphService) Suggestions(ctx context.Context, userID string) ([]models.Suggestion, error) {
	id, err := ParseID(userID, "user")
	if err != nil {
		return nil, err
	}
	user, err := loadUser(ctx, s.userRepository, id, "user not found")
	if err != nil {
		return nil, err
	}

	exclude := append(user.ConnectionSet().IDs(), user.ID)
	users, err := s.userRepository.FindUsers(ctx, exclude, suggestionLimit)
	if err != nil {
		return nil, Wrap(ErrInternal, "failed to load suggestions", err)
	}

	out := make([]models.Suggestion, 0, len(users))
	for i := range users {
		u := &users[i]
		skills := u.Skills
		if skills == nil {
			skills = []string{}
		}
		out = append(out, models.Suggestion{
			UserCompact: u.ToCompact(),
			Headline:    u.Headline,
			Location:    u.Location,
			Skills:      skills,
		})
	}
	return out, nil
}
