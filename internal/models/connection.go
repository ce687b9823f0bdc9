package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ConnectionSet is an insertion-ordered set of user ids. Iteration follows the
// order ids were first added; membership checks are constant time.
type ConnectionSet struct {
	order []primitive.ObjectID
	index map[primitive.ObjectID]struct{}
}

// NewConnectionSet builds a set from ids, keeping the first occurrence of duplicates.
func NewConnectionSet(ids []primitive.ObjectID) *ConnectionSet {
	s := &ConnectionSet{
		order: make([]primitive.ObjectID, 0, len(ids)),
		index: make(map[primitive.ObjectID]struct{}, len(ids)),
	}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id and reports whether it was not already present.
func (s *ConnectionSet) Add(id primitive.ObjectID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *ConnectionSet) Remove(id primitive.ObjectID) bool {
	if _, ok := s.index[id]; !ok {
		return false
	}
	delete(s.index, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *ConnectionSet) Has(id primitive.ObjectID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *ConnectionSet) Len() int {
	return len(s.order)
}

// IDs returns a copy of the ids in insertion order.
func (s *ConnectionSet) IDs() []primitive.ObjectID {
	out := make([]primitive.ObjectID, len(s.order))
	copy(out, s.order)
	return out
}

// Intersect returns the ids of s that are also in other, in s's order.
func (s *ConnectionSet) Intersect(other *ConnectionSet) []primitive.ObjectID {
	var out []primitive.ObjectID
	for _, id := range s.order {
		if other.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

// UserCompact is the minimal public view of a user
type UserCompact struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

// ConnectionSummary is a user as listed in someone's connections
type ConnectionSummary struct {
	UserCompact
	Headline string `json:"headline"`
}

// Suggestion is a user proposed as a new connection
type Suggestion struct {
	UserCompact
	Headline string   `json:"headline"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
}

// MutualConnections is the overlap between two users' connections
type MutualConnections struct {
	Count       int           `json:"count"`
	Connections []UserCompact `json:"connections"`
}

// NetworkStats summarises a user's first and second degree network
type NetworkStats struct {
	Connections int `json:"connections"`
	NetworkSize int `json:"networkSize"`
}

// FollowResult is the outcome of a follow
type FollowResult struct {
	Following bool `json:"following"`
	Notified  bool `json:"notified"`
}
