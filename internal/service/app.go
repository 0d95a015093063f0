package service

import (
	"context"
	"fmt"
)

// Pinger reports reachability of a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter reports the number of records in a collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Health describes the liveness of the two backing stores.
type Health struct {
	TokenStore bool `json:"redis"`
	Database   bool `json:"db"`
}

// Stats describes the totals exposed on the stats endpoint.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// AppService answers the status and stats endpoints.
type AppService struct {
	tokenStore Pinger
	database   Pinger
	users      Counter
	entries    Counter
}

// NewAppService constructs an AppService over the given stores.
func NewAppService(tokenStore, database Pinger, users, entries Counter) *AppService {
	return &AppService{
		tokenStore: tokenStore,
		database:   database,
		users:      users,
		entries:    entries,
	}
}

// Status pings both stores. It never fails; an unreachable store just
// reads as false.
func (s *AppService) Status(ctx context.Context) Health {
	return Health{
		TokenStore: s.tokenStore.Ping(ctx) == nil,
		Database:   s.database.Ping(ctx) == nil,
	}
}

// Stats returns the totals of users and entries.
func (s *AppService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count users: %w", err)
	}
	files, err := s.entries.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count entries: %w", err)
	}
	return Stats{Users: users, Files: files}, nil
}
