package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/r4yfon/flashcarder/internal/domain"
	"github.com/r4yfon/flashcarder/internal/store"
)

// UserResolver reports the user that owns records created by a request.
// A nil ID means records are created without an owner.
type UserResolver interface {
	CurrentUserID(ctx context.Context) *uuid.UUID
}

// StaticUserResolver attributes every request to the same user.
type StaticUserResolver struct {
	id *uuid.UUID
}

var _ UserResolver = (*StaticUserResolver)(nil)

// NewStaticUserResolver returns a resolver for user. A nil user resolves to
// no owner.
func NewStaticUserResolver(user *domain.User) *StaticUserResolver {
	if user == nil {
		return &StaticUserResolver{}
	}
	id := user.ID
	return &StaticUserResolver{id: &id}
}

// CurrentUserID implements UserResolver.
func (r *StaticUserResolver) CurrentUserID(context.Context) *uuid.UUID {
	if r == nil || r.id == nil {
		return nil
	}
	id := *r.id
	return &id
}

// BootstrapDemoUser makes sure the demo user exists and returns a resolver
// that attributes all requests to it. It runs once at process start.
func BootstrapDemoUser(
	ctx context.Context,
	users store.UserStore,
	username string,
	logger *slog.Logger,
) (*StaticUserResolver, error) {
	if users == nil {
		return nil, &ServiceError{Operation: "bootstrap_user", Message: "userStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	user, err := users.EnsureByUsername(ctx, username)
	if err != nil {
		return nil, NewServiceError("bootstrap_user",
			fmt.Sprintf("failed to ensure user %q", username), err)
	}

	logger.Info("demo user ready",
		slog.String("component", "user_service"),
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username))

	return NewStaticUserResolver(user), nil
}
