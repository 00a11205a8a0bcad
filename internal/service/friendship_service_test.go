package service

import (
	"context"
	"testing"

	"campusnet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type friendshipFixture struct {
	users       *fakeUserRepo
	friendships *fakeFriendshipRepo
	notes       *fakeNotificationRepo
	publisher   *fakePublisher
	svc         *FriendshipService
	notifier    *NotificationService
}

func newFriendshipFixture() *friendshipFixture {
	users := newFakeUserRepo()
	friendships := newFakeFriendshipRepo(users)
	notes := newFakeNotificationRepo()
	publisher := &fakePublisher{}
	notifier := NewNotificationService(notes, users, publisher)
	return &friendshipFixture{
		users:       users,
		friendships: friendships,
		notes:       notes,
		publisher:   publisher,
		svc:         NewFriendshipService(friendships, users, notifier),
		notifier:    notifier,
	}
}

func TestFriendshipRequest(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusPending, f.Status)
	assert.Equal(t, alice.ID, f.RequesterID)
	assert.Equal(t, bruno.ID, f.ReceiverID)

	// Projections differ by viewpoint.
	status, err := fx.svc.StatusBetween(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingOutgoing, status)

	status, err = fx.svc.StatusBetween(ctx, bruno.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingIncoming, status)

	// The receiver gets a friend-request notification.
	notes, err := fx.notifier.ListFor(ctx, bruno.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationFriendRequest, notes[0].Type)
	assert.Equal(t, "Alice Andrade", notes[0].SenderName)

	// The event also went out on the bus.
	assert.Len(t, fx.publisher.published, 1)
}

func TestFriendshipRequestSelf(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")

	_, err := fx.svc.Request(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestFriendshipRequestUnknownReceiver(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")

	_, err := fx.svc.Request(ctx, alice.ID, "no-such-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFriendshipRequestDuplicateEitherDirection(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	_, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	// Same direction again.
	_, err = fx.svc.Request(ctx, alice.ID, bruno.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Reverse direction hits the same pair.
	_, err = fx.svc.Request(ctx, bruno.ID, alice.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Still only one notification from the original request.
	notes, err := fx.notifier.ListFor(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestFriendshipAccept(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	accepted, err := fx.svc.Accept(ctx, f.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipStatusAccepted, accepted.Status)

	// Accepted is symmetric.
	for _, viewer := range []string{alice.ID, bruno.ID} {
		other := bruno.ID
		if viewer == bruno.ID {
			other = alice.ID
		}
		status, err := fx.svc.StatusBetween(ctx, viewer, other)
		require.NoError(t, err)
		assert.Equal(t, models.RelationAccepted, status)
	}

	// The requester hears back.
	notes, err := fx.notifier.ListFor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotificationFriendAccept, notes[0].Type)
	assert.Equal(t, "Bruno Barros", notes[0].SenderName)
}

func TestFriendshipAcceptGuards(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	// The requester cannot accept their own request.
	_, err = fx.svc.Accept(ctx, f.ID, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Unknown row.
	_, err = fx.svc.Accept(ctx, "no-such-friendship", bruno.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Accepting twice: the second call is no longer pending.
	_, err = fx.svc.Accept(ctx, f.ID, bruno.ID)
	require.NoError(t, err)
	_, err = fx.svc.Accept(ctx, f.ID, bruno.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFriendshipReject(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	// Only the receiver may reject.
	err = fx.svc.Reject(ctx, f.ID, alice.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, fx.svc.Reject(ctx, f.ID, bruno.ID))

	// Back to absent, and the requester was never told.
	status, err := fx.svc.StatusBetween(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationNone, status)

	notes, err := fx.notifier.ListFor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	// A fresh request is allowed after rejection.
	_, err = fx.svc.Request(ctx, alice.ID, bruno.ID)
	assert.NoError(t, err)
}

func TestFriendshipBreak(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")
	carla := newTestUser(t, fx.users, "Carla Costa")

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	// Pending cannot be broken, only rejected.
	err = fx.svc.Break(ctx, f.ID, bruno.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = fx.svc.Accept(ctx, f.ID, bruno.ID)
	require.NoError(t, err)

	// Outsiders cannot break a friendship they are not part of.
	err = fx.svc.Break(ctx, f.ID, carla.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Either party may break; here the requester does.
	require.NoError(t, fx.svc.Break(ctx, f.ID, alice.ID))

	status, err := fx.svc.StatusBetween(ctx, bruno.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationNone, status)
}

// Full walk through the lifecycle: request, accept, break, request again.
func TestFriendshipLifecycle(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	_, err = fx.svc.Accept(ctx, f.ID, bruno.ID)
	require.NoError(t, err)

	friends, err := fx.svc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, bruno.ID, friends[0].ID)

	require.NoError(t, fx.svc.Break(ctx, f.ID, bruno.ID))

	friends, err = fx.svc.Friends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	// The pair can start over; this time Bruno asks.
	f2, err := fx.svc.Request(ctx, bruno.ID, alice.ID)
	require.NoError(t, err)
	assert.NotEqual(t, f.ID, f2.ID)

	status, err := fx.svc.StatusBetween(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingIncoming, status)
}

func TestFriendshipRelation(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")

	rel, err := fx.svc.Relation(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, rel.IsSelf)

	rel, err = fx.svc.Relation(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationNone, rel.Status)
	assert.Empty(t, rel.FriendshipID)

	f, err := fx.svc.Request(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)

	rel, err = fx.svc.Relation(ctx, alice.ID, bruno.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingOutgoing, rel.Status)
	assert.Equal(t, f.ID, rel.FriendshipID)
	assert.True(t, rel.RequestedByViewer)

	rel, err = fx.svc.Relation(ctx, bruno.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RelationPendingIncoming, rel.Status)
	assert.False(t, rel.RequestedByViewer)
}

func TestFriendshipPendingIncoming(t *testing.T) {
	ctx := context.Background()
	fx := newFriendshipFixture()
	alice := newTestUser(t, fx.users, "Alice Andrade")
	bruno := newTestUser(t, fx.users, "Bruno Barros")
	carla := newTestUser(t, fx.users, "Carla Costa")

	_, err := fx.svc.Request(ctx, bruno.ID, alice.ID)
	require.NoError(t, err)
	_, err = fx.svc.Request(ctx, carla.ID, alice.ID)
	require.NoError(t, err)

	pending, err := fx.svc.PendingIncoming(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	names := []string{pending[0].FullName, pending[1].FullName}
	assert.Contains(t, names, "Bruno Barros")
	assert.Contains(t, names, "Carla Costa")

	// Outgoing requests do not show up as incoming for the requester.
	pending, err = fx.svc.PendingIncoming(ctx, bruno.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
