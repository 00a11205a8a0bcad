package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"campusnet/internal/models"
	"campusnet/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the transactional contracts
// of the real repositories (pair uniqueness, row-locked transitions)
// so the service-level state machine can be exercised without MySQL.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) SearchByName(ctx context.Context, query string, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.FullName), strings.ToLower(query)) {
			out = append(out, *u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeFriendshipRepo struct {
	mu    sync.Mutex
	rows  map[string]*models.Friendship
	order []string
	users *fakeUserRepo
}

func newFakeFriendshipRepo(users *fakeUserRepo) *fakeFriendshipRepo {
	return &fakeFriendshipRepo{
		rows:  make(map[string]*models.Friendship),
		users: users,
	}
}

func (r *fakeFriendshipRepo) CreatePending(ctx context.Context, requesterID, receiverID string) (*models.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	low, high := models.NormalizePair(requesterID, receiverID)
	for _, f := range r.rows {
		if f.UserLowID == low && f.UserHighID == high {
			return nil, gorm.ErrDuplicatedKey
		}
	}

	f := &models.Friendship{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		UserLowID:   low,
		UserHighID:  high,
		Status:      models.FriendshipStatusPending,
		CreatedAt:   time.Now(),
	}
	r.rows[f.ID] = f
	r.order = append(r.order, f.ID)
	cp := *f
	return &cp, nil
}

func (r *fakeFriendshipRepo) Transition(ctx context.Context, id string, fn func(f *models.Friendship) (repository.TransitionOp, error)) (*models.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	cp := *row
	op, err := fn(&cp)
	if err != nil {
		return nil, err
	}

	switch op {
	case repository.TransitionUpdate:
		row.Status = cp.Status
	case repository.TransitionDelete:
		delete(r.rows, id)
	}
	return &cp, nil
}

func (r *fakeFriendshipRepo) FindByID(ctx context.Context, id string) (*models.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFriendshipRepo) FindByPair(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	low, high := models.NormalizePair(userA, userB)
	for _, f := range r.rows {
		if f.UserLowID == low && f.UserHighID == high {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeFriendshipRepo) ListAccepted(ctx context.Context, userID string) ([]models.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Friendship
	for _, id := range r.order {
		f, ok := r.rows[id]
		if !ok {
			continue
		}
		if f.Status == models.FriendshipStatusAccepted && f.Involves(userID) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFriendshipRepo) ListPendingIncoming(ctx context.Context, userID string) ([]models.Friendship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Friendship
	for _, id := range r.order {
		f, ok := r.rows[id]
		if !ok {
			continue
		}
		if f.Status == models.FriendshipStatusPending && f.ReceiverID == userID {
			cp := *f
			if u, ok := r.users.users[f.RequesterID]; ok {
				cp.Requester = *u
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	rows []*models.Notification
	seq  int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	r.seq++
	n.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	cp := *n
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeNotificationRepo) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, userID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	// Most recent first: rows append in creation order.
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.rows {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakePostRepo struct {
	mu       sync.Mutex
	posts    map[string]*models.Post
	likes    []*models.Like
	comments []*models.Comment
	users    *fakeUserRepo
}

func newFakePostRepo(users *fakeUserRepo) *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[string]*models.Post),
		users: users,
	}
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) ListRecent(ctx context.Context, limit int) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, userID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) ListLikedBy(ctx context.Context, userID string) ([]models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Post
	for _, l := range r.likes {
		if l.UserID == userID {
			if p, ok := r.posts[l.PostID]; ok {
				out = append(out, *p)
			}
		}
	}
	return out, nil
}

func (r *fakePostRepo) CountLikes(ctx context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.likes {
		if l.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) CountComments(ctx context.Context, postID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, c := range r.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *fakePostRepo) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == userID && l.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePostRepo) CreateLike(ctx context.Context, like *models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.likes {
		if l.UserID == like.UserID && l.PostID == like.PostID {
			return gorm.ErrDuplicatedKey
		}
	}
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	like.CreatedAt = time.Now()
	cp := *like
	r.likes = append(r.likes, &cp)
	return nil
}

func (r *fakePostRepo) DeleteLike(ctx context.Context, userID, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.likes {
		if l.UserID == userID && l.PostID == postID {
			r.likes = append(r.likes[:i], r.likes[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakePostRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	cp := *comment
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *fakePostRepo) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			if u, ok := r.users.users[c.UserID]; ok {
				cp.User = *u
			}
			out = append(out, cp)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu   sync.Mutex
	rows []*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()
	cp := *msg
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeMessageRepo) ListBetween(ctx context.Context, userA, userB string, limit int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for _, m := range r.rows {
		sameAB := m.SenderID == userA && m.ReceiverID == userB
		sameBA := m.SenderID == userB && m.ReceiverID == userA
		if sameAB || sameBA {
			out = append(out, *m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// fakePublisher records published notifications.
type fakePublisher struct {
	mu        sync.Mutex
	published []models.Notification
}

func (p *fakePublisher) PublishNotification(n *models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, *n)
}

func (p *fakePublisher) Close() error { return nil }

// newTestUser registers a user directly through the fake repo.
func newTestUser(t *testing.T, repo *fakeUserRepo, name string) *models.User {
	t.Helper()
	u := &models.User{FullName: name, Email: strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@campusnet.dev"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create test user %s: %v", name, err)
	}
	return u
}
