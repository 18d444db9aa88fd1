package workers

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbadapter "socialite/internal/adapters/database"
	"socialite/internal/adapters/filestore"
	"socialite/internal/config"
	commentEntity "socialite/internal/core/comment"
	identityEntity "socialite/internal/core/identity"
	likeEntity "socialite/internal/core/like"
	postEntity "socialite/internal/core/post"
	profileEntity "socialite/internal/core/profile"
	"socialite/internal/core/scheduledpost"
)

// memoryQueue is a mutex-guarded stand-in for the Redis sorted set.
type memoryQueue struct {
	mu      sync.Mutex
	entries []memoryEntry
}

type memoryEntry struct {
	runAt   time.Time
	payload *scheduledpost.Payload
}

func (q *memoryQueue) Schedule(_ context.Context, runAt time.Time, payload *scheduledpost.Payload) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, memoryEntry{runAt: runAt, payload: payload})
	return nil
}

func (q *memoryQueue) ClaimDue(_ context.Context, now time.Time, limit int64) ([]*scheduledpost.Payload, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var due []*scheduledpost.Payload
	var rest []memoryEntry
	for _, e := range q.entries {
		if !e.runAt.After(now) && int64(len(due)) < limit {
			due = append(due, e.payload)
		} else {
			rest = append(rest, e)
		}
	}
	q.entries = rest
	return due, nil
}

func (q *memoryQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func setupDB(t *testing.T) {
	t.Helper()
	config.Logger = zap.NewNop()

	// Foreign keys are enforced here so a payload whose owner vanished
	// fails the insert instead of creating an orphan row.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.Must(uuid.NewV4()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identityEntity.Identity{},
		&profileEntity.Profile{},
		&profileEntity.FollowEdge{},
		&postEntity.Post{},
		&commentEntity.Comment{},
		&likeEntity.Like{},
	))
	config.DB = db
}

func newWorker(t *testing.T, queue *memoryQueue) (*ScheduledPostWorker, *filestore.FileStore) {
	t.Helper()
	store := filestore.New(t.TempDir())
	w := NewScheduledPostWorker(
		queue,
		dbadapter.NewPostRepositoryDatabase(),
		store,
		100,
		time.Second,
		zap.NewNop(),
	)
	return w, store
}

func createIdentity(t *testing.T, email string) *identityEntity.Identity {
	t.Helper()
	account := &identityEntity.Identity{
		ID:       uuid.Must(uuid.NewV4()),
		Email:    email,
		Password: "hashed",
	}
	require.NoError(t, config.DB.Create(account).Error)
	return account
}

func loadPosts(t *testing.T) []*postEntity.Post {
	t.Helper()
	var posts []*postEntity.Post
	require.NoError(t, config.DB.Find(&posts).Error)
	return posts
}

func TestDrainDueMaterializesScalarPost(t *testing.T) {
	setupDB(t)
	queue := &memoryQueue{}
	w, _ := newWorker(t, queue)

	owner := createIdentity(t, "owner@test.com")
	now := time.Now()

	payload := scheduledpost.NewPayload(owner.ID.String(), "deferred hello", "go", "", nil)
	require.NoError(t, queue.Schedule(context.Background(), now.Add(-time.Minute), payload))

	w.DrainDue(context.Background(), now)

	posts := loadPosts(t)
	require.Len(t, posts, 1)
	assert.Equal(t, "deferred hello", posts[0].Text)
	assert.Equal(t, owner.ID, posts[0].OwnerID)
	require.NotNil(t, posts[0].Hashtag)
	assert.Equal(t, "go", *posts[0].Hashtag)
	assert.Nil(t, posts[0].Image)
	assert.Equal(t, 0, queue.size())
}

func TestDrainDueRestoresImageBytes(t *testing.T) {
	setupDB(t)
	queue := &memoryQueue{}
	w, store := newWorker(t, queue)

	owner := createIdentity(t, "owner@test.com")
	now := time.Now()
	image := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

	payload := scheduledpost.NewPayload(owner.ID.String(), "with image", "", "pic.png", image)
	require.NoError(t, queue.Schedule(context.Background(), now.Add(-time.Minute), payload))

	w.DrainDue(context.Background(), now)

	posts := loadPosts(t)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Image)

	// The bytes that crossed the queue as base64 must land in the media
	// store byte for byte.
	restored, err := os.ReadFile(store.Path(*posts[0].Image))
	require.NoError(t, err)
	assert.Equal(t, image, restored)
}

func TestDrainDueLeavesFuturePayloadsQueued(t *testing.T) {
	setupDB(t)
	queue := &memoryQueue{}
	w, _ := newWorker(t, queue)

	owner := createIdentity(t, "owner@test.com")
	now := time.Now()

	payload := scheduledpost.NewPayload(owner.ID.String(), "not yet", "", "", nil)
	require.NoError(t, queue.Schedule(context.Background(), now.Add(time.Hour), payload))

	w.DrainDue(context.Background(), now)

	assert.Empty(t, loadPosts(t))
	assert.Equal(t, 1, queue.size())
}

func TestDrainDueDropsInvalidOwnerID(t *testing.T) {
	setupDB(t)
	queue := &memoryQueue{}
	w, _ := newWorker(t, queue)

	now := time.Now()
	payload := scheduledpost.NewPayload("not-a-uuid", "orphan", "", "", nil)
	require.NoError(t, queue.Schedule(context.Background(), now.Add(-time.Minute), payload))

	w.DrainDue(context.Background(), now)

	assert.Empty(t, loadPosts(t))
	assert.Equal(t, 0, queue.size(), "an unfixable payload must not be requeued")
}

func TestDrainDueRequeuesOnPersistFailure(t *testing.T) {
	setupDB(t)
	queue := &memoryQueue{}
	w, _ := newWorker(t, queue)

	// Owner row is missing, so the insert fails the foreign key and the
	// payload must come back with a retry delay.
	payload := scheduledpost.NewPayload(uuid.Must(uuid.NewV4()).String(), "homeless", "", "", nil)
	now := time.Now()
	require.NoError(t, queue.Schedule(context.Background(), now.Add(-time.Minute), payload))

	w.DrainDue(context.Background(), now)

	assert.Empty(t, loadPosts(t))
	require.Equal(t, 1, queue.size())
	assert.True(t, queue.entries[0].runAt.After(now), "requeued payload must not be due immediately")
}
