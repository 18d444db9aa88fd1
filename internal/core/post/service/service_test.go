package postapp

import (
	"context"
	"fmt"
	"strings"
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

type fakeScheduler struct {
	calls   int
	runAt   time.Time
	payload *scheduledpost.Payload
}

func (f *fakeScheduler) Schedule(_ context.Context, runAt time.Time, payload *scheduledpost.Payload) error {
	f.calls++
	f.runAt = runAt
	f.payload = payload
	return nil
}

func setupDB(t *testing.T) {
	t.Helper()
	config.Logger = zap.NewNop()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.Must(uuid.NewV4()))
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

func newService(t *testing.T, sched *fakeScheduler) *PostService {
	t.Helper()
	return NewPostService(
		dbadapter.NewPostRepositoryDatabase(),
		dbadapter.NewProfileRepositoryDatabase(),
		sched,
		filestore.New(t.TempDir()),
		time.UTC,
	)
}

func createIdentity(t *testing.T, email, firstName, lastName string) *identityEntity.Identity {
	t.Helper()
	account := &identityEntity.Identity{
		ID:        uuid.Must(uuid.NewV4()),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  "hashed",
	}
	require.NoError(t, config.DB.Create(account).Error)
	return account
}

func createProfileFor(t *testing.T, owner *identityEntity.Identity) *profileEntity.Profile {
	t.Helper()
	p := &profileEntity.Profile{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: owner.ID,
		Gender:  profileEntity.GenderFemale,
	}
	require.NoError(t, config.DB.Create(p).Error)
	return p
}

func follow(t *testing.T, follower, followee *profileEntity.Profile) {
	t.Helper()
	edge := &profileEntity.FollowEdge{
		ID:         uuid.Must(uuid.NewV4()),
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	require.NoError(t, config.DB.Create(edge).Error)
}

func postCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, config.DB.Model(&postEntity.Post{}).Count(&count).Error)
	return count
}

func TestFeedContainsOwnAndFollowedPosts(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")
	u2 := createIdentity(t, "u2@test.com", "U2", "Two")
	u3 := createIdentity(t, "u3@test.com", "U3", "Three")
	p1 := createProfileFor(t, u1)
	p2 := createProfileFor(t, u2)
	createProfileFor(t, u3)

	follow(t, p1, p2)

	_, err := svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: "mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u2.ID.String(), CreatePostInput{Text: "hello"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u3.ID.String(), CreatePostInput{Text: "world"})
	require.NoError(t, err)

	feed, err := svc.List(ctx, u1.ID.String(), "", "")
	require.NoError(t, err)

	var got []string
	for _, p := range feed {
		got = append(got, p.Text)
	}
	assert.ElementsMatch(t, []string{"mine", "hello"}, got, "feed is own posts plus followed authors")
}

func TestAuthorFilterOverridesFeedScope(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")
	u3 := createIdentity(t, "u3@test.com", "U3", "Three")
	createProfileFor(t, u1)
	createProfileFor(t, u3)

	_, err := svc.Create(ctx, u3.ID.String(), CreatePostInput{Text: "world"})
	require.NoError(t, err)

	// u1 does not follow u3, but the author filter is a global search.
	posts, err := svc.List(ctx, u1.ID.String(), u3.ID.String(), "")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "world", posts[0].Text)
}

func TestHashtagFilterIsCaseInsensitiveSubstring(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")
	u2 := createIdentity(t, "u2@test.com", "U2", "Two")
	createProfileFor(t, u1)
	createProfileFor(t, u2)

	golang := "GoLang"
	cooking := "cooking"
	_, err := svc.Create(ctx, u2.ID.String(), CreatePostInput{Text: "a", Hashtag: &golang})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u2.ID.String(), CreatePostInput{Text: "b", Hashtag: &cooking})
	require.NoError(t, err)

	posts, err := svc.List(ctx, u1.ID.String(), "", "golan")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0].Text)
}

func TestFeedAnnotatesCommentAndLikeCounts(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")
	u2 := createIdentity(t, "u2@test.com", "Joe", "Doe")
	createProfileFor(t, u1)

	res, err := svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: "annotated"})
	require.NoError(t, err)

	postID := uuid.FromStringOrNil(res.Post.ID)
	for i := 0; i < 2; i++ {
		require.NoError(t, config.DB.Create(&commentEntity.Comment{
			ID:      uuid.Must(uuid.NewV4()),
			OwnerID: u2.ID,
			PostID:  postID,
			Text:    fmt.Sprintf("comment %d", i),
		}).Error)
	}
	require.NoError(t, config.DB.Create(&likeEntity.Like{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: u2.ID,
		PostID:  postID,
	}).Error)

	got, err := svc.Get(ctx, res.Post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.CommentsCount)
	assert.EqualValues(t, 1, got.LikesCount)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "Joe Doe", got.Comments[0].OwnerName, "comments carry their owner's display name")
}

func TestFutureScheduledTimeDefersCreation(t *testing.T) {
	setupDB(t)
	sched := &fakeScheduler{}
	svc := newService(t, sched)

	u1 := createIdentity(t, "u1@test.com", "U1", "One")

	scheduledFor := time.Now().UTC().Add(10 * time.Minute)
	res, err := svc.Create(context.Background(), u1.ID.String(), CreatePostInput{
		Text:          "later",
		ScheduledTime: scheduledFor.Format(scheduledpost.TimeLayout),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Scheduled)
	assert.Nil(t, res.Post, "a deferred post has no id to report")
	assert.EqualValues(t, 0, postCount(t), "nothing is persisted until the deadline")

	require.Equal(t, 1, sched.calls)
	assert.Equal(t, "later", sched.payload.Text)
	assert.WithinDuration(t, scheduledFor, sched.runAt, time.Minute)
}

func TestPastScheduledTimeCollapsesToImmediate(t *testing.T) {
	setupDB(t)
	sched := &fakeScheduler{}
	svc := newService(t, sched)

	u1 := createIdentity(t, "u1@test.com", "U1", "One")

	res, err := svc.Create(context.Background(), u1.ID.String(), CreatePostInput{
		Text:          "now",
		ScheduledTime: time.Now().UTC().Add(-time.Hour).Format(scheduledpost.TimeLayout),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Post)
	assert.Nil(t, res.Scheduled)
	assert.EqualValues(t, 1, postCount(t))
	assert.Equal(t, 0, sched.calls)
}

func TestScheduledImageTravelsAsBase64(t *testing.T) {
	setupDB(t)
	sched := &fakeScheduler{}
	svc := newService(t, sched)

	u1 := createIdentity(t, "u1@test.com", "U1", "One")
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	_, err := svc.Create(context.Background(), u1.ID.String(), CreatePostInput{
		Text:          "with image",
		ScheduledTime: time.Now().UTC().Add(10 * time.Minute).Format(scheduledpost.TimeLayout),
		Image:         image,
		ImageName:     "pic.jpg",
	})
	require.NoError(t, err)

	require.Equal(t, 1, sched.calls)
	require.True(t, sched.payload.HasImage())
	decoded, err := sched.payload.DecodeImage()
	require.NoError(t, err)
	assert.Equal(t, image, decoded)
}

func TestCreateValidation(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")

	_, err := svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: ""})
	assert.ErrorIs(t, err, ErrTextRequired)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: string(long)})
	assert.ErrorIs(t, err, ErrTextTooLong)

	_, err = svc.Create(ctx, u1.ID.String(), CreatePostInput{
		Text:          "ok",
		ScheduledTime: "tomorrow noon",
	})
	assert.ErrorIs(t, err, scheduledpost.ErrBadTimeFormat)
}

func TestTextLimitCountsCharactersNotBytes(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")

	// 200 two-byte characters: over 255 bytes but within the 255-char limit.
	_, err := svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: strings.Repeat("é", 200)})
	require.NoError(t, err)

	_, err = svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: strings.Repeat("é", 256)})
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	setupDB(t)
	svc := newService(t, &fakeScheduler{})
	ctx := context.Background()

	u1 := createIdentity(t, "u1@test.com", "U1", "One")
	u2 := createIdentity(t, "u2@test.com", "U2", "Two")

	res, err := svc.Create(ctx, u1.ID.String(), CreatePostInput{Text: "mine"})
	require.NoError(t, err)

	text := "hijacked"
	_, err = svc.Update(ctx, u2.ID.String(), res.Post.ID, UpdatePostInput{Text: &text})
	assert.ErrorIs(t, err, ErrNotOwner)
}
