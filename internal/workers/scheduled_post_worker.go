package workers

import (
	"context"
	"os"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	postEntity "socialite/internal/core/post"
	"socialite/internal/core/scheduledpost"
	postPort "socialite/internal/ports/post"
	schedulerPort "socialite/internal/ports/scheduler"
	"socialite/internal/ports/storage"
)

const retryDelay = 30 * time.Second

// ScheduledPostWorker drains the delayed queue and materializes posts whose
// deadline has passed. Failures never reach the submitting client — the
// request that scheduled the post returned long ago — so the worker either
// retries or drops, and only logs.
type ScheduledPostWorker struct {
	Queue     schedulerPort.DelayedQueue
	PostRepo  postPort.PostRepository
	Store     storage.ImageStore
	BatchSize int
	Interval  time.Duration
	Logger    *zap.Logger
}

func NewScheduledPostWorker(
	queue schedulerPort.DelayedQueue,
	postRepo postPort.PostRepository,
	store storage.ImageStore,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *ScheduledPostWorker {
	return &ScheduledPostWorker{
		Queue:     queue,
		PostRepo:  postRepo,
		Store:     store,
		BatchSize: batchSize,
		Interval:  interval,
		Logger:    logger,
	}
}

func (w *ScheduledPostWorker) Run(ctx context.Context) {
	w.Logger.Info("🚀 ScheduledPostWorker started")
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 ScheduledPostWorker stopped")
			return
		default:
			w.DrainDue(ctx, time.Now())
			time.Sleep(w.Interval)
		}
	}
}

// DrainDue claims every payload due at now and materializes each one.
// Payloads due at the same instant may run in either order.
func (w *ScheduledPostWorker) DrainDue(ctx context.Context, now time.Time) {
	due, err := w.Queue.ClaimDue(ctx, now, int64(w.BatchSize))
	if err != nil {
		w.Logger.Error("❌ Error claiming due scheduled posts:", zap.Error(err))
		return
	}

	for _, payload := range due {
		if err := w.materialize(ctx, payload); err != nil {
			w.Logger.Error("❌ Error materializing scheduled post, requeueing:",
				zap.String("ownerID", payload.OwnerID), zap.Error(err))
			if rerr := w.Queue.Schedule(ctx, now.Add(retryDelay), payload); rerr != nil {
				w.Logger.Error("❌ Could not requeue scheduled post:", zap.Error(rerr))
			}
		}
	}
}

func (w *ScheduledPostWorker) materialize(ctx context.Context, payload *scheduledpost.Payload) error {
	ownerID, err := uuid.FromString(payload.OwnerID)
	if err != nil {
		// Not retryable; drop it.
		w.Logger.Error("❌ Scheduled post has invalid owner id, dropping:",
			zap.String("ownerID", payload.OwnerID), zap.Error(err))
		return nil
	}

	p := &postEntity.Post{
		ID:      uuid.Must(uuid.NewV4()),
		OwnerID: ownerID,
		Text:    payload.Text,
	}
	if payload.Hashtag != "" {
		hashtag := payload.Hashtag
		p.Hashtag = &hashtag
	}

	if payload.HasImage() {
		data, err := payload.DecodeImage()
		if err != nil {
			// A corrupt base64 body cannot be fixed by retrying; drop it.
			w.Logger.Error("❌ Scheduled post image failed to decode, dropping payload:",
				zap.String("ownerID", payload.OwnerID), zap.Error(err))
			return nil
		}

		stored, err := w.restoreImage(payload.ImageName, data)
		if err != nil {
			return err
		}
		p.Image = &stored
	}

	if _, err := w.PostRepo.Create(ctx, p); err != nil {
		if p.Image != nil {
			w.Store.Remove(*p.Image)
		}
		return err
	}

	w.Logger.Info("✅ Scheduled post materialized",
		zap.String("postID", p.ID.String()),
		zap.String("ownerID", payload.OwnerID),
	)
	return nil
}

// restoreImage writes the decoded bytes to a transient file, hands the open
// handle to the media store, then deletes the transient copy. Each payload
// owns its own copy, so no cleanup is coordinated across tasks.
func (w *ScheduledPostWorker) restoreImage(name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "scheduled-post-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return "", err
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		return "", err
	}

	return w.Store.Save(name, tmp)
}
