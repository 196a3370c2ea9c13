// Package contest implements the photo contest engine: phase
// transitions, submissions, moderation, voting and the leaderboard.
package contest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/snapvote/snapvote/internal/cache"
	"github.com/snapvote/snapvote/internal/config"
	"github.com/snapvote/snapvote/internal/database"
	"github.com/snapvote/snapvote/internal/imagestore"
	"github.com/snapvote/snapvote/internal/notify/email"
	"github.com/snapvote/snapvote/internal/policy"
	"github.com/snapvote/snapvote/internal/scheduler"
)

// Validation and state errors reported back to callers. No state is
// mutated when any of these are returned.
var (
	ErrTitleRequired     = errors.New("photo title is required")
	ErrThemeRequired     = errors.New("a contest theme must be selected")
	ErrUnknownTheme      = errors.New("unknown contest theme")
	ErrImageRequired     = errors.New("an image file is required")
	ErrImageInvalid      = errors.New("the uploaded file is not a valid image")
	ErrQuotaExceeded     = errors.New("maximum photo upload limit reached")
	ErrThemeTaken        = errors.New("a photo for this theme was already submitted")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrNotPending        = errors.New("photo is not pending review")
	ErrNotApproved       = errors.New("photo is not approved")
	ErrInvalidTransition = errors.New("invalid contest phase transition")
)

const (
	galleryCachePrefix     = "gallery-"
	leaderboardCachePrefix = "leaderboard-"
)

// Engine coordinates the contest stores and collaborators. All
// state-changing operations run a full read-modify-write against the
// database; the database layer provides the per-operation transaction.
type Engine struct {
	cfg       *config.Config
	db        database.DB
	images    *imagestore.Images
	guard     *policy.DiskUsageGuard
	notifier  *email.NotificationService
	scheduler *scheduler.Scheduler

	galleryCache     *cache.PrefixedCache[[]database.Photo]
	leaderboardCache *cache.PrefixedCache[[]LeaderboardRow]
}

// New creates the contest engine and registers its maintenance jobs.
func New(cfg *config.Config, db database.DB) (*Engine, error) {
	images, err := imagestore.New(cfg.Images)
	if err != nil {
		return nil, fmt.Errorf("failed to create image store: %w", err)
	}

	sched, err := scheduler.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	cacheInstance := cache.NewInstanceByType(cfg.Cache)
	ttl := cache.TTL(cfg.Cache)

	e := &Engine{
		cfg:              cfg,
		db:               db,
		images:           images,
		guard:            policy.NewDiskUsageGuard(cfg.DiskPolicy, cfg.Images.Dir),
		notifier:         email.New(cfg.Email, cfg.ServerURL),
		scheduler:        sched,
		galleryCache:     cache.NewPrefixedCache[[]database.Photo](cacheInstance, galleryCachePrefix, ttl),
		leaderboardCache: cache.NewPrefixedCache[[]LeaderboardRow](cacheInstance, leaderboardCachePrefix, ttl),
	}

	if err := e.setupJobs(); err != nil {
		return nil, err
	}

	return e, nil
}

// Run starts the engine's background jobs and blocks until the context
// is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e.scheduler.Start()
	<-ctx.Done()
	return nil
}

// Close stops the engine and cleans up resources.
func (e *Engine) Close() error {
	return e.scheduler.Stop()
}

// Images exposes the image store for the HTTP image handler.
func (e *Engine) Images() *imagestore.Images {
	return e.images
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Scheduler returns the scheduler instance for admin introspection.
func (e *Engine) Scheduler() *scheduler.Scheduler {
	return e.scheduler
}

func (e *Engine) setupJobs() error {
	if err := e.scheduler.AddCronJob(
		"orphan_sweep",
		"Orphaned Asset Sweep",
		e.cfg.OrphanSweepSchedule,
		e.runOrphanSweep,
	); err != nil {
		return fmt.Errorf("failed to add orphan sweep job: %w", err)
	}

	if err := e.scheduler.AddCronJob(
		"cache_flush",
		"Cache Flush",
		e.cfg.CacheFlushSchedule,
		func(ctx context.Context) error {
			e.invalidateCaches(ctx)
			return nil
		},
	); err != nil {
		return fmt.Errorf("failed to add cache flush job: %w", err)
	}

	return nil
}

// runOrphanSweep removes local image files no photo row references,
// along with stale temp files from interrupted writes.
func (e *Engine) runOrphanSweep(ctx context.Context) error {
	photos, err := e.db.GetAllPhotos(ctx)
	if err != nil {
		return fmt.Errorf("failed to load photos for sweep: %w", err)
	}

	known := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		if p.Filename != "" {
			known[p.Filename] = struct{}{}
		}
	}

	return e.images.Local().Sweep(known, time.Hour)
}

func (e *Engine) invalidateCaches(ctx context.Context) {
	if err := e.galleryCache.Clear(ctx); err != nil {
		log.Debug("failed to clear gallery cache", "error", err)
	}
	if err := e.leaderboardCache.Clear(ctx); err != nil {
		log.Debug("failed to clear leaderboard cache", "error", err)
	}
}

// Stats summarizes the contest for the stats command and the admin
// dashboard.
type Stats struct {
	Users          int `json:"users"`
	PendingPhotos  int `json:"pendingPhotos"`
	ApprovedPhotos int `json:"approvedPhotos"`
	RejectedPhotos int `json:"rejectedPhotos"`
	Votes          int `json:"votes"`
}

func (e *Engine) GetStats(ctx context.Context) (*Stats, error) {
	users, err := e.db.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	photos, err := e.db.GetAllPhotos(ctx)
	if err != nil {
		return nil, err
	}
	votes, err := e.db.GetAllVotes(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Users: len(users),
		Votes: len(votes),
	}
	for _, p := range photos {
		switch p.Status {
		case database.PhotoStatusPending:
			stats.PendingPhotos++
		case database.PhotoStatusApproved:
			stats.ApprovedPhotos++
		case database.PhotoStatusRejected:
			stats.RejectedPhotos++
		}
	}
	return stats, nil
}
