package jobs

import (
	"context"
	"path"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"afisha/internal/storage"
)

type SessionPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

type PosterIndex interface {
	PosterRefs(ctx context.Context) ([]string, error)
}

// Scheduler runs the maintenance that request handlers deliberately leave
// alone: expired session rows and poster files no listing references anymore.
type Scheduler struct {
	cron     *cron.Cron
	sessions SessionPruner
	listings PosterIndex
	store    storage.PosterStore
	log      zerolog.Logger
}

func NewScheduler(sessions SessionPruner, listings PosterIndex, store storage.PosterStore, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		sessions: sessions,
		listings: listings,
		store:    store,
		log:      log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * * *", s.pruneSessions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 3 * * *", s.sweepPosters); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduling and waits briefly for a running job to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) pruneSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("prune sessions failed")
		return
	}
	if deleted > 0 {
		s.log.Info().Int64("deleted", deleted).Msg("expired sessions pruned")
	}
}

// sweepPosters deletes stored poster files that no listing references.
// Handlers never remove files on edit or delete; this sweep is the cleanup.
func (s *Scheduler) sweepPosters() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.SweepPosters(ctx); err != nil {
		s.log.Error().Err(err).Msg("poster sweep failed")
	}
}

func (s *Scheduler) SweepPosters(ctx context.Context) error {
	refs, err := s.listings.PosterRefs(ctx)
	if err != nil {
		return err
	}

	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[path.Base(ref)] = struct{}{}
	}

	stored, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	removed := 0
	for _, name := range stored {
		if _, ok := referenced[name]; ok {
			continue
		}
		if err := s.store.Remove(ctx, name); err != nil {
			s.log.Warn().Err(err).Str("name", name).Msg("remove orphaned poster failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		s.log.Info().Int("removed", removed).Msg("orphaned posters swept")
	}
	return nil
}
