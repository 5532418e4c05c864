package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/service/stats"
)

// OwnerLister supplies the accounts the digest iterates over.
type OwnerLister interface {
	UserIDs(ctx context.Context) ([]primitive.ObjectID, error)
}

// Scheduler runs the nightly attendance digest: for every owner it computes
// the day's workplace rollup and logs the totals.
type Scheduler struct {
	cron     *cron.Cron
	owners   OwnerLister
	statsSvc *stats.Service
	schedule string
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that fires on the given cron schedule in
// loc, the same reference timezone the rollups use.
func NewScheduler(schedule string, loc *time.Location, owners OwnerLister, statsSvc *stats.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		owners:   owners,
		statsSvc: statsSvc,
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.runDigest); err != nil {
		s.logger.Error("failed to schedule attendance digest", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDigest() {
	s.logger.Info("generating attendance digest")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	owners, err := s.owners.UserIDs(ctx)
	if err != nil {
		s.logger.Error("failed to list owners for digest", zap.Error(err))
		return
	}

	now := time.Now()
	for _, owner := range owners {
		rollup, err := s.statsSvc.DayRollup(ctx, owner, now)
		if err != nil {
			s.logger.Error("failed to build digest rollup",
				zap.String("owner", owner.Hex()), zap.Error(err))
			continue
		}
		s.logDigest(owner, rollup)
	}
}

func (s *Scheduler) logDigest(owner primitive.ObjectID, rollup models.DayRollup) {
	s.logger.Info("attendance digest",
		zap.String("owner", owner.Hex()),
		zap.String("date", rollup.Date),
		zap.Int("workplaces", len(rollup.Workplaces)),
		zap.Int("present", rollup.Totals.TotalPresent),
		zap.Int("absent", rollup.Totals.TotalAbsent),
		zap.Float64("total_salary", rollup.Totals.TotalSalary))
}
