package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"stamprally-backend/mail"
	"stamprally-backend/ranking"
)

// Scheduler recomputes the weekly and monthly leaderboards on a fixed
// schedule. Every run is a full recompute-and-replace, so an interrupted or
// failed run is recovered by the next one.
type Scheduler struct {
	cron *cron.Cron
	svc  *ranking.Service
}

func New(svc *ranking.Service) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
	}
}

func (s *Scheduler) Start() error {
	// hourly keeps boards fresh; the extra runs at period boundaries seed
	// the new period's leaderboard
	if _, err := s.cron.AddFunc("0 * * * *", func() {
		s.run(ranking.Weekly)
		s.run(ranking.Monthly)
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("Ranking scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run(pt ranking.PeriodType) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := s.svc.Calculate(ctx, pt)
	if err != nil {
		log.Printf("Scheduled %s ranking aggregation failed: %v", pt, err)
		if mailErr := mail.SendRankingFailureAlert(string(pt), err); mailErr != nil {
			log.Printf("Failed to send aggregation alert: %v", mailErr)
		}
		return
	}

	log.Printf("Scheduled %s ranking aggregation done: period=%s entries=%d", pt, res.Period, res.RankingCount)
}
