package services

import (
	"context"
	"time"

	"pustakahub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// OverdueService runs the daily maintenance job: every morning it queries
// the overdue view and logs a summary for the librarian, then purges
// expired refresh tokens. Loan rows are never mutated; overdue remains a
// read-time predicate.
type OverdueService struct {
	loanRepo  repositories.LoanRepository
	tokenRepo repositories.RefreshTokenRepository
	cron      *cron.Cron
	log       zerolog.Logger
}

// NewOverdueService creates a new overdue sweep service
func NewOverdueService(
	loanRepo repositories.LoanRepository,
	tokenRepo repositories.RefreshTokenRepository,
	log zerolog.Logger,
) *OverdueService {
	return &OverdueService{
		loanRepo:  loanRepo,
		tokenRepo: tokenRepo,
		cron:      cron.New(),
		log:       log,
	}
}

// Start schedules the daily sweep at 08:30
func (s *OverdueService) Start() error {
	if _, err := s.cron.AddFunc("30 8 * * *", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Msg("overdue sweep scheduled (daily 08:30)")
	return nil
}

// Stop stops the scheduler, waiting for a running sweep to finish
func (s *OverdueService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *OverdueService) sweep() {
	ctx := context.Background()
	s.sweepOnce(ctx)
	s.purgeExpiredTokens(ctx)
}

func (s *OverdueService) sweepOnce(ctx context.Context) {
	loans, err := s.loanRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("overdue sweep failed")
		return
	}

	if len(loans) == 0 {
		s.log.Info().Msg("overdue sweep: no overdue loans")
		return
	}

	for _, loan := range loans {
		s.log.Warn().
			Uint("loan_id", loan.ID).
			Str("member", loan.Member.FullName).
			Str("book", loan.Book.Title).
			Time("due_date", loan.DueDate).
			Msg("loan overdue")
	}
	s.log.Info().Int("count", len(loans)).Msg("overdue sweep completed")
}

func (s *OverdueService) purgeExpiredTokens(ctx context.Context) {
	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		s.log.Error().Err(err).Msg("expired token purge failed")
		return
	}
	s.log.Info().Msg("expired refresh tokens purged")
}
