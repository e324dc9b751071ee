package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/opsdesk-dev/status-board/backend/internal/config"
	"github.com/opsdesk-dev/status-board/backend/internal/domain"
	"github.com/opsdesk-dev/status-board/backend/internal/repository"
	"github.com/opsdesk-dev/status-board/backend/internal/schedule"
	"github.com/opsdesk-dev/status-board/backend/internal/utils"
)

// SeedStaff inserts n random staff members with linked user accounts.
func SeedStaff(cfg *config.Config, repo *repository.Repository, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		staff := utils.GenerateRandomStaff()
		if err := repo.CreateStaff(staff); err != nil {
			slog.Error("cannot insert staff member", slog.String("error", err.Error()))
			continue
		}

		user, err := utils.GenerateRandomUser(staff, cfg.Seed.User.Password, cfg.Email.UserDomain)
		if err != nil {
			slog.Error("cannot generate user", slog.String("error", err.Error()))
			continue
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Error("cannot insert user", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}
	return cnt
}

var contractShapes = []struct {
	start, end float64
}{
	{9, 18},
	{8, 17},
	{10, 19},
	{12, 21},
}

// SeedContractEntries gives every active staff member a baseline
// contract-layer day for each of the next days dates.
func SeedContractEntries(repo *repository.Repository, days int) int {
	staff, err := repo.GetAllStaff()
	if err != nil {
		slog.Error("cannot load staff", slog.String("error", err.Error()))
		return 0
	}

	cnt := 0
	today := time.Now().Truncate(24 * time.Hour)
	for _, s := range staff {
		if !s.IsActive {
			continue
		}
		shape := contractShapes[rand.Intn(len(contractShapes))]
		for d := 0; d < days; d++ {
			entry := &domain.ScheduleEntry{
				StaffID:   s.ID,
				Date:      today.AddDate(0, 0, d),
				Layer:     domain.LayerContract,
				Status:    schedule.StatusOnline,
				StartTime: shape.start,
				EndTime:   shape.end,
			}
			if err := repo.CreateEntry(entry); err != nil {
				slog.Error("cannot insert contract entry", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
	}
	return cnt
}

var adjustmentStatuses = []string{
	schedule.StatusMeeting,
	schedule.StatusRemote,
	schedule.StatusBreak,
	schedule.StatusTraining,
	schedule.StatusOff,
}

// SeedAdjustmentEntries scatters short adjustment-layer overrides over
// today's board.
func SeedAdjustmentEntries(repo *repository.Repository, n int) int {
	staff, err := repo.GetAllStaff()
	if err != nil {
		slog.Error("cannot load staff", slog.String("error", err.Error()))
		return 0
	}
	if len(staff) == 0 {
		return 0
	}

	cnt := 0
	today := time.Now().Truncate(24 * time.Hour)
	for i := 0; i < n; i++ {
		s := staff[rand.Intn(len(staff))]
		start := 9 + float64(rand.Intn(40))*0.25
		duration := 0.5 + float64(rand.Intn(6))*0.25

		entry := &domain.ScheduleEntry{
			StaffID:   s.ID,
			Date:      today,
			Layer:     domain.LayerAdjustment,
			Status:    adjustmentStatuses[rand.Intn(len(adjustmentStatuses))],
			StartTime: start,
			EndTime:   start + duration,
			Memo:      utils.GenerateRandomMemo(),
		}
		if err := repo.CreateEntry(entry); err != nil {
			// overlapping random ranges are expected, just skip them
			continue
		}
		cnt++
	}
	return cnt
}
