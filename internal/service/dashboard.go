package service

import (
	"context"
	"time"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"
)

type dashboardService struct {
	roomRepo    repository.RoomRepository
	leaseRepo   repository.LeaseRepository
	paymentRepo repository.PaymentRepository
}

func NewDashboardService(
	roomRepo repository.RoomRepository,
	leaseRepo repository.LeaseRepository,
	paymentRepo repository.PaymentRepository,
) DashboardService {
	return &dashboardService{
		roomRepo:    roomRepo,
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
	}
}

// Stats derives every figure at read time; nothing here is cached.
func (s *dashboardService) Stats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	totalRooms, err := s.roomRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.leaseRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	bucket := now.UTC().Format("2006-01")
	income, err := s.paymentRepo.SumByStatusAndMonth(ctx, domain.PaymentStatusPaid, bucket)
	if err != nil {
		return nil, err
	}

	unsettled, err := s.paymentRepo.CountByStatuses(ctx, []domain.PaymentStatus{
		domain.PaymentStatusPending,
		domain.PaymentStatusInReview,
		domain.PaymentStatusOverdue,
	})
	if err != nil {
		return nil, err
	}

	ending, err := s.leaseRepo.CountActiveEndingBefore(ctx, now.UTC().AddDate(0, 0, 30))
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalRooms:        totalRooms,
		OccupiedRooms:     occupied,
		FreeRooms:         totalRooms - occupied,
		MonthIncome:       income,
		UnsettledPayments: unsettled,
		LeasesEndingIn30d: ending,
	}, nil
}
