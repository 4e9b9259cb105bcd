package service

import (
	"context"

	"roomledger-backend/internal/domain"
	"roomledger-backend/internal/repository"
)

type catalogService struct {
	buildingRepo repository.BuildingRepository
	roomRepo     repository.RoomRepository
	leaseRepo    repository.LeaseRepository
	tenantRepo   repository.TenantRepository
}

func NewCatalogService(
	buildingRepo repository.BuildingRepository,
	roomRepo repository.RoomRepository,
	leaseRepo repository.LeaseRepository,
	tenantRepo repository.TenantRepository,
) CatalogService {
	return &catalogService{
		buildingRepo: buildingRepo,
		roomRepo:     roomRepo,
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
	}
}

func (s *catalogService) CreateBuilding(ctx context.Context, actor domain.Actor, b *domain.Building) error {
	if err := authorize(actor, OpManageCatalog); err != nil {
		return err
	}
	if b.Name == "" {
		return domain.NewInvalidInput("building name is required")
	}
	if b.MonthlyCleaningFee != nil && b.MonthlyCleaningFee.IsNegative() {
		return domain.NewInvalidInput("monthly cleaning fee must not be negative")
	}
	return s.buildingRepo.Create(ctx, b)
}

func (s *catalogService) GetBuilding(ctx context.Context, id string) (*domain.Building, error) {
	return s.buildingRepo.GetByID(ctx, id)
}

func (s *catalogService) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	return s.buildingRepo.List(ctx)
}

func (s *catalogService) UpdateBuilding(ctx context.Context, actor domain.Actor, b *domain.Building) error {
	if err := authorize(actor, OpManageCatalog); err != nil {
		return err
	}
	if b.Name == "" {
		return domain.NewInvalidInput("building name is required")
	}
	return s.buildingRepo.Update(ctx, b)
}

func (s *catalogService) DeleteBuilding(ctx context.Context, actor domain.Actor, id string) error {
	if err := authorize(actor, OpManageCatalog); err != nil {
		return err
	}
	n, err := s.roomRepo.CountByBuilding(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewConflict("building %s still has %d rooms", id, n)
	}
	return s.buildingRepo.Delete(ctx, id)
}

func (s *catalogService) CreateRoom(ctx context.Context, actor domain.Actor, r *domain.Room) error {
	if err := authorize(actor, OpManageCatalog); err != nil {
		return err
	}
	if r.Name == "" {
		return domain.NewInvalidInput("room name is required")
	}
	if r.BasePrice.IsNegative() {
		return domain.NewInvalidInput("base price must not be negative")
	}
	if _, err := s.buildingRepo.GetByID(ctx, r.BuildingID); err != nil {
		return err
	}
	return s.roomRepo.Create(ctx, r)
}

func (s *catalogService) GetRoomDetail(ctx context.Context, id string) (*domain.RoomDetail, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	building, err := s.buildingRepo.GetByID(ctx, room.BuildingID)
	if err != nil {
		return nil, err
	}
	history, err := s.leaseRepo.List(ctx, domain.LeaseFilter{RoomID: id})
	if err != nil {
		return nil, err
	}

	detail := &domain.RoomDetail{
		Room:         *room,
		Building:     *building,
		LeaseHistory: history,
	}

	active, err := s.leaseRepo.GetActiveByRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	if active != nil {
		detail.ActiveLease = active
		tenant, err := s.tenantRepo.GetByID(ctx, active.TenantID)
		if err != nil {
			return nil, err
		}
		detail.ActiveTenant = tenant
	}
	return detail, nil
}

func (s *catalogService) ListRooms(ctx context.Context, buildingID string) ([]domain.Room, error) {
	return s.roomRepo.List(ctx, buildingID)
}

// UpdateRoom never touches the building reference; the update payload does
// not carry it.
func (s *catalogService) UpdateRoom(ctx context.Context, actor domain.Actor, r *domain.Room) error {
	if err := authorize(actor, OpManageCatalog); err != nil {
		return err
	}
	if r.Name == "" {
		return domain.NewInvalidInput("room name is required")
	}
	if r.BasePrice.IsNegative() {
		return domain.NewInvalidInput("base price must not be negative")
	}
	current, err := s.roomRepo.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	r.BuildingID = current.BuildingID
	return s.roomRepo.Update(ctx, r)
}

// DeleteRoom refuses while any lease references the room, finished ones
// included, to keep the ledger history resolvable.
func (s *catalogService) DeleteRoom(ctx context.Context, actor domain.Actor, id string) error {
	if err := authorize(actor, OpManageCatalog); err != nil {
		return err
	}
	n, err := s.leaseRepo.CountByRoom(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.NewConflict("room %s has %d leases", id, n)
	}
	return s.roomRepo.Delete(ctx, id)
}
