package app

import (
	"context"
	"fmt"

	"github.com/example/fieldops/internal/ports/primary"
	"github.com/example/fieldops/internal/ports/secondary"
)

// LoadoutServiceImpl implements the LoadoutService interface.
type LoadoutServiceImpl struct {
	loadoutRepo   secondary.LoadoutRepository
	equipmentRepo secondary.EquipmentRepository
}

// NewLoadoutService creates a new LoadoutService with injected dependencies.
func NewLoadoutService(
	loadoutRepo secondary.LoadoutRepository,
	equipmentRepo secondary.EquipmentRepository,
) *LoadoutServiceImpl {
	return &LoadoutServiceImpl{
		loadoutRepo:   loadoutRepo,
		equipmentRepo: equipmentRepo,
	}
}

// CreateLoadout creates a new, empty loadout.
func (s *LoadoutServiceImpl) CreateLoadout(ctx context.Context, name string) (*primary.Loadout, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: loadout name is required", ErrInvalidInput)
	}

	nextID, err := s.loadoutRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate loadout ID: %w", err)
	}

	record := &secondary.LoadoutRecord{ID: nextID, Name: name}
	if err := s.loadoutRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create loadout: %w", err)
	}

	created, err := s.loadoutRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created loadout: %w", err)
	}
	return recordToLoadout(created), nil
}

// GetLoadout retrieves a loadout with its equipment.
func (s *LoadoutServiceImpl) GetLoadout(ctx context.Context, loadoutID string) (*primary.Loadout, error) {
	record, err := s.loadoutRepo.GetByID(ctx, loadoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loadout %s: %w", loadoutID, err)
	}
	return recordToLoadout(record), nil
}

// ListLoadouts lists all loadouts.
func (s *LoadoutServiceImpl) ListLoadouts(ctx context.Context) ([]*primary.Loadout, error) {
	records, err := s.loadoutRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list loadouts: %w", err)
	}
	loadouts := make([]*primary.Loadout, len(records))
	for i, r := range records {
		loadouts[i] = recordToLoadout(r)
	}
	return loadouts, nil
}

// AddEquipment attaches an equipment item to a loadout. Running timers on
// work orders using this loadout keep their snapshotted equipment rate.
func (s *LoadoutServiceImpl) AddEquipment(ctx context.Context, loadoutID, equipmentID string) error {
	if _, err := s.loadoutRepo.GetByID(ctx, loadoutID); err != nil {
		return fmt.Errorf("failed to get loadout %s: %w", loadoutID, err)
	}
	if _, err := s.equipmentRepo.GetByID(ctx, equipmentID); err != nil {
		return fmt.Errorf("failed to get equipment %s: %w", equipmentID, err)
	}
	if err := s.loadoutRepo.AddEquipment(ctx, loadoutID, equipmentID); err != nil {
		return fmt.Errorf("failed to add equipment to loadout: %w", err)
	}
	return nil
}

// RemoveEquipment detaches an equipment item from a loadout.
func (s *LoadoutServiceImpl) RemoveEquipment(ctx context.Context, loadoutID, equipmentID string) error {
	if err := s.loadoutRepo.RemoveEquipment(ctx, loadoutID, equipmentID); err != nil {
		return fmt.Errorf("failed to remove equipment from loadout: %w", err)
	}
	return nil
}

// CreateEquipment creates a new equipment item.
func (s *LoadoutServiceImpl) CreateEquipment(ctx context.Context, req primary.CreateEquipmentRequest) (*primary.Equipment, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: equipment name is required", ErrInvalidInput)
	}
	if req.HourlyCost < 0 {
		return nil, fmt.Errorf("%w: hourly cost must not be negative", ErrInvalidInput)
	}

	nextID, err := s.equipmentRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate equipment ID: %w", err)
	}

	record := &secondary.EquipmentRecord{
		ID:         nextID,
		Name:       req.Name,
		HourlyCost: req.HourlyCost,
		Status:     "active",
	}
	if err := s.equipmentRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}

	created, err := s.equipmentRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created equipment: %w", err)
	}
	return recordToEquipment(created), nil
}

// ListEquipment lists all equipment items.
func (s *LoadoutServiceImpl) ListEquipment(ctx context.Context) ([]*primary.Equipment, error) {
	records, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	equipment := make([]*primary.Equipment, len(records))
	for i, r := range records {
		equipment[i] = recordToEquipment(r)
	}
	return equipment, nil
}

func recordToLoadout(r *secondary.LoadoutRecord) *primary.Loadout {
	loadout := &primary.Loadout{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, eq := range r.Equipment {
		loadout.Equipment = append(loadout.Equipment, recordToEquipment(eq))
		loadout.HourlyCost += eq.HourlyCost
	}
	return loadout
}

func recordToEquipment(r *secondary.EquipmentRecord) *primary.Equipment {
	return &primary.Equipment{
		ID:         r.ID,
		Name:       r.Name,
		HourlyCost: r.HourlyCost,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// Ensure LoadoutServiceImpl implements the interface
var _ primary.LoadoutService = (*LoadoutServiceImpl)(nil)
