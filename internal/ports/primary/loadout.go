package primary

import "context"

// LoadoutService defines the primary port for loadout and equipment
// reference data.
type LoadoutService interface {
	// CreateLoadout creates a new, empty loadout.
	CreateLoadout(ctx context.Context, name string) (*Loadout, error)

	// GetLoadout retrieves a loadout with its equipment.
	GetLoadout(ctx context.Context, loadoutID string) (*Loadout, error)

	// ListLoadouts lists all loadouts.
	ListLoadouts(ctx context.Context) ([]*Loadout, error)

	// AddEquipment attaches an equipment item to a loadout.
	AddEquipment(ctx context.Context, loadoutID, equipmentID string) error

	// RemoveEquipment detaches an equipment item from a loadout.
	RemoveEquipment(ctx context.Context, loadoutID, equipmentID string) error

	// CreateEquipment creates a new equipment item.
	CreateEquipment(ctx context.Context, req CreateEquipmentRequest) (*Equipment, error)

	// ListEquipment lists all equipment items.
	ListEquipment(ctx context.Context) ([]*Equipment, error)
}

// CreateEquipmentRequest contains parameters for creating equipment.
type CreateEquipmentRequest struct {
	Name       string
	HourlyCost float64
}

// Loadout is the service-level view of a loadout.
type Loadout struct {
	ID         string
	Name       string
	Equipment  []*Equipment
	HourlyCost float64 // sum over Equipment
	CreatedAt  string
	UpdatedAt  string
}

// Equipment is the service-level view of an equipment item.
type Equipment struct {
	ID         string
	Name       string
	HourlyCost float64
	Status     string
	CreatedAt  string
	UpdatedAt  string
}
