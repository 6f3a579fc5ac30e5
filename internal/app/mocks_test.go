package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/fieldops/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockWorkerRepository implements secondary.WorkerRepository for testing.
type mockWorkerRepository struct {
	workers   map[string]*secondary.WorkerRecord
	getErr    error
	createErr error
}

func newMockWorkerRepository() *mockWorkerRepository {
	return &mockWorkerRepository{workers: make(map[string]*secondary.WorkerRecord)}
}

func (m *mockWorkerRepository) Create(ctx context.Context, worker *secondary.WorkerRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.workers[worker.ID] = worker
	return nil
}

func (m *mockWorkerRepository) GetByID(ctx context.Context, id string) (*secondary.WorkerRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if w, ok := m.workers[id]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("worker %s: %w", id, secondary.ErrNotFound)
}

func (m *mockWorkerRepository) List(ctx context.Context, filters secondary.WorkerFilters) ([]*secondary.WorkerRecord, error) {
	var result []*secondary.WorkerRecord
	for _, w := range m.workers {
		if filters.Status != "" && w.Status != filters.Status {
			continue
		}
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockWorkerRepository) UpdateRates(ctx context.Context, id string, effective, burdened *float64) error {
	w, ok := m.workers[id]
	if !ok {
		return fmt.Errorf("worker %s: %w", id, secondary.ErrNotFound)
	}
	w.EffectiveRate = effective
	w.BurdenedRate = burdened
	return nil
}

func (m *mockWorkerRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("EMP-%03d", len(m.workers)+1), nil
}

// mockWorkOrderRepository implements secondary.WorkOrderRepository for testing.
type mockWorkOrderRepository struct {
	workOrders      map[string]*secondary.WorkOrderRecord
	getErr          error
	updateActualErr error
	statusUpdates   []string // status values in order, for cascade assertions
}

func newMockWorkOrderRepository() *mockWorkOrderRepository {
	return &mockWorkOrderRepository{workOrders: make(map[string]*secondary.WorkOrderRecord)}
}

func (m *mockWorkOrderRepository) Create(ctx context.Context, wo *secondary.WorkOrderRecord) error {
	if wo.Status == "" {
		wo.Status = "not_started"
	}
	m.workOrders[wo.ID] = wo
	return nil
}

func (m *mockWorkOrderRepository) GetByID(ctx context.Context, id string) (*secondary.WorkOrderRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if wo, ok := m.workOrders[id]; ok {
		return wo, nil
	}
	return nil, fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
}

func (m *mockWorkOrderRepository) List(ctx context.Context, filters secondary.WorkOrderFilters) ([]*secondary.WorkOrderRecord, error) {
	var result []*secondary.WorkOrderRecord
	for _, wo := range m.workOrders {
		if filters.Status != "" && wo.Status != filters.Status {
			continue
		}
		if filters.Customer != "" && wo.Customer != filters.Customer {
			continue
		}
		result = append(result, wo)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockWorkOrderRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.workOrders[id]; !ok {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.workOrders, id)
	return nil
}

func (m *mockWorkOrderRepository) AssignLoadout(ctx context.Context, id, loadoutID string) error {
	wo, ok := m.workOrders[id]
	if !ok {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	wo.LoadoutID = loadoutID
	return nil
}

func (m *mockWorkOrderRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	wo, ok := m.workOrders[id]
	if !ok {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	wo.Status = status
	wo.CompletedAt = ""
	if completedAt != nil {
		wo.CompletedAt = completedAt.Format(time.RFC3339)
	}
	m.statusUpdates = append(m.statusUpdates, status)
	return nil
}

func (m *mockWorkOrderRepository) UpdateActuals(ctx context.Context, id string, productiveHours, supportHours, totalCost float64) error {
	if m.updateActualErr != nil {
		return m.updateActualErr
	}
	wo, ok := m.workOrders[id]
	if !ok {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	wo.ActualProductiveHours = productiveHours
	wo.ActualSupportHours = supportHours
	wo.ActualTotalCost = totalCost
	return nil
}

func (m *mockWorkOrderRepository) AdjustEstimates(ctx context.Context, id string, deltaHours, deltaCost float64) error {
	wo, ok := m.workOrders[id]
	if !ok {
		return fmt.Errorf("work order %s: %w", id, secondary.ErrNotFound)
	}
	wo.EstimatedHours += deltaHours
	if wo.EstimatedHours < 0 {
		wo.EstimatedHours = 0
	}
	wo.EstimatedCost += deltaCost
	if wo.EstimatedCost < 0 {
		wo.EstimatedCost = 0
	}
	return nil
}

func (m *mockWorkOrderRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("WO-%03d", len(m.workOrders)+1), nil
}

// mockLineItemRepository implements secondary.LineItemRepository for testing.
type mockLineItemRepository struct {
	items  map[string]*secondary.LineItemRecord
	getErr error
}

func newMockLineItemRepository() *mockLineItemRepository {
	return &mockLineItemRepository{items: make(map[string]*secondary.LineItemRecord)}
}

func (m *mockLineItemRepository) Create(ctx context.Context, li *secondary.LineItemRecord) error {
	if li.Status == "" {
		li.Status = "not_started"
	}
	m.items[li.ID] = li
	return nil
}

func (m *mockLineItemRepository) GetByID(ctx context.Context, id string) (*secondary.LineItemRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if li, ok := m.items[id]; ok {
		return li, nil
	}
	return nil, fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
}

func (m *mockLineItemRepository) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*secondary.LineItemRecord, error) {
	var result []*secondary.LineItemRecord
	for _, li := range m.items {
		if li.WorkOrderID == workOrderID {
			result = append(result, li)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLineItemRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	delete(m.items, id)
	return nil
}

func (m *mockLineItemRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	li, ok := m.items[id]
	if !ok {
		return fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	li.Status = status
	li.CompletedAt = ""
	if completedAt != nil {
		li.CompletedAt = completedAt.Format(time.RFC3339)
	}
	return nil
}

func (m *mockLineItemRepository) UpdateActuals(ctx context.Context, id string, actualHours float64, productionRate *float64, variance float64) error {
	li, ok := m.items[id]
	if !ok {
		return fmt.Errorf("line item %s: %w", id, secondary.ErrNotFound)
	}
	li.ActualHours = actualHours
	li.ProductionRate = productionRate
	li.Variance = variance
	return nil
}

func (m *mockLineItemRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LI-%03d", len(m.items)+1), nil
}

// mockTimeEntryRepository implements secondary.TimeEntryRepository for
// testing. Create enforces the one-open-timer-per-worker uniqueness the
// sqlite partial index provides in production.
type mockTimeEntryRepository struct {
	entries   map[string]*secondary.TimeEntryRecord
	createErr error
	listErr   error
}

func newMockTimeEntryRepository() *mockTimeEntryRepository {
	return &mockTimeEntryRepository{entries: make(map[string]*secondary.TimeEntryRecord)}
}

func (m *mockTimeEntryRepository) Create(ctx context.Context, entry *secondary.TimeEntryRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if entry.EndedAt == nil {
		for _, e := range m.entries {
			if e.WorkerID == entry.WorkerID && e.EndedAt == nil {
				return fmt.Errorf("worker %s: %w", entry.WorkerID, secondary.ErrOpenTimerExists)
			}
		}
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockTimeEntryRepository) GetByID(ctx context.Context, id string) (*secondary.TimeEntryRecord, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("time entry %s: %w", id, secondary.ErrNotFound)
}

func (m *mockTimeEntryRepository) GetOpenByWorker(ctx context.Context, workerID string) (*secondary.TimeEntryRecord, error) {
	for _, e := range m.entries {
		if e.WorkerID == workerID && e.EndedAt == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockTimeEntryRepository) Close(ctx context.Context, id string, endedAt time.Time, durationHours, totalCost float64, note string) error {
	e, ok := m.entries[id]
	if !ok || e.EndedAt != nil {
		return fmt.Errorf("open time entry %s: %w", id, secondary.ErrNotFound)
	}
	end := endedAt
	e.EndedAt = &end
	e.DurationHours = &durationHours
	e.TotalCost = &totalCost
	if note != "" {
		e.Note = note
	}
	return nil
}

func (m *mockTimeEntryRepository) ListByWorkOrder(ctx context.Context, workOrderID string) ([]*secondary.TimeEntryRecord, error) {
	return m.list(func(e *secondary.TimeEntryRecord) bool {
		return e.WorkOrderID == workOrderID
	})
}

func (m *mockTimeEntryRepository) ListClosedByWorkOrder(ctx context.Context, workOrderID string) ([]*secondary.TimeEntryRecord, error) {
	return m.list(func(e *secondary.TimeEntryRecord) bool {
		return e.WorkOrderID == workOrderID && e.EndedAt != nil
	})
}

func (m *mockTimeEntryRepository) ListClosedByLineItem(ctx context.Context, lineItemID string) ([]*secondary.TimeEntryRecord, error) {
	return m.list(func(e *secondary.TimeEntryRecord) bool {
		return e.LineItemID == lineItemID && e.EndedAt != nil
	})
}

func (m *mockTimeEntryRepository) list(match func(*secondary.TimeEntryRecord) bool) ([]*secondary.TimeEntryRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TimeEntryRecord
	for _, e := range m.entries {
		if match(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartedAt.Before(result[j].StartedAt) })
	return result, nil
}

// mockLoadoutRepository implements secondary.LoadoutRepository for testing.
type mockLoadoutRepository struct {
	loadouts map[string]*secondary.LoadoutRecord
	sums     map[string]float64
	sumErr   error
}

func newMockLoadoutRepository() *mockLoadoutRepository {
	return &mockLoadoutRepository{
		loadouts: make(map[string]*secondary.LoadoutRecord),
		sums:     make(map[string]float64),
	}
}

func (m *mockLoadoutRepository) Create(ctx context.Context, loadout *secondary.LoadoutRecord) error {
	m.loadouts[loadout.ID] = loadout
	return nil
}

func (m *mockLoadoutRepository) GetByID(ctx context.Context, id string) (*secondary.LoadoutRecord, error) {
	if l, ok := m.loadouts[id]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("loadout %s: %w", id, secondary.ErrNotFound)
}

func (m *mockLoadoutRepository) List(ctx context.Context) ([]*secondary.LoadoutRecord, error) {
	var result []*secondary.LoadoutRecord
	for _, l := range m.loadouts {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockLoadoutRepository) AddEquipment(ctx context.Context, loadoutID, equipmentID string) error {
	return nil
}

func (m *mockLoadoutRepository) RemoveEquipment(ctx context.Context, loadoutID, equipmentID string) error {
	return nil
}

func (m *mockLoadoutRepository) SumHourlyCost(ctx context.Context, loadoutID string) (float64, error) {
	if m.sumErr != nil {
		return 0, m.sumErr
	}
	return m.sums[loadoutID], nil
}

func (m *mockLoadoutRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("LOAD-%03d", len(m.loadouts)+1), nil
}

// ============================================================================
// Test helpers
// ============================================================================

func fptr(v float64) *float64 {
	return &v
}

// fixedClock returns a clock stuck at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
