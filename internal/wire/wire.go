// Package wire provides dependency injection for the fieldops application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/fieldops/internal/adapters/sqlite"
	"github.com/example/fieldops/internal/app"
	"github.com/example/fieldops/internal/db"
	"github.com/example/fieldops/internal/ports/primary"
)

var (
	timerService     primary.TimerService
	rateService      primary.RateService
	rollupService    primary.RollupService
	workOrderService primary.WorkOrderService
	lineItemService  primary.LineItemService
	workerService    primary.WorkerService
	loadoutService   primary.LoadoutService
	once             sync.Once
)

// TimerService returns the singleton TimerService instance.
func TimerService() primary.TimerService {
	once.Do(initServices)
	return timerService
}

// RateService returns the singleton RateService instance.
func RateService() primary.RateService {
	once.Do(initServices)
	return rateService
}

// RollupService returns the singleton RollupService instance.
func RollupService() primary.RollupService {
	once.Do(initServices)
	return rollupService
}

// WorkOrderService returns the singleton WorkOrderService instance.
func WorkOrderService() primary.WorkOrderService {
	once.Do(initServices)
	return workOrderService
}

// LineItemService returns the singleton LineItemService instance.
func LineItemService() primary.LineItemService {
	once.Do(initServices)
	return lineItemService
}

// WorkerService returns the singleton WorkerService instance.
func WorkerService() primary.WorkerService {
	once.Do(initServices)
	return workerService
}

// LoadoutService returns the singleton LoadoutService instance.
func LoadoutService() primary.LoadoutService {
	once.Do(initServices)
	return loadoutService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	entryRepo := sqlite.NewTimeEntryRepository(database)
	workerRepo := sqlite.NewWorkerRepository(database)
	workOrderRepo := sqlite.NewWorkOrderRepository(database)
	lineItemRepo := sqlite.NewLineItemRepository(database)
	loadoutRepo := sqlite.NewLoadoutRepository(database)
	equipmentRepo := sqlite.NewEquipmentRepository(database)

	// Create services (primary ports implementation)
	rateService = app.NewRateService(workerRepo, workOrderRepo, loadoutRepo)
	rollupService = app.NewRollupService(entryRepo, workOrderRepo, lineItemRepo)
	timerService = app.NewTimerService(entryRepo, workerRepo, workOrderRepo, lineItemRepo, rateService, rollupService)
	workOrderService = app.NewWorkOrderService(workOrderRepo, loadoutRepo)
	lineItemService = app.NewLineItemService(lineItemRepo, workOrderRepo)
	workerService = app.NewWorkerService(workerRepo)
	loadoutService = app.NewLoadoutService(loadoutRepo, equipmentRepo)
}
