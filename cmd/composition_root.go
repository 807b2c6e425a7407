package cmd

import (
	"context"
	"fmt"
	"log/slog"

	apihttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/configrepo"
	"fulfillment/internal/adapters/out/postgres/stockrepo"
	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

const (
	GroupingDefault = "default"
	GroupingPerLine = "per_line"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locker     ports.OrderLocker
	logger     *slog.Logger

	rederivePolicy services.InvoiceRederivePolicy
	keyExtender    services.GroupingKeyExtender

	processor *commands.ProcessOrderCommandHandler
}

// NewCompositionRoot wires the application. locker may be nil when a single instance
// processes the orders.
func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	locker ports.OrderLocker,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	policy := services.RederiveOnEvent
	if configs.InvoiceRederivePolicy != "" {
		var err error
		if policy, err = services.ParseInvoiceRederivePolicy(configs.InvoiceRederivePolicy); err != nil {
			return nil, err
		}
	}

	var extender services.GroupingKeyExtender
	switch configs.ShipmentGrouping {
	case "", GroupingDefault:
		extender = services.NoKeyExtension{}
	case GroupingPerLine:
		extender = services.PerLineKeyExtension{}
	default:
		return nil, fmt.Errorf("unknown shipment grouping %q", configs.ShipmentGrouping)
	}

	return &CompositionRoot{
		configs:        configs,
		gormDB:         gormDB,
		uowFactory:     *postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:         locker,
		logger:         logger,
		rederivePolicy: policy,
		keyExtender:    extender,
	}, nil
}

func (c *CompositionRoot) ConfigurationProvider() *configrepo.GormConfigurationProvider {
	return configrepo.NewGormConfigurationProvider(c.gormDB, c.configs.RoundDownAccount)
}

func (c *CompositionRoot) StockService() *stockrepo.GormStockReservationService {
	return stockrepo.NewGormStockReservationService(c.gormDB)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileRoundOffCommandHandler() commands.ReconcileRoundOffCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileRoundOffCommandHandler(f, services.NewRoundOffReconciler())
}

// ProcessOrderCommandHandler is shared by the HTTP layer, shipment completion and
// the pending orders job.
func (c *CompositionRoot) ProcessOrderCommandHandler() *commands.ProcessOrderCommandHandler {
	if c.processor != nil {
		return c.processor
	}

	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	handler := commands.NewProcessOrderCommandHandler(
		f,
		c.locker,
		services.NewOrderLineGrouper(c.keyExtender),
		fulfillment.NewAutoFulfillmentOrchestrator(fulfillment.PickUpPolicy{}, c.logger),
		fulfillment.NewInvoiceCoordinator(
			services.NewInvoiceLineBuilder(c.rederivePolicy),
			c.ConfigurationProvider(),
			c.logger,
		),
		c.logger,
	)
	c.processor = &handler
	return c.processor
}

func (c *CompositionRoot) CreateCompleteShipmentCommandHandler() commands.CompleteShipmentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteShipmentCommandHandler(f, c.ProcessOrderCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreatePostInvoiceCommandHandler() commands.PostInvoiceCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPostInvoiceCommandHandler(f)
}

func (c *CompositionRoot) CreatePayInvoiceCommandHandler() commands.PayInvoiceCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPayInvoiceCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelInvoiceCommandHandler() commands.CancelInvoiceCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelInvoiceCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRecentOrdersQueryHandler() queries.GetRecentOrdersQueryHandler {
	return queries.NewGetRecentOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentGroupsQueryHandler() queries.GetShipmentGroupsQueryHandler {
	// reads run outside a transaction on the main connection
	return queries.NewGetShipmentGroupsQueryHandler(
		c.uowFactory.Create(),
		services.NewOrderLineGrouper(c.keyExtender),
	)
}

func (c *CompositionRoot) CreateHTTPHandlers() apihttp.Handlers {
	createOrder := c.CreateCreateOrderCommandHandler()
	confirmOrder := c.CreateConfirmOrderCommandHandler()
	reconcileRoundOff := c.CreateReconcileRoundOffCommandHandler()
	completeShipment := c.CreateCompleteShipmentCommandHandler()
	postInvoice := c.CreatePostInvoiceCommandHandler()
	payInvoice := c.CreatePayInvoiceCommandHandler()
	cancelInvoice := c.CreateCancelInvoiceCommandHandler()

	return apihttp.Handlers{
		CreateOrder:       &createOrder,
		ConfirmOrder:      &confirmOrder,
		ProcessOrder:      c.ProcessOrderCommandHandler(),
		ReconcileRoundOff: &reconcileRoundOff,
		CompleteShipment:  &completeShipment,
		PostInvoice:       &postInvoice,
		PayInvoice:        &payInvoice,
		CancelInvoice:     &cancelInvoice,
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetPendingOrders:  c.CreateGetPendingOrdersQueryHandler(),
		GetRecentOrders:   c.CreateGetRecentOrdersQueryHandler(),
		GetShipmentGroups: c.CreateGetShipmentGroupsQueryHandler(),
	}
}

func (c *CompositionRoot) CreatePendingOrdersJob() *jobs.PendingOrdersJob {
	return jobs.NewPendingOrdersJob(
		c.CreateGetPendingOrdersQueryHandler(),
		c.ProcessOrderCommandHandler(),
		c.configs.PendingOrdersSchedule,
		c.configs.PendingOrdersBatchSize,
		c.logger,
		jobs.WithRetryDelays(c.configs.PendingOrdersRetryDelay, c.configs.PendingOrdersMaxRetry),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreatePendingOrdersJob())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// FindOrderIDs lists up to limit orders in the given statuses, oldest sale first.
func (c *CompositionRoot) FindOrderIDs(ctx context.Context, statuses []order.Status, limit int) ([]kernel.UUID, error) {
	return c.uowFactory.Create().OrderRepository().FindIDsByStatus(ctx, statuses, limit)
}

func (c *CompositionRoot) DB() *gorm.DB {
	return c.gormDB
}
