package cmd

import (
	"log/slog"

	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/postgres"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/services"
	"production/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory commands.UoWFactory
	propagator services.AnomalyPropagator
	grouper    services.SalesImportGrouper
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	gormFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	return CompositionRoot{
		cfg:    cfg,
		gormDB: gormDB,
		uowFactory: FuncUoWFactory(func() commands.UoW {
			return gormFactory.Create()
		}),
		propagator: services.NewAnomalyPropagator(services.NewStateDeriver()),
		grouper:    services.NewSalesImportGrouper(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateProductionOrderCommandHandler() commands.CreateProductionOrderCommandHandler {
	return commands.NewCreateProductionOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateUpdateProductionOrderCommandHandler() commands.UpdateProductionOrderCommandHandler {
	return commands.NewUpdateProductionOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateDeleteProductionOrderCommandHandler() commands.DeleteProductionOrderCommandHandler {
	return commands.NewDeleteProductionOrderCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateCreateLineCommandHandler() commands.CreateLineCommandHandler {
	return commands.NewCreateLineCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateUpdateLineCommandHandler() commands.UpdateLineCommandHandler {
	return commands.NewUpdateLineCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateAdvanceLineCommandHandler() commands.AdvanceLineCommandHandler {
	return commands.NewAdvanceLineCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateDeleteLineCommandHandler() commands.DeleteLineCommandHandler {
	return commands.NewDeleteLineCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateUpsertLineSizeCommandHandler() commands.UpsertLineSizeCommandHandler {
	return commands.NewUpsertLineSizeCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateDeleteLineSizeCommandHandler() commands.DeleteLineSizeCommandHandler {
	return commands.NewDeleteLineSizeCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateCreateAnomalyCommandHandler() commands.CreateAnomalyCommandHandler {
	return commands.NewCreateAnomalyCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateUpdateAnomalyCommandHandler() commands.UpdateAnomalyCommandHandler {
	return commands.NewUpdateAnomalyCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateDeleteAnomalyCommandHandler() commands.DeleteAnomalyCommandHandler {
	return commands.NewDeleteAnomalyCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateImportFromSalesCommandHandler() commands.ImportFromSalesCommandHandler {
	return commands.NewImportFromSalesCommandHandler(c.uowFactory, c.grouper, c.propagator)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.uowFactory, c.propagator)
}

func (c *CompositionRoot) CreateListProductionOrdersQueryHandler() queries.ListProductionOrdersQueryHandler {
	return queries.NewListProductionOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProductionOrderQueryHandler() queries.GetProductionOrderQueryHandler {
	return queries.NewGetProductionOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateExportProductionOrderQueryHandler() queries.ExportProductionOrderQueryHandler {
	return queries.NewExportProductionOrderQueryHandler(c.CreateGetProductionOrderQueryHandler())
}

func (c *CompositionRoot) CreateListSalesOrdersQueryHandler() queries.ListSalesOrdersQueryHandler {
	return queries.NewListSalesOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSalesOrderQueryHandler() queries.GetSalesOrderQueryHandler {
	return queries.NewGetSalesOrderQueryHandler(c.gormDB)
}

// CreateHTTPHandlers wires every use case exposed by the HTTP server.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateProductionOrder: c.CreateCreateProductionOrderCommandHandler(),
		UpdateProductionOrder: c.CreateUpdateProductionOrderCommandHandler(),
		DeleteProductionOrder: c.CreateDeleteProductionOrderCommandHandler(),
		CreateLine:            c.CreateCreateLineCommandHandler(),
		UpdateLine:            c.CreateUpdateLineCommandHandler(),
		AdvanceLine:           c.CreateAdvanceLineCommandHandler(),
		DeleteLine:            c.CreateDeleteLineCommandHandler(),
		UpsertLineSize:        c.CreateUpsertLineSizeCommandHandler(),
		DeleteLineSize:        c.CreateDeleteLineSizeCommandHandler(),
		CreateAnomaly:         c.CreateCreateAnomalyCommandHandler(),
		UpdateAnomaly:         c.CreateUpdateAnomalyCommandHandler(),
		DeleteAnomaly:         c.CreateDeleteAnomalyCommandHandler(),
		ImportFromSales:       c.CreateImportFromSalesCommandHandler(),
		ReconcileOrders:       c.CreateReconcileOrdersCommandHandler(),

		ListProductionOrders:  c.CreateListProductionOrdersQueryHandler(),
		GetProductionOrder:    c.CreateGetProductionOrderQueryHandler(),
		ExportProductionOrder: c.CreateExportProductionOrderQueryHandler(),
		ListSalesOrders:       c.CreateListSalesOrdersQueryHandler(),
		GetSalesOrder:         c.CreateGetSalesOrderQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileOrdersCommandHandler(), c.cfg.ReconcileCron, c.logger)
}

// FuncUoWFactory adapts the GORM factory, whose Create returns ports.UnitOfWork, to
// commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
