package salesrepo_test

import (
	"context"
	"testing"

	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/adapters/out/postgres/salesrepo"
	"production/internal/core/domain/model/sales"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type SalesOrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *salesrepo.GormSalesOrderRepository
}

func (suite *SalesOrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&salesrepo.SalesOrderDTO{}, &salesrepo.SalesOrderLineDTO{}))
	suite.repository = salesrepo.NewGormSalesOrderRepository(db)
}

func (suite *SalesOrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE sales_order_lines, sales_orders").Error)
}

func (suite *SalesOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SalesOrderRepositoryIntegrationTestSuite) TestGetByCode_ReturnsLinesInDocumentOrder() {
	red := "red"
	small, medium := "S", "M"
	customer := "Maison Rive"
	orderID := uuid.New()

	dto := salesrepo.SalesOrderDTO{
		ID:           orderID,
		Code:         "SO-10",
		CustomerName: &customer,
		Lines: []salesrepo.SalesOrderLineDTO{
			{ID: uuid.New(), Position: 2, ArticleRef: "A", Color: &red, Size: &medium, Qty: 3},
			{ID: uuid.New(), Position: 1, ArticleRef: "A", Color: &red, Size: &small, Qty: 5},
			{ID: uuid.New(), Position: 3, ArticleRef: "B", Qty: 2},
		},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	got, err := suite.repository.GetByCode(context.Background(), "SO-10")
	suite.Require().NoError(err)

	suite.Equal("SO-10", got.Code())
	suite.Equal(customer, got.CustomerName())
	suite.Equal([]sales.Line{
		{ArticleRef: "A", Color: "red", Size: "S", Qty: 5},
		{ArticleRef: "A", Color: "red", Size: "M", Qty: 3},
		{ArticleRef: "B", Color: "", Size: "", Qty: 2},
	}, got.Lines())
}

func (suite *SalesOrderRepositoryIntegrationTestSuite) TestGetByCode_Unknown_ReturnsNotFound() {
	got, err := suite.repository.GetByCode(context.Background(), "SO-404")

	suite.Nil(got)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestSalesOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SalesOrderRepositoryIntegrationTestSuite))
}
