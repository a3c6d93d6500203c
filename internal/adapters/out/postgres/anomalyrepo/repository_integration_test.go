package anomalyrepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/anomalyrepo"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type AnomalyRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *anomalyrepo.GormAnomalyRepository
	tracker    *MockAggregateTracker
	orderID    kernel.UUID
}

func (suite *AnomalyRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&anomalyrepo.AnomalyDTO{}))
}

func (suite *AnomalyRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE anomalies").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = anomalyrepo.NewGormAnomalyRepository(suite.db, suite.tracker)
	suite.orderID = kernel.NewUUID()
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsAnomaly() {
	ctx := context.Background()
	lineID := kernel.NewUUID()
	a := suite.newAnomaly(&lineID, true)

	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", a.ID(), a)

	got, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(suite.orderID, got.OrderID())
	suite.Require().NotNil(got.LineID())
	suite.Equal(lineID, *got.LineID())
	suite.Equal(kernel.StageSewing, got.Service())
	suite.Equal(anomaly.High, got.Severity())
	suite.Equal("broken needle", got.Description())
	suite.True(got.Blocks())
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TestUpdate_ResolvedAnomalyStopsBlocking() {
	ctx := context.Background()
	lineID := kernel.NewUUID()
	a := suite.newAnomaly(&lineID, true)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	blocked, err := suite.repository.HasBlockingForLine(ctx, lineID)
	suite.Require().NoError(err)
	suite.True(blocked)

	a.Resolve()
	suite.Require().NoError(suite.repository.Update(ctx, a))

	blocked, err = suite.repository.HasBlockingForLine(ctx, lineID)
	suite.Require().NoError(err)
	suite.False(blocked)
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TestBlockingLookups() {
	ctx := context.Background()
	blockedLine := kernel.NewUUID()
	informativeLine := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newAnomaly(&blockedLine, true)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAnomaly(&blockedLine, true)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAnomaly(&informativeLine, false)))

	ids, err := suite.repository.BlockedLineIDs(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{blockedLine}, ids)

	orderBlocked, err := suite.repository.HasBlockingForOrder(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.False(orderBlocked, "line anomalies do not block the order header")

	suite.Require().NoError(suite.repository.Add(ctx, suite.newAnomaly(nil, true)))

	orderBlocked, err = suite.repository.HasBlockingForOrder(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.True(orderBlocked)
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TestDetachLine_KeepsOrderReference() {
	ctx := context.Background()
	lineID := kernel.NewUUID()
	a := suite.newAnomaly(&lineID, true)
	suite.Require().NoError(suite.repository.Add(ctx, a))

	suite.Require().NoError(suite.repository.DetachLine(ctx, lineID))

	got, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Nil(got.LineID())
	suite.Equal(suite.orderID, got.OrderID())

	orderBlocked, err := suite.repository.HasBlockingForOrder(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.True(orderBlocked)
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TestDeleteAndDeleteByOrder() {
	ctx := context.Background()
	a := suite.newAnomaly(nil, false)
	suite.Require().NoError(suite.repository.Add(ctx, a))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newAnomaly(nil, true)))

	suite.Require().NoError(suite.repository.Delete(ctx, a.ID()))
	suite.Require().ErrorIs(suite.repository.Delete(ctx, a.ID()), errs.ErrObjectNotFound)

	suite.Require().NoError(suite.repository.DeleteByOrder(ctx, suite.orderID))

	var count int64
	suite.Require().NoError(suite.db.Model(&anomalyrepo.AnomalyDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *AnomalyRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AnomalyRepositoryIntegrationTestSuite) newAnomaly(lineID *kernel.UUID, blocking bool) *anomaly.Anomaly {
	a, err := anomaly.NewAnomaly(
		kernel.NewUUID(),
		suite.orderID,
		lineID,
		kernel.StageSewing,
		anomaly.High,
		"broken needle",
		blocking,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return a
}

func TestAnomalyRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AnomalyRepositoryIntegrationTestSuite))
}
