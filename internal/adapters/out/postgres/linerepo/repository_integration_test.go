package linerepo_test

import (
	"context"
	"testing"
	"time"

	"production/internal/adapters/out/postgres/linerepo"
	"production/internal/adapters/out/postgres/pgtest"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/ports"
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

type LineRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *linerepo.GormLineRepository
	tracker    *MockAggregateTracker
	orderID    kernel.UUID
}

func (suite *LineRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&linerepo.LineDTO{}, &linerepo.SizeDTO{}))
}

func (suite *LineRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE production_order_line_sizes, production_order_lines").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = linerepo.NewGormLineRepository(suite.db, suite.tracker)
	suite.orderID = kernel.NewUUID()
}

func (suite *LineRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LineRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsLine() {
	ctx := context.Background()
	l := suite.newLine(1, "ART-10", "navy", 12)

	suite.Require().NoError(suite.repository.Add(ctx, l))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", l.ID(), l)

	got, err := suite.repository.Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Equal("OP-1.1", got.Code())
	suite.Equal(suite.orderID, got.OrderID())
	suite.Equal("ART-10", got.ArticleRef())
	suite.Equal("navy", got.Color())
	suite.Equal(line.Quantities{Ordered: 12, ToProduce: 12}, got.Quantities())
	suite.Equal(kernel.StagePlanning, got.ServiceCurrent())
	suite.Equal(kernel.StateDraft, got.State())
}

func (suite *LineRepositoryIntegrationTestSuite) TestAdd_TakenSeq_ReturnsSequenceTakenAndKeepsTransactionUsable() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newLine(1, "ART-1", "", 1)))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		repo := linerepo.NewGormLineRepository(tx, suite.tracker)

		dupErr := repo.Add(ctx, suite.newLine(1, "ART-2", "", 1))
		suite.Require().ErrorIs(dupErr, ports.ErrLineSequenceTaken)
		suite.Require().ErrorIs(dupErr, errs.ErrConflict)

		return repo.Add(ctx, suite.newLine(2, "ART-2", "", 1))
	})
	suite.Require().NoError(err)

	maxSeq, err := suite.repository.MaxSeq(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.Equal(2, maxSeq)
}

func (suite *LineRepositoryIntegrationTestSuite) TestMaxSeq_NoLines_ReturnsZero() {
	maxSeq, err := suite.repository.MaxSeq(context.Background(), suite.orderID)
	suite.Require().NoError(err)
	suite.Equal(0, maxSeq)
}

func (suite *LineRepositoryIntegrationTestSuite) TestListByOrder_OrderedBySeq() {
	ctx := context.Background()
	for _, seq := range []int{3, 1, 2} {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newLine(seq, "ART", "", 1)))
	}
	other, err := line.NewLine(kernel.NewUUID(), kernel.NewUUID(), "OP-9", 1, "ART", "", line.Quantities{}, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, other))

	lines, err := suite.repository.ListByOrder(ctx, suite.orderID)
	suite.Require().NoError(err)
	suite.Require().Len(lines, 3)
	suite.Equal([]int{1, 2, 3}, []int{lines[0].Seq(), lines[1].Seq(), lines[2].Seq()})
}

func (suite *LineRepositoryIntegrationTestSuite) TestUpdate_PersistsStageAndQuantities() {
	ctx := context.Background()
	l := suite.newLine(1, "ART", "", 4)
	suite.Require().NoError(suite.repository.Add(ctx, l))

	now := time.Now().UTC()
	produced := 4
	suite.Require().NoError(l.ApplyEdit(line.Edit{Produced: &produced}, now))
	suite.Require().NoError(l.Advance(now))
	suite.Require().NoError(suite.repository.Update(ctx, l))

	got, err := suite.repository.Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Equal(kernel.StageCutting, got.ServiceCurrent())
	suite.Equal(4, got.Quantities().Produced)
}

func (suite *LineRepositoryIntegrationTestSuite) TestSizes_UpsertListDelete() {
	ctx := context.Background()
	l := suite.newLine(1, "ART", "", 10)
	suite.Require().NoError(suite.repository.Add(ctx, l))

	suite.Require().NoError(suite.repository.UpsertSize(ctx, suite.newSize(l.ID(), "M", 4)))
	suite.Require().NoError(suite.repository.UpsertSize(ctx, suite.newSize(l.ID(), "L", 6)))
	suite.Require().NoError(suite.repository.UpsertSize(ctx, suite.newSize(l.ID(), "M", 5)))

	sizes, err := suite.repository.ListSizes(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Require().Len(sizes, 2)
	suite.Equal("L", sizes[0].Label())
	suite.Equal("M", sizes[1].Label())
	suite.Equal(5, sizes[1].Quantities().Ordered)

	suite.Require().NoError(suite.repository.DeleteSize(ctx, l.ID(), "L"))
	err = suite.repository.DeleteSize(ctx, l.ID(), "L")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	sizes, err = suite.repository.ListSizes(ctx, l.ID())
	suite.Require().NoError(err)
	suite.Len(sizes, 1)
}

func (suite *LineRepositoryIntegrationTestSuite) TestDelete_RemovesSizes() {
	ctx := context.Background()
	l := suite.newLine(1, "ART", "", 10)
	suite.Require().NoError(suite.repository.Add(ctx, l))
	suite.Require().NoError(suite.repository.UpsertSize(ctx, suite.newSize(l.ID(), "S", 10)))

	suite.Require().NoError(suite.repository.Delete(ctx, l.ID()))

	_, err := suite.repository.Get(ctx, l.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.assertCount(&linerepo.SizeDTO{}, 0)

	err = suite.repository.Delete(ctx, l.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LineRepositoryIntegrationTestSuite) TestDeleteByOrder() {
	ctx := context.Background()
	for seq := 1; seq <= 3; seq++ {
		l := suite.newLine(seq, "ART", "", 1)
		suite.Require().NoError(suite.repository.Add(ctx, l))
		suite.Require().NoError(suite.repository.UpsertSize(ctx, suite.newSize(l.ID(), "U", 1)))
	}

	suite.Require().NoError(suite.repository.DeleteByOrder(ctx, suite.orderID))

	suite.assertCount(&linerepo.LineDTO{}, 0)
	suite.assertCount(&linerepo.SizeDTO{}, 0)
}

func (suite *LineRepositoryIntegrationTestSuite) newLine(seq int, articleRef, color string, ordered int) *line.Line {
	qty, err := line.NewQuantities(ordered, nil)
	suite.Require().NoError(err)
	l, err := line.NewLine(kernel.NewUUID(), suite.orderID, "OP-1", seq, articleRef, color, qty, time.Now().UTC())
	suite.Require().NoError(err)
	return l
}

func (suite *LineRepositoryIntegrationTestSuite) newSize(lineID kernel.UUID, label string, ordered int) *line.Size {
	qty, err := line.NewQuantities(ordered, nil)
	suite.Require().NoError(err)
	s, err := line.NewSize(kernel.NewUUID(), lineID, label, qty)
	suite.Require().NoError(err)
	return s
}

func (suite *LineRepositoryIntegrationTestSuite) assertCount(model any, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(model).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestLineRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LineRepositoryIntegrationTestSuite))
}
