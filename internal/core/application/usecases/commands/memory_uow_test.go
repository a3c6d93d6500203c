package commands_test

import (
	"context"
	"maps"
	"slices"
	"strings"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/model/anomaly"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/line"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/sales"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// memState is one consistent snapshot of every table.
type memState struct {
	orders    map[kernel.UUID]order.ProductionOrder
	lines     map[kernel.UUID]line.Line
	sizes     map[kernel.UUID]map[string]line.Size
	anomalies map[kernel.UUID]anomaly.Anomaly
}

func (s memState) clone() memState {
	sizes := make(map[kernel.UUID]map[string]line.Size, len(s.sizes))
	for lineID, bySize := range s.sizes {
		sizes[lineID] = maps.Clone(bySize)
	}
	return memState{
		orders:    maps.Clone(s.orders),
		lines:     maps.Clone(s.lines),
		sizes:     sizes,
		anomalies: maps.Clone(s.anomalies),
	}
}

// memDB is a transactional in-memory store: a unit of work edits a private copy that
// replaces the committed state on Commit.
type memDB struct {
	state memState
	sales map[string]*sales.SalesOrder

	// stolenSeqs makes the next line inserts fail as if a concurrent writer took the seq.
	stolenSeqs int
	commits    int
	// afterListIDs runs once the order ids were read, to interleave a concurrent writer.
	afterListIDs func()
}

func newMemDB() *memDB {
	return &memDB{
		state: memState{
			orders:    map[kernel.UUID]order.ProductionOrder{},
			lines:     map[kernel.UUID]line.Line{},
			sizes:     map[kernel.UUID]map[string]line.Size{},
			anomalies: map[kernel.UUID]anomaly.Anomaly{},
		},
		sales: map[string]*sales.SalesOrder{},
	}
}

func (db *memDB) Create() commands.UoW {
	return &memUoW{db: db}
}

type memUoW struct {
	db *memDB
	tx *memState
}

func (u *memUoW) Begin(context.Context) error {
	if u.tx == nil {
		st := u.db.state.clone()
		u.tx = &st
	}
	return nil
}

func (u *memUoW) Commit(context.Context) error {
	if u.tx == nil {
		return errs.NewInvalidStateError("no transaction")
	}
	u.db.state = *u.tx
	u.db.commits++
	u.tx = nil
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	if u.tx == nil {
		return errs.NewInvalidStateError("no transaction")
	}
	u.tx = nil
	return nil
}

func (u *memUoW) st() *memState {
	if u.tx != nil {
		return u.tx
	}
	return &u.db.state
}

func (u *memUoW) ProductionOrderRepository() ports.ProductionOrderRepository {
	return memOrderRepo{u}
}

func (u *memUoW) LineRepository() ports.LineRepository {
	return memLineRepo{u}
}

func (u *memUoW) AnomalyRepository() ports.AnomalyRepository {
	return memAnomalyRepo{u}
}

func (u *memUoW) SalesOrderRepository() ports.SalesOrderRepository {
	return memSalesRepo{u}
}

type memOrderRepo struct{ u *memUoW }

func (r memOrderRepo) Add(_ context.Context, o *order.ProductionOrder) error {
	for _, existing := range r.u.st().orders {
		if existing.Code() == o.Code() {
			return errs.NewConflictError("production order", "code already exists")
		}
	}
	r.u.st().orders[o.ID()] = *o
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.ProductionOrder) error {
	if _, ok := r.u.st().orders[o.ID()]; !ok {
		return errs.NewObjectNotFoundError("production order", o.ID().String())
	}
	r.u.st().orders[o.ID()] = *o
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	o, ok := r.u.st().orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("production order", id.String())
	}
	return &o, nil
}

func (r memOrderRepo) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.st().orders[id]; !ok {
		return errs.NewObjectNotFoundError("production order", id.String())
	}
	delete(r.u.st().orders, id)
	return nil
}

func (r memOrderRepo) ListIDs(context.Context) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(r.u.st().orders))
	for id := range r.u.st().orders {
		ids = append(ids, id)
	}
	if r.u.db.afterListIDs != nil {
		r.u.db.afterListIDs()
	}
	return ids, nil
}

type memLineRepo struct{ u *memUoW }

func (r memLineRepo) Add(_ context.Context, l *line.Line) error {
	if r.u.db.stolenSeqs > 0 {
		r.u.db.stolenSeqs--
		return ports.ErrLineSequenceTaken
	}
	for _, existing := range r.u.st().lines {
		if existing.OrderID().IsEqual(l.OrderID()) && existing.Seq() == l.Seq() {
			return ports.ErrLineSequenceTaken
		}
	}
	r.u.st().lines[l.ID()] = *l
	return nil
}

func (r memLineRepo) Update(_ context.Context, l *line.Line) error {
	if _, ok := r.u.st().lines[l.ID()]; !ok {
		return errs.NewObjectNotFoundError("production order line", l.ID().String())
	}
	r.u.st().lines[l.ID()] = *l
	return nil
}

func (r memLineRepo) Get(_ context.Context, id kernel.UUID) (*line.Line, error) {
	l, ok := r.u.st().lines[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("production order line", id.String())
	}
	return &l, nil
}

func (r memLineRepo) ListByOrder(_ context.Context, orderID kernel.UUID) ([]*line.Line, error) {
	out := make([]*line.Line, 0)
	for _, l := range r.u.st().lines {
		if l.OrderID().IsEqual(orderID) {
			out = append(out, &l)
		}
	}
	slices.SortFunc(out, func(a, b *line.Line) int { return a.Seq() - b.Seq() })
	return out, nil
}

func (r memLineRepo) MaxSeq(_ context.Context, orderID kernel.UUID) (int, error) {
	maxSeq := 0
	for _, l := range r.u.st().lines {
		if l.OrderID().IsEqual(orderID) && l.Seq() > maxSeq {
			maxSeq = l.Seq()
		}
	}
	return maxSeq, nil
}

func (r memLineRepo) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.st().lines[id]; !ok {
		return errs.NewObjectNotFoundError("production order line", id.String())
	}
	delete(r.u.st().lines, id)
	delete(r.u.st().sizes, id)
	return nil
}

func (r memLineRepo) DeleteByOrder(ctx context.Context, orderID kernel.UUID) error {
	lines, _ := r.ListByOrder(ctx, orderID)
	for _, l := range lines {
		delete(r.u.st().lines, l.ID())
		delete(r.u.st().sizes, l.ID())
	}
	return nil
}

func (r memLineRepo) UpsertSize(_ context.Context, s *line.Size) error {
	bySize, ok := r.u.st().sizes[s.LineID()]
	if !ok {
		bySize = map[string]line.Size{}
		r.u.st().sizes[s.LineID()] = bySize
	}
	if existing, found := bySize[s.Label()]; found {
		replaced, err := line.NewSize(existing.ID(), s.LineID(), s.Label(), s.Quantities())
		if err != nil {
			return err
		}
		bySize[s.Label()] = *replaced
		return nil
	}
	bySize[s.Label()] = *s
	return nil
}

func (r memLineRepo) DeleteSize(_ context.Context, lineID kernel.UUID, label string) error {
	if _, ok := r.u.st().sizes[lineID][label]; !ok {
		return errs.NewObjectNotFoundError("production order line size", label)
	}
	delete(r.u.st().sizes[lineID], label)
	return nil
}

func (r memLineRepo) ListSizes(_ context.Context, lineID kernel.UUID) ([]*line.Size, error) {
	out := make([]*line.Size, 0)
	for _, s := range r.u.st().sizes[lineID] {
		out = append(out, &s)
	}
	slices.SortFunc(out, func(a, b *line.Size) int { return strings.Compare(a.Label(), b.Label()) })
	return out, nil
}

type memAnomalyRepo struct{ u *memUoW }

func (r memAnomalyRepo) Add(_ context.Context, a *anomaly.Anomaly) error {
	r.u.st().anomalies[a.ID()] = *a
	return nil
}

func (r memAnomalyRepo) Update(_ context.Context, a *anomaly.Anomaly) error {
	if _, ok := r.u.st().anomalies[a.ID()]; !ok {
		return errs.NewObjectNotFoundError("anomaly", a.ID().String())
	}
	r.u.st().anomalies[a.ID()] = *a
	return nil
}

func (r memAnomalyRepo) Get(_ context.Context, id kernel.UUID) (*anomaly.Anomaly, error) {
	a, ok := r.u.st().anomalies[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("anomaly", id.String())
	}
	return &a, nil
}

func (r memAnomalyRepo) Delete(_ context.Context, id kernel.UUID) error {
	if _, ok := r.u.st().anomalies[id]; !ok {
		return errs.NewObjectNotFoundError("anomaly", id.String())
	}
	delete(r.u.st().anomalies, id)
	return nil
}

func (r memAnomalyRepo) HasBlockingForLine(_ context.Context, lineID kernel.UUID) (bool, error) {
	for _, a := range r.u.st().anomalies {
		if a.Blocks() && a.LineID() != nil && a.LineID().IsEqual(lineID) {
			return true, nil
		}
	}
	return false, nil
}

func (r memAnomalyRepo) HasBlockingForOrder(_ context.Context, orderID kernel.UUID) (bool, error) {
	for _, a := range r.u.st().anomalies {
		if a.Blocks() && a.LineID() == nil && a.OrderID().IsEqual(orderID) {
			return true, nil
		}
	}
	return false, nil
}

func (r memAnomalyRepo) BlockedLineIDs(_ context.Context, orderID kernel.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0)
	for _, a := range r.u.st().anomalies {
		if a.Blocks() && a.LineID() != nil && a.OrderID().IsEqual(orderID) {
			ids = append(ids, *a.LineID())
		}
	}
	return kernel.UniqueUUIDs(ids...), nil
}

func (r memAnomalyRepo) DetachLine(_ context.Context, lineID kernel.UUID) error {
	for id, a := range r.u.st().anomalies {
		if a.LineID() != nil && a.LineID().IsEqual(lineID) {
			a.DetachLine()
			r.u.st().anomalies[id] = a
		}
	}
	return nil
}

func (r memAnomalyRepo) DeleteByOrder(_ context.Context, orderID kernel.UUID) error {
	for id, a := range r.u.st().anomalies {
		if a.OrderID().IsEqual(orderID) {
			delete(r.u.st().anomalies, id)
		}
	}
	return nil
}

type memSalesRepo struct{ u *memUoW }

func (r memSalesRepo) GetByCode(_ context.Context, code string) (*sales.SalesOrder, error) {
	so, ok := r.u.db.sales[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sales order", code)
	}
	return so, nil
}
