package index

import (
	"fmt"
	"strings"
	"time"

	"github.com/0x5844/motif/bitset"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Expr is a query expression. Eval returns a fresh bitset over Domain that
// the caller owns.
type Expr interface {
	Domain(idx *Index) Domain
	Eval(idx *Index) *bitset.Bitset
	String() string
}

type featureExpr struct{ id FeatureID }

// Feature selects the entities for which feature id holds.
func Feature(id FeatureID) Expr { return featureExpr{id: id} }

func (e featureExpr) Domain(idx *Index) Domain { return idx.Feature(e.id).Domain }

func (e featureExpr) Eval(idx *Index) *bitset.Bitset { return idx.FeatureBits(e.id).Clone() }

func (e featureExpr) String() string { return fmt.Sprintf("feature(%d)", e.id) }

type andExpr struct{ terms []Expr }

// And intersects expressions over the same domain.
func And(a, b Expr, more ...Expr) Expr {
	return andExpr{terms: append([]Expr{a, b}, more...)}
}

func (e andExpr) Domain(idx *Index) Domain {
	d := e.terms[0].Domain(idx)
	for _, t := range e.terms[1:] {
		if td := t.Domain(idx); td != d {
			panic(fmt.Sprintf("index: And over %s and %s", d, td))
		}
	}
	return d
}

func (e andExpr) Eval(idx *Index) *bitset.Bitset {
	e.Domain(idx)
	result := e.terms[0].Eval(idx)
	for _, t := range e.terms[1:] {
		result.AndWith(t.Eval(idx))
	}
	return result
}

func (e andExpr) String() string {
	parts := make([]string, len(e.terms))
	for i, t := range e.terms {
		parts[i] = t.String()
	}
	return "and(" + strings.Join(parts, ", ") + ")"
}

type projectExpr struct {
	rel   RelationID
	inner Expr
	left  bool // project onto the left side
}

// ProjectLeft maps a filter over rel's right domain onto its left domain.
func ProjectLeft(rel RelationID, right Expr) Expr {
	return projectExpr{rel: rel, inner: right, left: true}
}

// ProjectRight maps a filter over rel's left domain onto its right domain.
func ProjectRight(rel RelationID, left Expr) Expr {
	return projectExpr{rel: rel, inner: left}
}

// Positions maps a filter over instances onto the positions holding them.
func Positions(instances Expr) Expr {
	return ProjectRight(InstanceInPosition, instances)
}

func (e projectExpr) sides(idx *Index) (from, to Domain) {
	info := idx.Relation(e.rel).Info()
	if e.left {
		from, to = info.Right, info.Left
	} else {
		from, to = info.Left, info.Right
	}
	if d := e.inner.Domain(idx); d != from {
		panic(fmt.Sprintf("index: projecting %s through %s needs a %s filter", d, info.Name, from))
	}
	return from, to
}

func (e projectExpr) Domain(idx *Index) Domain {
	_, to := e.sides(idx)
	return to
}

func (e projectExpr) Eval(idx *Index) *bitset.Bitset {
	_, to := e.sides(idx)
	r := idx.Relation(e.rel)
	filter := e.inner.Eval(idx)
	if e.left {
		return r.ProjectLeft(filter, idx.Size(to))
	}
	return r.ProjectRight(filter, idx.Size(to))
}

func (e projectExpr) String() string {
	dir := "right"
	if e.left {
		dir = "left"
	}
	return fmt.Sprintf("project_%s(%d, %s)", dir, e.rel, e.inner)
}

// Validate reports an error if expr mixes domains, names an unknown feature
// or relation, or does not yield positions.
func (idx *Index) Validate(expr Expr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("%v", r)
		}
	}()
	if d := expr.Domain(idx); d != DomainPosition {
		return errors.Newf("index: query result is over %s, want %s", d, DomainPosition)
	}
	return nil
}

func (idx *Index) evalPositions(expr Expr) *bitset.Bitset {
	if d := expr.Domain(idx); d != DomainPosition {
		panic(fmt.Sprintf("index: query result is over %s, want %s", d, DomainPosition))
	}
	return expr.Eval(idx)
}

// FullQuery evaluates expr, which must yield positions, and calls consumer
// with every matching position id in ascending order before returning.
// consumer must not modify the index.
func (idx *Index) FullQuery(expr Expr, consumer func(positionID uint64)) {
	start := time.Now()
	result := idx.evalPositions(expr)
	var matches uint64
	result.ForEach(func(id uint64) {
		matches++
		consumer(id)
	})
	idx.queryDone(expr, matches, start)
}

// Collect evaluates expr, which must yield positions, into a roaring bitmap.
func (idx *Index) Collect(expr Expr) *roaring64.Bitmap {
	start := time.Now()
	result := idx.evalPositions(expr)
	bm := roaring64.New()
	result.ForEach(bm.Add)
	bm.RunOptimize()
	idx.queryDone(expr, bm.GetCardinality(), start)
	return bm
}

// Count returns the number of positions matching expr.
func (idx *Index) Count(expr Expr) uint64 {
	start := time.Now()
	n := idx.evalPositions(expr).Count()
	idx.queryDone(expr, n, start)
	return n
}

func (idx *Index) queryDone(expr Expr, matches uint64, start time.Time) {
	elapsed := time.Since(start)
	idx.observer.QueryCompleted(matches, elapsed)
	idx.logger.Debug("query finished",
		zap.Stringer("expr", expr),
		zap.Uint64("matches", matches),
		zap.Duration("elapsed", elapsed))
}
