package orderbook

import (
	"container/list"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// level is the FIFO queue of resting orders sharing one exact price.
// A level is created on the first insertion at its price and deleted the
// moment its last order is removed; it is never empty while present.
type level struct {
	price    decimal.Decimal
	queue    *list.List // of *Order, front = oldest
	totalQty decimal.Decimal
}

// entry locates a resting order: its level and its position inside the
// level's queue. The index map of entries is the single source of truth
// for whether an id currently rests.
type entry struct {
	order *Order
	level *level
	elem  *list.Element
}

// Book holds the resting state for one asset pair: a bid ladder sorted
// best (highest) first, an ask ladder sorted best (lowest) first, and an
// id index for O(1) lookup. The Book owns all orders and levels; mutation
// goes through the Engine only.
type Book struct {
	pair  string
	bids  *rbt.Tree // decimal.Decimal -> *level
	asks  *rbt.Tree
	index map[uuid.UUID]*entry
	seq   uint64
}

func NewBook(pair string) *Book {
	return &Book{
		pair:  pair,
		bids:  rbt.NewWith(BidComparator),
		asks:  rbt.NewWith(AskComparator),
		index: make(map[uuid.UUID]*entry),
	}
}

// Pair returns the asset pair this book was created for.
func (b *Book) Pair() string { return b.pair }

func (b *Book) ladder(side Side) *rbt.Tree {
	if side == Bid {
		return b.bids
	}
	return b.asks
}

func (b *Book) contains(id uuid.UUID) bool {
	_, ok := b.index[id]
	return ok
}

func (b *Book) lookup(id uuid.UUID) (*entry, bool) {
	e, ok := b.index[id]
	return e, ok
}

// add appends the order to the back of its price level, creating the
// level if absent, and indexes it. The order receives its arrival
// sequence here.
func (b *Book) add(o *Order) error {
	if b.contains(o.ID) {
		return ErrDuplicateOrderID
	}
	ladder := b.ladder(o.Side)
	var lvl *level
	if v, found := ladder.Get(o.Price); found {
		lvl = v.(*level)
	} else {
		lvl = &level{price: o.Price, queue: list.New()}
		ladder.Put(o.Price, lvl)
	}
	b.seq++
	o.Sequence = b.seq
	elem := lvl.queue.PushBack(o)
	lvl.totalQty = lvl.totalQty.Add(o.RemainingQty)
	b.index[o.ID] = &entry{order: o, level: lvl, elem: elem}
	return nil
}

// remove unlinks the order from its level, deletes the level if that
// emptied it, and unindexes the id.
func (b *Book) remove(id uuid.UUID) (*Order, error) {
	e, ok := b.index[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	e.level.queue.Remove(e.elem)
	e.level.totalQty = e.level.totalQty.Sub(e.order.RemainingQty)
	if e.level.queue.Len() == 0 {
		b.ladder(e.order.Side).Remove(e.level.price)
	}
	delete(b.index, id)
	return e.order, nil
}

// reduce subtracts qty from the order's remaining quantity after a match.
// The caller removes the order once its remainder reaches zero.
func (b *Book) reduce(id uuid.UUID, qty decimal.Decimal) {
	if e, ok := b.index[id]; ok {
		e.order.RemainingQty = e.order.RemainingQty.Sub(qty)
		e.level.totalQty = e.level.totalQty.Sub(qty)
	}
}

// resize sets the order's remaining quantity in place, preserving its
// queue position.
func (b *Book) resize(id uuid.UUID, newQty decimal.Decimal) {
	if e, ok := b.index[id]; ok {
		e.level.totalQty = e.level.totalQty.Sub(e.order.RemainingQty).Add(newQty)
		e.order.RemainingQty = newQty
	}
}

// best returns the front order of the extreme price level on the side:
// the highest bid or the lowest ask. Nil when the side is empty.
func (b *Book) best(side Side) *Order {
	node := b.ladder(side).Left()
	if node == nil {
		return nil
	}
	front := node.Value.(*level).queue.Front()
	if front == nil {
		return nil
	}
	return front.Value.(*Order)
}

// BestBid returns the highest resting bid price.
func (b *Book) BestBid() (decimal.Decimal, bool) {
	if o := b.best(Bid); o != nil {
		return o.Price, true
	}
	return decimal.Decimal{}, false
}

// BestAsk returns the lowest resting ask price.
func (b *Book) BestAsk() (decimal.Decimal, bool) {
	if o := b.best(Ask); o != nil {
		return o.Price, true
	}
	return decimal.Decimal{}, false
}

// Quote is the spread view. Each side is null while that side of the book
// is empty; Spread is valid only when both sides are present.
type Quote struct {
	Bid    decimal.NullDecimal
	Ask    decimal.NullDecimal
	Spread decimal.NullDecimal
}

// Spread reports the current best bid, best ask and their difference.
// Pure query: no mutation.
func (b *Book) Spread() Quote {
	var q Quote
	if bid, ok := b.BestBid(); ok {
		q.Bid = somePrice(bid)
	}
	if ask, ok := b.BestAsk(); ok {
		q.Ask = somePrice(ask)
	}
	if q.Bid.Valid && q.Ask.Valid {
		q.Spread = somePrice(q.Ask.Decimal.Sub(q.Bid.Decimal))
	}
	return q
}

// DepthLevel is one aggregated price level of the depth view.
type DepthLevel struct {
	Price  decimal.Decimal
	Qty    decimal.Decimal
	Orders int
}

// Depth aggregates both ladders best-first. limit caps the levels
// returned per side; zero means all.
type Depth struct {
	Pair string
	Bids []DepthLevel
	Asks []DepthLevel
}

func (b *Book) Depth(limit int) Depth {
	return Depth{
		Pair: b.pair,
		Bids: ladderLevels(b.bids, limit),
		Asks: ladderLevels(b.asks, limit),
	}
}

func ladderLevels(ladder *rbt.Tree, limit int) []DepthLevel {
	levels := make([]*level, 0, ladder.Size())
	it := ladder.Iterator()
	for it.Next() {
		if limit > 0 && len(levels) == limit {
			break
		}
		levels = append(levels, it.Value().(*level))
	}
	return lo.Map(levels, func(lvl *level, _ int) DepthLevel {
		return DepthLevel{Price: lvl.price, Qty: lvl.totalQty, Orders: lvl.queue.Len()}
	})
}

// Len reports the number of resting orders across both sides.
func (b *Book) Len() int { return len(b.index) }

// SideLen reports the number of resting orders on one side.
func (b *Book) SideLen(side Side) int {
	n := 0
	it := b.ladder(side).Iterator()
	for it.Next() {
		n += it.Value().(*level).queue.Len()
	}
	return n
}

// AskComparator sorts a ladder ascending, so the leftmost ask is the
// cheapest.
func AskComparator(a, b interface{}) int {
	aAsserted := a.(decimal.Decimal)
	bAsserted := b.(decimal.Decimal)
	switch {
	case aAsserted.GreaterThan(bAsserted):
		return 1
	case aAsserted.LessThan(bAsserted):
		return -1
	default:
		return 0
	}
}

// BidComparator sorts a ladder descending, so the leftmost bid is the
// highest.
func BidComparator(a, b interface{}) int {
	aAsserted := a.(decimal.Decimal)
	bAsserted := b.(decimal.Decimal)
	switch {
	case aAsserted.GreaterThan(bAsserted):
		return -1
	case aAsserted.LessThan(bAsserted):
		return 1
	default:
		return 0
	}
}
