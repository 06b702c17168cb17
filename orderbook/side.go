package orderbook

// Side identifies which half of the book an order belongs to.
type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

func ParseSide(s string) (Side, bool) {
	switch s {
	case "bid":
		return Bid, true
	case "ask":
		return Ask, true
	default:
		return "", false
	}
}

// OrderKind distinguishes limit orders, which may rest in the book,
// from market orders, which never do.
type OrderKind string

const (
	Limit  OrderKind = "limit"
	Market OrderKind = "market"
)

func ParseOrderKind(s string) (OrderKind, bool) {
	switch s {
	case "limit":
		return Limit, true
	case "market":
		return Market, true
	default:
		return "", false
	}
}
