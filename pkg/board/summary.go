package board

import "sort"

// Summarize builds the live board view from a snapshot of orders. Pure: the
// input is only read, and identical input yields identical output including
// ordering. Cancelled orders are skipped; within a side, orders with an
// exactly-equal price collapse into one Summary whose Quantity is the sum.
//
// Buys come back sorted high to low (best bid first), Sells low to high (best
// ask first). Price is the grouping key, so a price appears at most once per
// side and no tie-breaking is needed.
func Summarize(orders []*Order) Board {
	var buys, sells []*Order
	for _, o := range orders {
		if o.Status != Active {
			continue
		}
		if o.Side == Buy {
			buys = append(buys, o)
		} else {
			sells = append(sells, o)
		}
	}

	return Board{
		Buys:  levels(buys, Buy, func(a, b *Order) bool { return a.Price.Cmp(b.Price) > 0 }),
		Sells: levels(sells, Sell, func(a, b *Order) bool { return a.Price.Cmp(b.Price) < 0 }),
	}
}

// levels sorts one side's orders by price and merges equal-priced runs.
// Sorting first sidesteps using decimals as map keys: equality is Cmp == 0,
// so 305 and 305.00 land in the same level while 305.001 stays separate.
func levels(orders []*Order, side Side, less func(a, b *Order) bool) []Summary {
	out := []Summary{}
	if len(orders) == 0 {
		return out
	}

	sorted := make([]*Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	cur := Summary{Price: sorted[0].Price, Side: side, Quantity: sorted[0].Quantity}
	for _, o := range sorted[1:] {
		if o.Price.Cmp(cur.Price) == 0 {
			cur.Quantity = cur.Quantity.Add(o.Quantity)
			continue
		}
		out = append(out, cur)
		cur = Summary{Price: o.Price, Side: side, Quantity: o.Quantity}
	}
	return append(out, cur)
}
