package order

type GetOrderStatusInput struct {
	Symbol  string
	OrderID string
}

type GetPositionInput struct {
	// Symbol may be empty to list every position.
	Symbol string
}
