package model

// All returns every model in migration order.
func All() []any {
	return []any{
		&User{},
		&Client{},
		&Vehicle{},
		&WorkOrder{},
		&OrderItem{},
		&StatusHistoryEntry{},
	}
}
