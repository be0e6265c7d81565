package domain

// TablePosition новое положение стола на схеме
type TablePosition struct {
	TableID  int64
	Position Position
}

// Collision пара столов, стоящих ближе порога
type Collision struct {
	TableA   int64
	TableB   int64
	Distance float64
}
