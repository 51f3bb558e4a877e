package entities

// ChartSpec is the boundary contract towards chart-rendering consumers:
// one bar/value drawn against a fixed axis maximum. Rendering mechanics
// belong entirely to the consumer.
type ChartSpec struct {
	Title   string  `json:"title"`
	Units   string  `json:"units"`
	AxisMax float64 `json:"axis_max"`
	Color   string  `json:"color"`
	Value   float64 `json:"value"`
}
