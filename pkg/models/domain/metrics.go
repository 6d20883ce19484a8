package domain

// Metric is one derived figure or finding. A metric the datasets could not
// support is marked Insufficient and carries an explanatory Note; its Value is
// meaningless in that case.
type Metric struct {
	Key          string
	Label        string
	Value        float64
	Unit         string
	Text         string
	Insufficient bool
	Note         string
}

// MetricsBundle is the request-local result of one analysis run. It is handed
// to the report assembler and discarded afterwards.
type MetricsBundle struct {
	Intent    Intent
	Diagnosis []Metric
	Evidence  []Metric
	Actions   []Metric
}

// Empty reports whether the bundle carries no metrics at all.
func (b MetricsBundle) Empty() bool {
	return len(b.Diagnosis) == 0 && len(b.Evidence) == 0 && len(b.Actions) == 0
}

// InsufficientCount counts metrics marked insufficient across all groups.
func (b MetricsBundle) InsufficientCount() int {
	var n int
	for _, group := range [][]Metric{b.Diagnosis, b.Evidence, b.Actions} {
		for _, m := range group {
			if m.Insufficient {
				n++
			}
		}
	}
	return n
}
