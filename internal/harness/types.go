package harness

// TraceEvent records one executed step and the store state it left
// behind. Steps are numbered from 1 in scenario order.
type TraceEvent struct {
	Step    int    `json:"step"`
	Op      string `json:"op"`
	Arg     string `json:"arg,omitempty"`
	OK      bool   `json:"ok"`
	Cepo    string `json:"cepo"`
	Records int    `json:"records"`
}

// Result is the outcome of one scenario execution.
type Result struct {
	// Pass is true when every step met its expectation and every
	// assertion held.
	Pass bool `json:"pass"`

	// RunToken tags this execution.
	RunToken string `json:"run_token"`

	// Trace lists executed steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors lists expectation and assertion failures. Empty when Pass
	// is true.
	Errors []string `json:"errors,omitempty"`

	// State is the final store state: cepo, serial, and records in
	// ping order.
	State map[string]any `json:"state"`
}

// NewResult creates an empty passing result.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records a failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// AddTrace appends one step event to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
