package problem

// Redacted is a view over a Problem that serializes only the RFC 7807
// members and extension parameters. Stack traces, raw cause messages and any
// other member the wrapped value writes itself are dropped.
//
// The accessors forward to the wrapped value unchanged. The zero value
// serializes as an empty object.
type Redacted struct {
	problem Problem
}

// Redact wraps p. Redacting an already redacted view returns it as is.
func Redact(p Problem) Redacted {
	switch r := p.(type) {
	case Redacted:
		return r
	case *Redacted:
		if r != nil {
			return *r
		}
	}
	return Redacted{problem: p}
}

// Unwrap returns the wrapped problem.
func (r Redacted) Unwrap() Problem { return r.problem }

func (r Redacted) Type() string {
	if r.problem == nil {
		return DefaultType
	}
	return r.problem.Type()
}

func (r Redacted) Title() string {
	if r.problem == nil {
		return ""
	}
	return r.problem.Title()
}

func (r Redacted) Status() Status {
	if r.problem == nil {
		return Status{}
	}
	return r.problem.Status()
}

func (r Redacted) Detail() string {
	if r.problem == nil {
		return ""
	}
	return r.problem.Detail()
}

func (r Redacted) Instance() string {
	if r.problem == nil {
		return ""
	}
	return r.problem.Instance()
}

func (r Redacted) Parameters() map[string]any {
	if r.problem == nil {
		return nil
	}
	return r.problem.Parameters()
}

// MarshalJSON writes the allow-listed members flat at the top level.
func (r Redacted) MarshalJSON() ([]byte, error) {
	var o object
	if r.problem != nil {
		o.addProblem(r)
	}
	return o.bytes()
}
