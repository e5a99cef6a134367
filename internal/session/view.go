package session

import "github.com/AnyUserName/invascii-cli/internal/present"

// View is a copy of session state taken on the event goroutine.
type View struct {
	Requests []Request // in RequestID order
	Display  []present.Item
	ASCII    []present.Text
	Pending  int
}

// Idle reports whether no read is in flight.
func (v View) Idle() bool { return v.Pending == 0 }

// Request returns the request with the given ID.
func (v View) Request(id RequestID) (Request, bool) {
	for _, r := range v.Requests {
		if r.ID == id {
			return r, true
		}
	}
	return Request{}, false
}

// Count returns how many requests are in state st.
func (v View) Count(st State) int {
	n := 0
	for _, r := range v.Requests {
		if r.State == st {
			n++
		}
	}
	return n
}

// Failures returns the failed requests as page badges.
func (v View) Failures() []present.Failure {
	var out []present.Failure
	for _, r := range v.Requests {
		if r.State != StateFailed {
			continue
		}
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		out = append(out, present.Failure{
			RequestID: uint64(r.ID),
			Name:      r.Name,
			Kind:      string(r.Kind),
			Message:   msg,
		})
	}
	return out
}

// Page builds the HTML page model for this view.
func (v View) Page(title string) present.Page {
	return present.Page{
		Title:    title,
		Items:    v.Display,
		Texts:    v.ASCII,
		Failures: v.Failures(),
	}
}
