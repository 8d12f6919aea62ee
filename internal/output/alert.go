package output

import (
	"fmt"
	"io"
)

// Alerter prints store alerts as error lines.
type Alerter struct {
	w io.Writer
}

// NewAlerter creates an Alerter writing to w (normally stderr).
func NewAlerter(w io.Writer) *Alerter {
	return &Alerter{w: w}
}

// Alert implements store.Alerter.
func (a *Alerter) Alert(title, message string) {
	fmt.Fprintf(a.w, "error: %s: %s\n", title, message)
}
