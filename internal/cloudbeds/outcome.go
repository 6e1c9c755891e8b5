package cloudbeds

import "encoding/json"

// Body is a decoded upstream response body. A nil Raw means the body is absent.
type Body struct {
	Raw json.RawMessage
}

// Present reports whether the upstream body could be decoded.
func (b Body) Present() bool {
	return b.Raw != nil
}

// Outcome is the result of a single forwarded call: either Success or Failure.
type Outcome interface {
	outcome()
}

// Success holds the body of a 2xx upstream response.
type Success struct {
	Body Body
}

// Failure describes a call that did not succeed, either because no credential is
// configured or because the upstream answered with a non-2xx status.
type Failure struct {
	Status  int
	Message string
	Body    Body
	Reached bool // Upstream answered; false for the missing-credential short-circuit.
}

func (Success) outcome() {}
func (Failure) outcome() {}
