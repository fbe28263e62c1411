package model

// KwetuRequest is the internal operation shape used by the conversational
// layer and direct API callers alike: a service name, a method on it, and an
// untyped params bag decoded per service/method pair.
type KwetuRequest struct {
	Service string         `json:"service"`
	Method  string         `json:"method"`
	Params  map[string]any `json:"params"`
}

type KwetuResponse struct {
	Data any `json:"data"`
}
