package domain

// Status is the explicit success/failure marker on a Result.
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// PayloadKind is the success payload shape of an operation. It is fixed by
// the operation's signature, never inferred from the payload itself.
type PayloadKind string

const (
	PayloadText   PayloadKind = "text"
	PayloadBinary PayloadKind = "binary"
)

// Result is the tagged outcome of one conversion operation. On success the
// payload lives in Text or Binary, selected by Kind; failures always carry a
// human-readable message in Text regardless of Kind.
type Result struct {
	Status Status      `json:"status"`
	Kind   PayloadKind `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Binary []byte      `json:"binary,omitempty"`
}

// OK reports whether the result carries a success payload.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// OkText builds a successful text result.
func OkText(text string) Result {
	return Result{Status: StatusOK, Kind: PayloadText, Text: text}
}

// OkBinary builds a successful binary result.
func OkBinary(data []byte) Result {
	return Result{Status: StatusOK, Kind: PayloadBinary, Binary: data}
}

// Fail builds a failure result. Kind records the success payload shape of
// the failed operation so callers can still tell the two result families
// apart; the message is always textual.
func Fail(kind PayloadKind, msg string) Result {
	return Result{Status: StatusError, Kind: kind, Text: msg}
}
