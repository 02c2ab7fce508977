package reedsolomon

// Block is one data or recovery shard. Rows [0,k) are data, rows [k,k+m)
// are recovery (parity). A Block with a nil Payload is "missing": the
// sum-type-over-payload the design notes call for, expressed the idiomatic
// Go way instead of a nullable-pointer wrapper.
type Block struct {
	Row     int
	Payload []byte
}

// Present reports whether b carries a payload.
func (b Block) Present() bool {
	return b.Payload != nil
}
