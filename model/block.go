package model

// Block is the host's view of one way in a set, passed to victim selection.
type Block struct {
	Valid   bool
	Tag     uint64
	Address uint64 // block-aligned physical address held by the way
}
