package app

import (
	"strconv"
	"strings"
)

type SelectionKind int

const (
	SelectionUnparsable SelectionKind = iota
	SelectionOutOfRange
	SelectionValid
)

// Selection is the parsed interactive input. Index is 0-based and only set
// for SelectionValid.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// ParseSelection parses a 1-based task number out of one line of input.
// Empty and non-numeric input is unparsable; 0 and numbers past n are out of range.
func ParseSelection(input string, n int) Selection {
	s := strings.TrimSpace(input)
	num, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Selection{Kind: SelectionUnparsable}
	}
	if num == 0 || num > uint64(n) {
		return Selection{Kind: SelectionOutOfRange}
	}
	return Selection{Kind: SelectionValid, Index: int(num - 1)}
}
