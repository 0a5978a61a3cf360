package parser

import "fmt"

var (
	synErrInvalidPattern    = fmt.Errorf("unable to parse regex")
	synErrBracketUnclosed   = fmt.Errorf("bracket expression missing ]")
	synErrEmptyPattern      = fmt.Errorf("empty literal or regex")
	synErrIncompletedEscSeq = fmt.Errorf("incompleted escape sequence; unexpected EOF following \\")
)
