package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Syntax stage (surfaced from the external parser).
	SynParseError  Code = 2001
	SynMissingNode Code = 2002

	// Render stage. Unknown builtins are not listed here: they surface
	// implicitly through the placeholder identifier in the output.
	RenderUnsupportedUnion Code = 3001
	RenderLoopShape        Code = 3002
)

func (c Code) String() string {
	return fmt.Sprintf("G%04d", uint16(c))
}
