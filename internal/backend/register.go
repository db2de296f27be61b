package backend

import (
	"glot/internal/backend/csharp"
)

func init() {
	Register(csharp.New())
}
