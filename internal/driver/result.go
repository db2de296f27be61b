package driver

import (
	"glot/internal/diag"
	"glot/internal/source"
)

// Result is the outcome of converting one file: the text is always present,
// with placeholders at failure sites when the bag is non-empty.
type Result struct {
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag
	Output  string
	Cached  bool
}

// Path returns the input path the result belongs to.
func (r *Result) Path() string {
	return r.FileSet.Get(r.FileID).Path
}

// Clean reports whether the conversion finished without diagnostics.
func (r *Result) Clean() bool {
	return r.Bag.Len() == 0
}
