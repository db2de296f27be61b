// Package driver orchestrates conversion passes: it loads input files, runs
// the external parser and checker, drives the rendering engine, and collects
// diagnostics and output per file.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"glot/internal/backend"
	"glot/internal/diag"
	"glot/internal/render"
	"glot/internal/source"
	"glot/internal/syntax"
	"glot/internal/types"
)

// Options configure one conversion pass.
type Options struct {
	// Target selects the backend by name.
	Target string
	// MaxDiagnostics caps the bag; further diagnostics are dropped.
	MaxDiagnostics int
	// PreferStructLiteral seeds the untyped-object-literal policy.
	PreferStructLiteral bool
	// Jobs bounds directory-mode parallelism; 0 means one worker per file
	// up to a small default.
	Jobs int
	// Cache enables the on-disk conversion cache rooted at CacheDir.
	Cache    bool
	CacheDir string
}

func (o Options) withDefaults() Options {
	if o.Target == "" {
		o.Target = "csharp"
	}
	if o.MaxDiagnostics <= 0 {
		o.MaxDiagnostics = 100
	}
	if o.Jobs <= 0 {
		o.Jobs = 4
	}
	return o
}

// ConvertFile converts a single file on disk.
func ConvertFile(ctx context.Context, path string, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	be, ok := backend.Lookup(opts.Target)
	if !ok {
		return nil, backend.ErrUnknown(opts.Target)
	}

	fileSet := source.NewFileSet()
	fid, err := fileSet.Load(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cache *DiskCache
	if opts.Cache {
		cache = NewDiskCache(opts.CacheDir)
		if out, hit := cache.Get(fileSet.Get(fid).Hash, opts.Target); hit {
			return &Result{
				FileSet: fileSet,
				FileID:  fid,
				Bag:     diag.NewBag(opts.MaxDiagnostics),
				Output:  out,
				Cached:  true,
			}, nil
		}
	}

	res, err := convert(ctx, fileSet, fid, be, opts)
	if err != nil {
		return nil, err
	}
	if cache != nil && res.Bag.Len() == 0 {
		// Only clean conversions are worth replaying.
		cache.Put(fileSet.Get(fid).Hash, opts.Target, res.Output)
	}
	return res, nil
}

// ConvertSource converts in-memory content under a display name.
func ConvertSource(ctx context.Context, name string, content []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	be, ok := backend.Lookup(opts.Target)
	if !ok {
		return nil, backend.ErrUnknown(opts.Target)
	}
	fileSet := source.NewFileSet()
	fid := fileSet.AddVirtual(name, content)
	return convert(ctx, fileSet, fid, be, opts)
}

// convert runs one full pass over a loaded file. A missing rendering rule is
// a contract violation of the backend's table and aborts the pass as a hard
// error; everything else lands in the bag.
func convert(ctx context.Context, fileSet *source.FileSet, fid source.FileID,
	be backend.Backend, opts Options) (res *Result, err error) {
	defer render.Recover(&err)

	file := fileSet.Get(fid)
	parser := syntax.NewParser()
	tree, err := syntax.Parse(ctx, parser, file.Content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	bag := diag.NewBag(opts.MaxDiagnostics)
	root := tree.RootNode()
	syntax.CollectSyntaxErrors(root, fid, file.Content, bag)

	checker := types.Collect(root, file.Content)
	renderer := render.NewRenderer(
		be.Rules(),
		be.TypeMapper(),
		be.DefaultContext(opts.PreferStructLiteral),
		checker,
		file.Content,
		fid,
		bag,
	)

	out := renderer.Convert(root).Flatten()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	bag.Sort()

	return &Result{
		FileSet: fileSet,
		FileID:  fid,
		Bag:     bag,
		Output:  out,
	}, nil
}

// ConvertDir converts every example file under dir with a bounded worker
// pool. Results come back sorted by path; the first hard error cancels the
// remaining work.
func ConvertDir(ctx context.Context, dir string, opts Options) ([]*Result, error) {
	opts = opts.withDefaults()

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".ts") && !strings.HasSuffix(path, ".d.ts") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	results := make([]*Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := ConvertFile(gctx, path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
