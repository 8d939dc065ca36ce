package site

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"git.home.luguber.info/inful/doctheme/internal/codeblock"
	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
	"git.home.luguber.info/inful/doctheme/internal/logfields"
	"git.home.luguber.info/inful/doctheme/internal/metrics"
)

// Summary reports one Build.
type Summary struct {
	Pages    int
	Cached   int
	Layouts  map[codeblock.Layout]int
	Duration time.Duration
}

// Build renders every *.md file under srcDir into outDir, mirroring the tree
// with .html extensions. It stops at the first failing page; a failed page
// leaves no output file behind.
func (b *Builder) Build(ctx context.Context, srcDir, outDir string) (*Summary, error) {
	start := time.Now()
	summary, err := b.build(ctx, srcDir, outDir)
	b.recorder.ObserveBuildDuration(time.Since(start))
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.BuildFailed)
		return nil, err
	}
	summary.Duration = time.Since(start)
	b.recorder.IncBuildOutcome(metrics.BuildSuccess)
	b.logger.InfoContext(ctx, "Site build complete",
		logfields.Pages(summary.Pages),
		logfields.Path(outDir),
		logfields.Duration(summary.Duration))
	return summary, nil
}

func (b *Builder) build(ctx context.Context, srcDir, outDir string) (*Summary, error) {
	pages, err := collectPages(srcDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to scan docs directory").
			WithContext("path", srcDir).Build()
	}

	if b.clean {
		if err := checkCleanTarget(srcDir, outDir); err != nil {
			return nil, err
		}
		if err := os.RemoveAll(outDir); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to clean output directory").
				WithContext("path", outDir).Build()
		}
	}

	summary := &Summary{Layouts: map[codeblock.Layout]int{}}
	for _, rel := range pages {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapError(err, errors.CategoryRuntime, "build canceled").Build()
		}

		page, err := b.RenderPage(ctx, filepath.Join(srcDir, rel))
		if err != nil {
			if ce, ok := errors.AsClassified(err); ok {
				return nil, ce.WithContext("page", rel)
			}
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to render page").
				WithContext("page", rel).Build()
		}

		target := filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".html")
		if err := writeFileAtomic(target, page.HTML); err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to write page").
				WithContext("page", rel).WithContext("path", target).Build()
		}

		summary.Pages++
		if page.Cached {
			summary.Cached++
		} else if page.Result != nil {
			for kind, n := range page.Result.Layouts {
				summary.Layouts[kind] += n
			}
		}
	}
	return summary, nil
}

// collectPages returns the relative paths of Markdown files in
// srcDir, sorted. Hidden files and directories are skipped.
func collectPages(srcDir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != srcDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(pages)
	return pages, nil
}

// checkCleanTarget refuses to clean an output directory that holds the sources.
func checkCleanTarget(srcDir, outDir string) error {
	srcAbs, err := filepath.Abs(srcDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve docs directory").Build()
	}
	outAbs, err := filepath.Abs(outDir)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to resolve output directory").Build()
	}
	if srcAbs == outAbs || strings.HasPrefix(srcAbs, outAbs+string(filepath.Separator)) {
		return errors.ValidationError("output directory contains the docs directory; refusing to clean it").
			WithContext("path", outDir).Build()
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".doctheme-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
