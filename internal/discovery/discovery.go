// Package discovery finds the API classes of a PHP project: every class of
// the configured namespace found under the source directories and the
// composer PSR-4 roots, plus the classes of explicitly included files.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"libwebdoc/internal/analyzer"
	"libwebdoc/internal/config"
	"libwebdoc/internal/linker"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/phpparser"
)

// Result holds what discovery found
type Result struct {
	Linker *linker.Linker

	// Files parsed, sorted
	Files []string

	// Files skipped because they could not be parsed, only filled when
	// libweb.skip_unparsable is on
	Skipped []string
}

// ScanFiles returns the candidate files of the project: .php files under
// the source directories and PSR-4 roots, then the included files.
// Included files may repeat scanned ones.
func ScanFiles(cfg *config.Config) (scanned, included []string, err error) {
	dirs := make([]string, 0, len(cfg.LibWeb.SourceDirs))
	for _, dir := range cfg.LibWeb.SourceDirs {
		dirs = append(dirs, cfg.SourcePath(dir))
	}

	psr4, err := PSR4Dirs(cfg.SourcePath(cfg.Project.Composer), cfg.LibWeb.Namespace)
	if err != nil {
		return nil, nil, err
	}
	dirs = append(dirs, psr4...)

	seen := make(map[string]bool)
	for _, dir := range dirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true

		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			logger.Debug("Source directory %s does not exist, skipping", dir)
			continue
		}
		files, scanErr := analyzer.ScanDirectory(dir, cfg.LibWeb.ExcludeDirs)
		if scanErr != nil {
			return nil, nil, scanErr
		}
		for _, f := range files {
			if !seen[f] {
				seen[f] = true
				scanned = append(scanned, f)
			}
		}
	}

	included, err = IncludeFiles(cfg.Project.RootDir, cfg.LibWeb.Include)
	if err != nil {
		return nil, nil, err
	}
	return scanned, included, nil
}

// Discover parses the candidate files and selects the API classes.
// progress, when non-nil, ticks once per parsed file.
func Discover(ctx context.Context, cfg *config.Config, progress analyzer.Progress) (*Result, error) {
	scanned, included, err := ScanFiles(cfg)
	if err != nil {
		return nil, err
	}

	// parse every distinct file once
	var files []string
	index := make(map[string]int)
	for _, f := range append(append([]string{}, scanned...), included...) {
		if _, ok := index[f]; !ok {
			index[f] = len(files)
			files = append(files, f)
		}
	}

	parsed, skipped, err := parseAll(ctx, cfg, files, progress)
	if err != nil {
		return nil, err
	}

	pool := linker.NewClassPool()
	for i, f := range files {
		if parsed[i] != nil {
			pool.AddFile(f, parsed[i])
		}
	}

	l := linker.NewLinker(pool)
	l.Select(pool.InNamespace(cfg.LibWeb.Namespace)...)
	for _, f := range included {
		for _, fqn := range pool.FileMap[f] {
			if decl, ok := pool.Get(fqn); ok {
				l.Select(decl)
			}
		}
	}

	logger.Info("Discovered %d classes in %d files (%d API classes)", pool.Len(), len(files), len(l.Classes()))
	return &Result{Linker: l, Files: files, Skipped: skipped}, nil
}

// parseAll parses files in parallel. A syntax error aborts discovery with
// the file's path, unless skip_unparsable is set, in which case the file is
// logged and skipped. Read errors always abort.
func parseAll(ctx context.Context, cfg *config.Config, files []string, progress analyzer.Progress) ([]*phpparser.File, []string, error) {
	parsed := make([]*phpparser.File, len(files))
	failed := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.LibWeb.Workers, 1))

	for i, path := range files {
		g.Go(func() error {
			if progress != nil {
				defer progress.Increment()
			}
			content, err := analyzer.ReadFile(path, cfg.Project.Encoding)
			if err != nil {
				return err
			}
			file, err := phpparser.ParseFile(gctx, []byte(content))
			if err != nil {
				var perr *phpparser.ParseError
				if !errors.As(err, &perr) {
					return err
				}
				logger.LogParseError(path, err, "class discovery")
				if !cfg.LibWeb.SkipUnparsable {
					return fmt.Errorf("%s: %w", relative(cfg.Project.RootDir, path), err)
				}
				logger.Warn("Skipping %s: %v", relative(cfg.Project.RootDir, path), err)
				failed[i] = true
				return nil
			}
			parsed[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var skipped []string
	for i, f := range failed {
		if f {
			skipped = append(skipped, files[i])
		}
	}
	return parsed, skipped, nil
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
