package analyzer

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
	"libwebdoc/internal/params"
	"libwebdoc/internal/render"
	"libwebdoc/internal/tree"
)

// job is one class with its page placement
type job struct {
	class *model.ClassDecl
	dirs  []string
	page  string
}

// Analyze builds the documentation site for every API class of src.
// Classes are processed in parallel; the first error cancels the run and
// nothing is returned, so no partial site is ever produced.
func Analyze(ctx context.Context, opts Options, walker *params.Walker, src ClassSource, progress Progress) (*model.Site, error) {
	summary := model.NewSummary()
	summary.AnalysisDate = time.Now().Format("2006-01-02 15:04:05")
	summary.Namespace = opts.Namespace

	root := tree.NewRoot()
	site := &model.Site{Summary: summary, Root: root}

	if opts.Namespace == "" {
		logger.Info("No API namespace configured, nothing to document")
		return site, nil
	}

	jobs := plan(opts, src.Classes())

	catalog := NewCatalog(walker, NewSourceCache(opts.EncodingHints))
	docs := make([]*model.ClassDoc, len(jobs))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, j := range jobs {
		g.Go(func() error {
			methods, err := src.Methods(j.class.Name)
			if err != nil {
				return err
			}
			records, ok, err := catalog.BuildClass(gctx, j.class, methods)
			if err != nil {
				return err
			}
			if ok {
				docs[i] = &model.ClassDoc{Class: j.class, Dirs: j.dirs, Page: j.page, Methods: records}
			}
			if progress != nil {
				_ = progress.Increment()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// one class per page: a later class replaces an earlier one entirely
	var kept []*model.ClassDoc
	pages := make(map[string]int)
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if pos, dup := pages[doc.PagePath()]; dup {
			logger.Warn("Classes %s and %s share page %s, keeping %s", kept[pos].Class.Name, doc.Class.Name, doc.PagePath(), doc.Class.Name)
			kept[pos] = doc
			continue
		}
		pages[doc.PagePath()] = len(kept)
		kept = append(kept, doc)
	}

	apiDir := tree.GetOrCreateDir(root, opts.APIRoot)
	for _, doc := range kept {
		dir := apiDir
		for _, name := range doc.Dirs {
			dir = tree.GetOrCreateDir(dir, name)
		}
		tree.GetOrCreatePage(dir, doc.Page).SetContent(render.Page(doc.Methods))

		for _, m := range doc.Methods {
			summary.AddMethod(m)
		}
		site.Classes = append(site.Classes, *doc)
	}
	summary.TotalClasses = len(site.Classes)
	summary.DocumentedPages = tree.CountPages(root)

	logger.Info("Documented %d methods in %d classes", summary.TotalMethods, len(site.Classes))
	return site, nil
}

// plan selects the classes that get a page, in class name order
func plan(opts Options, classes []*model.ClassDecl) []job {
	var jobs []job
	for _, class := range classes {
		dirs, page, ok := PagePath(class.Name, opts.Namespace, opts.isSkipped, opts.PageSuffixLen)
		if !ok {
			logger.Debug("No page for class %s", class.Name)
			continue
		}
		jobs = append(jobs, job{class: class, dirs: dirs, page: page})
	}
	sort.SliceStable(jobs, func(a, b int) bool {
		return jobs[a].class.Name < jobs[b].class.Name
	})
	return jobs
}
