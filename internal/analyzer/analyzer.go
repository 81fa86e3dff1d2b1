package analyzer

import (
	"libwebdoc/internal/config"
	"libwebdoc/internal/model"
)

// ClassSource supplies the classes of the API namespace together with their
// effective method lists
type ClassSource interface {
	// Classes returns the discovered classes. The same class may be returned
	// more than once when it was found by several discovery sources.
	Classes() []*model.ClassDecl

	// Methods returns the callable methods of a class: its own methods in
	// source order followed by inherited ones
	Methods(fqn string) ([]model.MethodDecl, error)
}

// Progress receives one tick per processed class
type Progress interface {
	Increment() error
}

// Options holds the analyzer settings taken from the libweb configuration
type Options struct {
	// Namespace is the API namespace prefix, e.g. "App\Api"
	Namespace string

	// APIRoot is the directory that holds every generated page
	APIRoot string

	// SkipClasses are relative class names that never get a page
	SkipClasses []string

	// PageSuffixLen is the number of characters trimmed from a class name
	// to form its page name ("UserAPI" -> "user")
	PageSuffixLen int

	// Workers bounds the number of classes processed in parallel
	Workers int

	// EncodingHints lists encodings tried for non UTF-8 sources
	EncodingHints []string
}

// DefaultOptions returns the default analyzer options for a namespace
func DefaultOptions(namespace string) Options {
	return Options{
		Namespace:     namespace,
		APIRoot:       "API",
		SkipClasses:   []string{"API"},
		PageSuffixLen: 3,
		Workers:       4,
		EncodingHints: []string{"utf-8", "euc-kr", "windows-1252"},
	}
}

func (o Options) isSkipped(relative string) bool {
	for _, name := range o.SkipClasses {
		if name == relative {
			return true
		}
	}
	return false
}

// NewOptions derives analyzer options from the loaded configuration
func NewOptions(cfg *config.Config) Options {
	return Options{
		Namespace:     cfg.LibWeb.Namespace,
		APIRoot:       cfg.Output.APIRoot,
		SkipClasses:   cfg.LibWeb.SkipClasses,
		PageSuffixLen: cfg.LibWeb.PageSuffixLen,
		Workers:       cfg.LibWeb.Workers,
		EncodingHints: cfg.Project.Encoding,
	}
}
