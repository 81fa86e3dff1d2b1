package analyzer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libwebdoc/internal/model"
	"libwebdoc/internal/params"
	"libwebdoc/internal/tree"
)

// fakeSource serves classes parsed from in-memory sources
type fakeSource struct {
	classes []*model.ClassDecl
	methods map[string][]model.MethodDecl
}

func (f *fakeSource) Classes() []*model.ClassDecl { return f.classes }

func (f *fakeSource) Methods(fqn string) ([]model.MethodDecl, error) {
	methods, ok := f.methods[fqn]
	if !ok {
		return nil, errors.New("unknown class " + fqn)
	}
	return methods, nil
}

func (f *fakeSource) add(t *testing.T, src string) *model.ClassDecl {
	class, methods := parseClass(t, src)
	f.classes = append(f.classes, class)
	f.methods[class.Name] = methods
	return class
}

type countingProgress struct{ n int32 }

func (p *countingProgress) Increment() error {
	atomic.AddInt32(&p.n, 1)
	return nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{methods: map[string][]model.MethodDecl{}}
}

func TestAnalyze(t *testing.T) {
	src := newFakeSource()
	src.add(t, userAPISource)
	src.add(t, `<?php
namespace App\Api\Shop;

class CartAPI
{
    public function POST_addItem() {
        param('sku'); // stock keeping unit
    }
}
`)
	src.add(t, `<?php
namespace App\Api;

abstract class API
{
    public function GET_never() {
    }
}
`)
	src.add(t, `<?php
namespace Other;

class OutsideAPI {}
`)

	progress := &countingProgress{}
	site, err := Analyze(context.Background(), DefaultOptions(`App\Api`), params.NewWalker(), src, progress)
	require.NoError(t, err)

	require.Len(t, site.Classes, 2)
	assert.Equal(t, `App\Api\Shop\CartAPI`, site.Classes[0].Class.Name)
	assert.Equal(t, "Shop/cart", site.Classes[0].PagePath())
	assert.Equal(t, "user", site.Classes[1].PagePath())
	assert.EqualValues(t, 2, progress.n)

	assert.Equal(t, 2, site.Summary.TotalClasses)
	assert.Equal(t, 2, site.Summary.DocumentedPages)
	assert.Equal(t, 4, site.Summary.TotalMethods)
	assert.Equal(t, 2, site.Summary.TotalGET)
	assert.Equal(t, 2, site.Summary.TotalPOST)

	var paths []string
	require.NoError(t, tree.Walk(site.Root, func(p *tree.Page) error {
		paths = append(paths, strings.Join(p.Path(), "/"))
		return nil
	}))
	assert.ElementsMatch(t, []string{"API/user", "API/Shop/cart"}, paths)

	var cart *tree.Page
	require.NoError(t, tree.Walk(site.Root, func(p *tree.Page) error {
		if p.Name == "cart" {
			cart = p
		}
		return nil
	}))
	require.NotNil(t, cart)
	assert.Contains(t, cart.Content(), "### **POST** add-item")
	assert.Contains(t, cart.Content(), "* *sku*: stock keeping unit")
	assert.Contains(t, cart.Content(), "&nbsp;")
}

func TestAnalyzeDuplicateClasses(t *testing.T) {
	src := newFakeSource()
	class := src.add(t, userAPISource)
	src.classes = append(src.classes, class)

	opts := DefaultOptions(`App\Api`)
	opts.Workers = 2
	site, err := Analyze(context.Background(), opts, params.NewWalker(), src, nil)
	require.NoError(t, err)

	require.Len(t, site.Classes, 1)
	assert.Len(t, site.Classes[0].Methods, 3)
	assert.Equal(t, 3, site.Summary.TotalMethods)
}

func TestAnalyzePageCollisionKeepsOneClass(t *testing.T) {
	src := newFakeSource()
	src.add(t, `<?php
namespace App\Api;

class UserAPI
{
    public function GET_a() {
        return [];
    }
}
`)
	src.add(t, `<?php
namespace App\Api;

class UserXYZ
{
    public function GET_b() {
        return [];
    }
}
`)

	site, err := Analyze(context.Background(), DefaultOptions(`App\Api`), params.NewWalker(), src, nil)
	require.NoError(t, err)

	require.Len(t, site.Classes, 1)
	assert.Equal(t, `App\Api\UserXYZ`, site.Classes[0].Class.Name)
	require.Len(t, site.Classes[0].Methods, 1)
	assert.Equal(t, "b", site.Classes[0].Methods[0].Name)

	assert.Equal(t, 1, site.Summary.TotalClasses)
	assert.Equal(t, 1, site.Summary.TotalMethods)
	assert.Equal(t, 1, site.Summary.TotalGET)
	assert.Equal(t, 1, site.Summary.DocumentedPages)

	var pages []*tree.Page
	require.NoError(t, tree.Walk(site.Root, func(p *tree.Page) error {
		pages = append(pages, p)
		return nil
	}))
	require.Len(t, pages, 1)
	assert.Contains(t, pages[0].Content(), "### **GET** b")
	assert.NotContains(t, pages[0].Content(), "### **GET** a")
}

func TestAnalyzeWithoutNamespace(t *testing.T) {
	src := newFakeSource()
	src.add(t, userAPISource)

	site, err := Analyze(context.Background(), DefaultOptions(""), params.NewWalker(), src, nil)
	require.NoError(t, err)
	assert.Empty(t, site.Classes)
	assert.Equal(t, 0, tree.CountPages(site.Root))
}

func TestAnalyzeNoMatches(t *testing.T) {
	site, err := Analyze(context.Background(), DefaultOptions(`App\Api`), params.NewWalker(), newFakeSource(), nil)
	require.NoError(t, err)
	assert.Empty(t, site.Classes)
	assert.Equal(t, 0, site.Summary.TotalMethods)
}

func TestAnalyzeAbortsOnMalformedDeclaration(t *testing.T) {
	src := newFakeSource()
	src.add(t, userAPISource)
	src.add(t, `<?php
namespace App\Api;

class BadAPI
{
    public function GET_bad() {
        param($dynamic);
    }
}
`)

	site, err := Analyze(context.Background(), DefaultOptions(`App\Api`), params.NewWalker(), src, nil)
	require.Error(t, err)
	assert.Nil(t, site)

	var merr *MethodError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, `App\Api\BadAPI`, merr.Class)
	assert.Equal(t, 7, merr.Line)
}

func TestAnalyzeReadError(t *testing.T) {
	src := newFakeSource()
	class := src.add(t, userAPISource)
	require.NoError(t, os.Remove(class.File))

	_, err := Analyze(context.Background(), DefaultOptions(`App\Api`), params.NewWalker(), src, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), filepath.Base(class.File))
}
