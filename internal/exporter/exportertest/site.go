// Package exportertest provides a small documented site for exporter tests.
package exportertest

import (
	"testing"

	"libwebdoc/internal/config"
	"libwebdoc/internal/model"
	"libwebdoc/internal/render"
	"libwebdoc/internal/tree"
)

// Site builds a two-class site with nested and wrapped parameters
func Site() *model.Site {
	user := model.ClassDoc{
		Class: &model.ClassDecl{Name: `App\Api\UserAPI`, File: "/src/Api/UserAPI.php"},
		Page:  "user",
		Methods: []model.MethodRecord{
			{
				Name:        "user-info",
				Verb:        model.VerbGET,
				Method:      "GET_userInfo",
				Description: "Returns a user profile",
				Code:        "$this->param('id', v::intVal()); # user id\nreturn [];",
				Parameters: []model.ParamRecord{
					{Key: "id", Description: "user id", Line: 1},
				},
				Class: `App\Api\UserAPI`,
				File:  "/src/Api/UserAPI.php",
				Line:  14,
			},
			{
				Name:        "save-profile",
				Verb:        model.VerbPOST,
				Method:      "POST_saveProfile",
				Description: "Stores the profile",
				Code:        "$this->params([\n    'name' => v::stringType(),\n]);",
				Parameters: []model.ParamRecord{
					{Key: "name", Description: "display name", Line: 2},
					{Key: "address", Description: "postal addresses", Line: 3},
					{Key: "address[n]", Offset: 1, Line: 3},
					{Key: "address[n].city", Description: "city", Offset: 2, Line: 4},
					{Key: "address[n].zip", Offset: 2, Line: 5},
				},
				Class: `App\Api\UserAPI`,
				File:  "/src/Api/UserAPI.php",
				Line:  20,
			},
		},
	}
	cart := model.ClassDoc{
		Class: &model.ClassDecl{Name: `App\Api\Shop\CartAPI`, File: "/src/Api/Shop/CartAPI.php"},
		Dirs:  []string{"shop"},
		Page:  "cart",
		Methods: []model.MethodRecord{
			{
				Name:   "add-item",
				Verb:   model.VerbPOST,
				Method: "POST_addItem",
				Code:   "return true;",
				Parameters: []model.ParamRecord{
					{Key: "sku", Description: "stock keeping unit"},
					{Key: "qty"},
				},
				Class: `App\Api\Shop\CartAPI`,
				File:  "/src/Api/Shop/CartAPI.php",
				Line:  9,
			},
		},
	}

	site := &model.Site{
		Summary: &model.Summary{
			AnalysisDate: "2026-10-18",
			Namespace:    `App\Api`,
			TotalClasses: 2,
		},
		Root:    tree.NewRoot(),
		Classes: []model.ClassDoc{user, cart},
	}

	api := tree.GetOrCreateDir(site.Root, "API")
	for _, doc := range site.Classes {
		dir := api
		for _, d := range doc.Dirs {
			dir = tree.GetOrCreateDir(dir, d)
		}
		tree.GetOrCreatePage(dir, doc.Page).SetContent(render.Page(doc.Methods))
		for _, m := range doc.Methods {
			site.Summary.AddMethod(m)
		}
	}
	site.Summary.DocumentedPages = tree.CountPages(site.Root)

	return site
}

// Config returns an output configuration rooted in a temporary directory
func Config(t *testing.T, formats ...string) *config.Config {
	t.Helper()
	return &config.Config{
		Output: config.OutputConfig{
			Dir:      t.TempDir(),
			FileName: "libweb-api",
			Formats:  formats,
			APIRoot:  "API",
		},
	}
}
