package e2e

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"libwebdoc/internal/analyzer"
	"libwebdoc/internal/config"
	"libwebdoc/internal/discovery"
	"libwebdoc/internal/exporter"
	"libwebdoc/internal/model"
	"libwebdoc/internal/params"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleConfig = "../../testdata/sample/libwebdoc.yaml"

const cartPage = "### **GET** page-size\n\n" +
	"\nReturns the paging settings.\n\n\n" +
	"```\nreturn ['size' => 20];\n```" +
	"\n\n" +
	"### **POST** add-item\n\n" +
	"**Params**\n\n" +
	"* *sku*: stock keeping unit\n" +
	"* *qty*: quantity\n\n" +
	"\nAdds an item to the cart.\n\n\n" +
	"```\n" +
	"$item = $this->params([\n" +
	"    'sku' => v::stringType(), // stock keeping unit\n" +
	"    'qty' => v::intVal(), // quantity\n" +
	"]);\n" +
	"if ($item) {\n" +
	"    return $this->cart->add($item);\n" +
	"}\n" +
	"```"

func loadSample(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("LIBWEBDOC_OUTPUT_DIR", t.TempDir())

	cfg, err := config.Load(sampleConfig, nil)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	cfg.Output.Formats = []string{"markdown", "excel", "html", "word", "openapi", "openapi-yaml"}
	return cfg
}

func buildSite(t *testing.T, cfg *config.Config) *model.Site {
	t.Helper()
	ctx := context.Background()

	res, err := discovery.Discover(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)

	walker := params.NewWalker()
	site, err := analyzer.Analyze(ctx, analyzer.NewOptions(cfg), walker, res.Linker, nil)
	require.NoError(t, err)
	return site
}

func TestEndToEndFlow(t *testing.T) {
	cfg := loadSample(t)
	site := buildSite(t, cfg)

	// 1. Site shape
	var pages []string
	for _, doc := range site.Classes {
		pages = append(pages, doc.PagePath())
	}
	assert.ElementsMatch(t, []string{"Legacy/order", "Shop/cart", "user"}, pages)

	s := site.Summary
	assert.Equal(t, 3, s.TotalClasses)
	assert.Equal(t, 3, s.DocumentedPages)
	assert.Equal(t, 8, s.TotalMethods)
	assert.Equal(t, 6, s.TotalGET)
	assert.Equal(t, 2, s.TotalPOST)

	// 2. Export every format
	for _, exp := range exporter.GetExporters(cfg.Output.Formats) {
		require.NoError(t, exp.Export(site, cfg))
	}

	out := cfg.Output.Dir
	for _, f := range []string{
		"shop-api.xlsx",
		"shop-api.html",
		"shop-api.docx",
		"shop-api.openapi.json",
		"shop-api.openapi.yaml",
		filepath.Join("API", "user.md"),
		filepath.Join("API", "Shop", "cart.md"),
		filepath.Join("API", "Legacy", "order.md"),
	} {
		info, err := os.Stat(filepath.Join(out, f))
		if assert.NoError(t, err, f) {
			assert.NotZero(t, info.Size(), f)
		}
	}

	// 3. Markdown pages
	cart, err := os.ReadFile(filepath.Join(out, "API", "Shop", "cart.md"))
	require.NoError(t, err)
	assert.Equal(t, cartPage, string(cart))

	user, err := os.ReadFile(filepath.Join(out, "API", "user.md"))
	require.NoError(t, err)
	userPage := string(user)

	order := []string{"### **GET** list", "### **GET** page-size", "### **GET** user-info", "### **POST** save-profile"}
	last := -1
	for _, heading := range order {
		idx := strings.Index(userPage, heading)
		require.NotEqual(t, -1, idx, heading)
		assert.Greater(t, idx, last, "%s out of order", heading)
		last = idx
	}
	assert.Contains(t, userPage, "* *name*: display name\n"+
		"* *addresses*: shipping addresses\n"+
		"    * *[n]*\n"+
		"        * *city*: city name\n"+
		"        * *zip*: postal code\n")
	assert.Contains(t, userPage, "* *page*: page number")
	assert.NotContains(t, userPage, "audit")

	orderPage, err := os.ReadFile(filepath.Join(out, "API", "Legacy", "order.md"))
	require.NoError(t, err)
	assert.Contains(t, string(orderPage), "* *limit*: max rows")
	assert.Contains(t, string(orderPage), "&nbsp;")

	// 4. Excel
	f, err := excelize.OpenFile(filepath.Join(out, "shop-api.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exporter.SheetParams)
	require.NoError(t, err)
	assert.Len(t, rows, 1+10) // header, 7 user params, 2 cart params, 1 order param
	assert.Equal(t, 10, s.TotalParams)

	// 5. OpenAPI
	data, err := os.ReadFile(filepath.Join(out, "shop-api.openapi.json"))
	require.NoError(t, err)
	doc, err := openapi3.NewLoader().LoadFromData(data)
	require.NoError(t, err)
	assert.Equal(t, 8, countOperations(doc))

	save := doc.Paths.Value("/user/save-profile")
	require.NotNil(t, save)
	require.NotNil(t, save.Post)
	body := save.Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.True(t, body.Properties["addresses"].Value.Type.Is(openapi3.TypeArray))
}

func TestEndToEndFlow_Idempotent(t *testing.T) {
	cfg := loadSample(t)

	first := buildSite(t, cfg)
	second := buildSite(t, cfg)

	require.Equal(t, len(first.Classes), len(second.Classes))
	for i := range first.Classes {
		assert.Equal(t, first.Classes[i].PagePath(), second.Classes[i].PagePath())
		assert.Equal(t, first.Classes[i].Methods, second.Classes[i].Methods)
	}
}

func countOperations(doc *openapi3.T) int {
	n := 0
	for _, item := range doc.Paths.Map() {
		n += len(item.Operations())
	}
	return n
}
