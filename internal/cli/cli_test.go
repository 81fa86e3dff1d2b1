package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = "../../testdata/sample/libwebdoc.yaml"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "libwebdoc v"+Version)
}

func TestListCommand(t *testing.T) {
	t.Setenv("LIBWEBDOC_OUTPUT_DIR", t.TempDir())

	out, err := execute(t, "list", "-c", sampleConfig)
	require.NoError(t, err)

	assert.Contains(t, out, "save-profile")
	assert.Contains(t, out, "POST_addItem")
	assert.Contains(t, out, "Legacy/order")
	assert.Contains(t, out, "Shop/cart")
	assert.Contains(t, out, "(8 methods)")
	assert.NotContains(t, out, "OrderDraftAPI")
}

func TestListCommand_Params(t *testing.T) {
	t.Setenv("LIBWEBDOC_OUTPUT_DIR", t.TempDir())

	out, err := execute(t, "list", "-c", sampleConfig, "--params")
	require.NoError(t, err)

	assert.Contains(t, out, "addresses")
	assert.Contains(t, out, "shipping addresses")
	assert.Contains(t, out, "[n]")
	assert.Contains(t, out, "postal code")
}

func TestListCommand_NoNamespace(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "libwebdoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  dir: out\n"), 0644))

	_, err := execute(t, "list", "-c", cfgPath)
	assert.Error(t, err)
}

func TestGenerateCommand(t *testing.T) {
	outDir := t.TempDir()

	_, err := execute(t, "generate", "-c", sampleConfig, "--no-progress",
		"--output", outDir, "--format", "markdown,openapi")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "API", "user.md"))
	assert.FileExists(t, filepath.Join(outDir, "API", "Shop", "cart.md"))
	assert.FileExists(t, filepath.Join(outDir, "API", "Legacy", "order.md"))
	assert.NoFileExists(t, filepath.Join(outDir, "API", "api.md"))
	assert.FileExists(t, filepath.Join(outDir, "shop-api.openapi.json"))
	assert.FileExists(t, filepath.Join(outDir, logFileName))
}

func TestGenerateCommand_NamespaceFlag(t *testing.T) {
	outDir := t.TempDir()

	_, err := execute(t, "generate", "-c", sampleConfig, "--no-progress",
		"--output", outDir, "--namespace", `App\Api\Shop`)
	require.NoError(t, err)

	// the namespace itself becomes the API root
	assert.FileExists(t, filepath.Join(outDir, "API", "cart.md"))
	assert.NoFileExists(t, filepath.Join(outDir, "API", "user.md"))
}

func TestGenerateCommand_NothingToDocument(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "libwebdoc.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  dir: out\n"), 0644))

	_, err := execute(t, "generate", "-c", cfgPath, "--no-progress")
	require.NoError(t, err)

	assert.NoDirExists(t, filepath.Join(dir, "out", "API"))
}

func TestGenerateCommand_UnknownFormat(t *testing.T) {
	_, err := execute(t, "generate", "-c", sampleConfig, "--no-progress",
		"--output", t.TempDir(), "--format", "pdf")
	assert.Error(t, err)
}

func TestWithin(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "project", "output")
	assert.True(t, within(base, base))
	assert.True(t, within(base, filepath.Join(base, "API", "user.md")))
	assert.False(t, within(base, filepath.Join(base, "..", "src", "A.php")))
	assert.False(t, within(base, filepath.Join(string(filepath.Separator), "project", "outputs")))
}
