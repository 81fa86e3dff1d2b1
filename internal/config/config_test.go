package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithDefaults(t *testing.T) {
	t.Setenv("LIBWEBDOC_OUTPUT_DIR", t.TempDir())

	cfg, err := Load("nonexistent.yaml", nil)
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Project.RootDir)
	assert.True(t, filepath.IsAbs(cfg.Output.Dir))
	assert.Equal(t, "libweb-api", cfg.Output.FileName)
	assert.Equal(t, []string{"markdown"}, cfg.Output.Formats)
	assert.Equal(t, "API", cfg.Output.APIRoot)
	assert.NotEmpty(t, cfg.Project.Encoding)
	assert.Equal(t, []string{"API"}, cfg.LibWeb.SkipClasses)
	assert.Equal(t, 3, cfg.LibWeb.PageSuffixLen)
	assert.Equal(t, "v", cfg.LibWeb.ValidatorNamespace)
	assert.Equal(t, []string{"arrayOf"}, cfg.LibWeb.WrapCalls)
	assert.Equal(t, 4, cfg.LibWeb.Workers)
	assert.False(t, cfg.LibWeb.SkipUnparsable)
	assert.False(t, cfg.Enabled(), "no namespace configured means nothing to document")
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "libwebdoc.yaml")
	content := `
project:
  root_dir: ` + dir + `
libweb:
  namespace: '\App\Api\'
  page_suffix_len: 0
  strict_duplicates: true
  skip_unparsable: true
output:
  dir: ` + filepath.Join(dir, "out") + `
  formats: [markdown, html]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, `App\Api`, cfg.LibWeb.Namespace)
	assert.True(t, cfg.Enabled())
	assert.Equal(t, 0, cfg.LibWeb.PageSuffixLen)
	assert.True(t, cfg.LibWeb.StrictDuplicates)
	assert.True(t, cfg.LibWeb.SkipUnparsable)
	assert.Equal(t, []string{"markdown", "html"}, cfg.Output.Formats)
	assert.DirExists(t, filepath.Join(dir, "out"))
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("libweb: [unterminated"), 0644))

	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "libwebdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("libweb:\n  namespace: App\\Api\n"), 0644))

	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.String("output", "", "")
	flags.String("namespace", "", "")
	require.NoError(t, flags.Parse([]string{"--output", filepath.Join(dir, "docs"), "--namespace", `Shop\Api`}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "docs"), cfg.Output.Dir)
	assert.Equal(t, `Shop\Api`, cfg.LibWeb.Namespace)
}

func TestLoadConfigRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "libwebdoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project:\n  root_dir: app\noutput:\n  dir: build/docs\n"), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "app"), cfg.Project.RootDir)
	assert.Equal(t, filepath.Join(dir, "build", "docs"), cfg.Output.Dir)

	// flag values stay relative to the working directory
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.String("root", "", "")
	require.NoError(t, flags.Parse([]string{"--root", "elsewhere"}))

	cfg, err = Load(path, flags)
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "elsewhere"), cfg.Project.RootDir)
}

func TestIsSkippedClass(t *testing.T) {
	cfg := &Config{LibWeb: LibWebConfig{SkipClasses: []string{"API", "Base"}}}

	assert.True(t, cfg.IsSkippedClass("API"))
	assert.True(t, cfg.IsSkippedClass("Base"))
	assert.False(t, cfg.IsSkippedClass("UserAPI"))
	assert.False(t, cfg.IsSkippedClass(`Admin\API`))
}

func TestShouldExclude(t *testing.T) {
	cfg := &Config{
		LibWeb: LibWebConfig{
			ExcludeDirs: []string{
				"**/vendor/**",
				"**/tests/**",
				"**/.git/**",
			},
		},
	}

	tests := []struct {
		path     string
		expected bool
	}{
		{"src/Api/User.php", false},
		{"vendor/acme/lib/Foo.php", true},
		{"project/vendor/acme/Foo.php", true},
		{"project/vendor", true},
		{"app/tests/UserTest.php", true},
		{"myproject/.git/HEAD", true},
		{"src/Api/Vendors.php", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cfg.ShouldExclude(tt.path), tt.path)
	}
}

func TestGetOutputPath(t *testing.T) {
	cfg := &Config{
		Output: OutputConfig{
			Dir:      "/tmp/output",
			FileName: "test-report",
		},
	}

	assert.Equal(t, filepath.Join("/tmp/output", "test-report.xlsx"), cfg.GetOutputPath("xlsx"))
}

func TestSourcePath(t *testing.T) {
	cfg := &Config{Project: ProjectConfig{RootDir: "/project"}}

	assert.Equal(t, filepath.Join("/project", "src"), cfg.SourcePath("src"))
	assert.Equal(t, "/abs/lib", cfg.SourcePath("/abs/lib"))
}

func TestValidate(t *testing.T) {
	tmpDir := t.TempDir()

	valid := func() *Config {
		return &Config{
			Project: ProjectConfig{RootDir: tmpDir, Encoding: []string{"utf-8"}},
			LibWeb:  LibWebConfig{PageSuffixLen: 3, Workers: 1},
			Output:  OutputConfig{FileName: "report"},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		shouldErr bool
	}{
		{"Valid config", func(*Config) {}, false},
		{"Nonexistent root directory", func(c *Config) { c.Project.RootDir = "/nonexistent/directory" }, true},
		{"Empty encoding list", func(c *Config) { c.Project.Encoding = nil }, true},
		{"Empty output filename", func(c *Config) { c.Output.FileName = "" }, true},
		{"Negative suffix length", func(c *Config) { c.LibWeb.PageSuffixLen = -1 }, true},
		{"No workers", func(c *Config) { c.LibWeb.Workers = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
