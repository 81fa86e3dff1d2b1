package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. LIBWEBDOC_LIBWEB_NAMESPACE.
const EnvPrefix = "LIBWEBDOC"

// Config represents the application configuration
type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	LibWeb  LibWebConfig  `mapstructure:"libweb"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ProjectConfig holds project-specific settings
type ProjectConfig struct {
	RootDir  string   `mapstructure:"root_dir"` // Root of the PHP project
	Encoding []string `mapstructure:"encoding"` // Encoding hints (e.g., ["utf-8", "euc-kr"])
	Composer string   `mapstructure:"composer"` // composer.json, relative to root_dir
}

// LibWebConfig describes which classes are API classes and how they are read
type LibWebConfig struct {
	Namespace          string   `mapstructure:"namespace"`           // API namespace, e.g. "App\Api"
	SourceDirs         []string `mapstructure:"source_dirs"`         // Directories scanned for classes
	Include            []string `mapstructure:"include"`             // Extra file globs, "!" negates
	ExcludeDirs        []string `mapstructure:"exclude_dirs"`        // Excluded path patterns
	SkipClasses        []string `mapstructure:"skip_classes"`        // Relative class names never paged
	PageSuffixLen      int      `mapstructure:"page_suffix_len"`     // Chars trimmed from the class name
	ValidatorNamespace string   `mapstructure:"validator_namespace"` // Scope of wrap calls (v::arrayOf)
	WrapCalls          []string `mapstructure:"wrap_calls"`          // Validator calls wrapping an item
	StrictDuplicates   bool     `mapstructure:"strict_duplicates"`   // Duplicate parameter keys are errors
	SkipUnparsable     bool     `mapstructure:"skip_unparsable"`     // Files with syntax errors are skipped instead of failing the run
	Workers            int      `mapstructure:"workers"`             // Classes processed in parallel
}

// OutputConfig holds output settings
type OutputConfig struct {
	Dir      string   `mapstructure:"dir"`       // Output directory
	FileName string   `mapstructure:"file_name"` // Report file name (without extension)
	Formats  []string `mapstructure:"formats"`   // Exporters to run
	APIRoot  string   `mapstructure:"api_root"`  // Root directory of the markdown page tree
}

// Load reads the configuration from a file or uses defaults.
// If configPath is empty, it looks for "libwebdoc.yaml" in the current directory.
// Flags, when non-nil, override file values for the keys they are bound to.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if configPath == "" {
		configPath = "libwebdoc.yaml"
	}
	v.SetConfigFile(configPath)

	// relative paths in a config file are relative to the file itself
	base := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		base = filepath.Dir(configPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(base, flags); err != nil {
		return nil, err
	}

	if err := cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// flagKeys maps CLI flag names onto config keys
var flagKeys = map[string]string{
	"format":    "output.formats",
	"output":    "output.dir",
	"root":      "project.root_dir",
	"namespace": "libweb.namespace",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.root_dir", ".")
	v.SetDefault("project.encoding", []string{"utf-8", "euc-kr", "windows-1252"})
	v.SetDefault("project.composer", "composer.json")

	v.SetDefault("libweb.namespace", "")
	v.SetDefault("libweb.source_dirs", []string{"src"})
	v.SetDefault("libweb.include", []string{})
	v.SetDefault("libweb.exclude_dirs", []string{
		"**/vendor/**",
		"**/tests/**",
		"**/node_modules/**",
		"**/.git/**",
	})
	v.SetDefault("libweb.skip_classes", []string{"API"})
	v.SetDefault("libweb.page_suffix_len", 3)
	v.SetDefault("libweb.validator_namespace", "v")
	v.SetDefault("libweb.wrap_calls", []string{"arrayOf"})
	v.SetDefault("libweb.strict_duplicates", false)
	v.SetDefault("libweb.skip_unparsable", false)
	v.SetDefault("libweb.workers", 4)

	v.SetDefault("output.dir", "./output")
	v.SetDefault("output.file_name", "libweb-api")
	v.SetDefault("output.formats", []string{"markdown"})
	v.SetDefault("output.api_root", "API")
}

// normalizePaths converts relative paths to absolute paths. Values from
// the config file are resolved against base; flag values against the
// working directory.
func (c *Config) normalizePaths(base string, flags *pflag.FlagSet) error {
	absRoot, err := filepath.Abs(rebase(c.Project.RootDir, base, flags, "root"))
	if err != nil {
		return fmt.Errorf("failed to resolve root_dir: %w", err)
	}
	c.Project.RootDir = absRoot

	absOutput, err := filepath.Abs(rebase(c.Output.Dir, base, flags, "output"))
	if err != nil {
		return fmt.Errorf("failed to resolve output.dir: %w", err)
	}
	c.Output.Dir = absOutput

	c.LibWeb.Namespace = strings.Trim(c.LibWeb.Namespace, `\`)

	return nil
}

func rebase(path, base string, flags *pflag.FlagSet, flag string) string {
	if base == "" || filepath.IsAbs(path) {
		return path
	}
	if flags != nil && flags.Changed(flag) {
		return path
	}
	return filepath.Join(base, path)
}

// EnsureOutputDir creates the output directory if it doesn't exist
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Enabled reports whether an API namespace is configured. Without one
// there is nothing to document.
func (c *Config) Enabled() bool {
	return c.LibWeb.Namespace != ""
}

// IsSkippedClass checks whether a class name relative to the API namespace
// is excluded from paging
func (c *Config) IsSkippedClass(relative string) bool {
	for _, name := range c.LibWeb.SkipClasses {
		if name == relative {
			return true
		}
	}
	return false
}

// ShouldExclude checks if a file path should be excluded based on exclude_dirs
func (c *Config) ShouldExclude(filePath string) bool {
	normalizedPath := filepath.ToSlash(filePath)

	for _, pattern := range c.LibWeb.ExcludeDirs {
		if matchPathPattern(normalizedPath, pattern) {
			return true
		}
	}
	return false
}

// SourcePath resolves a path relative to the project root
func (c *Config) SourcePath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Project.RootDir, rel)
}

// GetOutputPath returns the full path of a report file with the given extension
func (c *Config) GetOutputPath(ext string) string {
	return filepath.Join(c.Output.Dir, c.Output.FileName+"."+ext)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := os.Stat(c.Project.RootDir); os.IsNotExist(err) {
		return fmt.Errorf("root_dir does not exist: %s", c.Project.RootDir)
	}

	if len(c.Project.Encoding) == 0 {
		return fmt.Errorf("project.encoding must contain at least one encoding")
	}

	if c.Output.FileName == "" {
		return fmt.Errorf("output.file_name cannot be empty")
	}

	if c.LibWeb.PageSuffixLen < 0 {
		return fmt.Errorf("libweb.page_suffix_len cannot be negative: %d", c.LibWeb.PageSuffixLen)
	}

	if c.LibWeb.Workers < 1 {
		return fmt.Errorf("libweb.workers must be at least 1: %d", c.LibWeb.Workers)
	}

	return nil
}

// matchPathPattern checks if a path matches a doublestar pattern.
// Patterns starting with "**/" also match at the beginning of relative paths.
func matchPathPattern(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)

	if ok, _ := doublestar.Match(pattern, path); ok {
		return true
	}
	// "**/vendor/**" should also exclude the vendor directory itself
	if trimmed := strings.TrimSuffix(pattern, "/**"); trimmed != pattern {
		if ok, _ := doublestar.Match(trimmed, path); ok {
			return true
		}
	}
	return false
}

// Print displays the current configuration
func (c *Config) Print() {
	fmt.Println("=== libwebdoc Configuration ===")
	fmt.Printf("Project Root:     %s\n", c.Project.RootDir)
	fmt.Printf("Encoding Hints:   %v\n", c.Project.Encoding)
	fmt.Printf("API Namespace:    %s\n", c.LibWeb.Namespace)
	fmt.Printf("Source Dirs:      %v\n", c.LibWeb.SourceDirs)
	fmt.Printf("Include:          %v\n", c.LibWeb.Include)
	fmt.Printf("Exclude Dirs:     %v\n", c.LibWeb.ExcludeDirs)
	fmt.Printf("Skip Classes:     %v\n", c.LibWeb.SkipClasses)
	fmt.Printf("Workers:          %d\n", c.LibWeb.Workers)
	fmt.Printf("Output Directory: %s\n", c.Output.Dir)
	fmt.Printf("Formats:          %v\n", c.Output.Formats)
	fmt.Println("===============================")
}
