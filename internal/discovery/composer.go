package discovery

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// composerFile is the subset of composer.json used for class discovery
type composerFile struct {
	Autoload    composerAutoload `json:"autoload"`
	AutoloadDev composerAutoload `json:"autoload-dev"`
}

type composerAutoload struct {
	PSR4 map[string]pathList `json:"psr-4"`
}

// pathList accepts both "src/" and ["src/", "lib/"]
type pathList []string

func (p *pathList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = pathList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("psr-4 path must be a string or a list of strings: %w", err)
	}
	*p = many
	return nil
}

// PSR4Dirs reads composer.json and returns the directories of the PSR-4
// prefixes that can hold classes of namespace, relative paths resolved
// against the directory of composer.json. A missing file yields no dirs.
func PSR4Dirs(composerPath, namespace string) ([]string, error) {
	data, err := os.ReadFile(composerPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read composer file: %w", err)
	}

	var composer composerFile
	if err := json.Unmarshal(data, &composer); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", composerPath, err)
	}

	base := filepath.Dir(composerPath)
	ns := strings.ToLower(strings.Trim(namespace, `\`)) + `\`
	seen := make(map[string]bool)
	var dirs []string

	for _, autoload := range []composerAutoload{composer.Autoload, composer.AutoloadDev} {
		prefixes := make([]string, 0, len(autoload.PSR4))
		for prefix := range autoload.PSR4 {
			prefixes = append(prefixes, prefix)
		}
		sort.Strings(prefixes)

		for _, prefix := range prefixes {
			p := strings.ToLower(strings.Trim(prefix, `\`))
			if p != "" {
				p += `\`
			}
			// either side may be the more specific one
			if !strings.HasPrefix(ns, p) && !strings.HasPrefix(p, ns) {
				continue
			}
			for _, dir := range autoload.PSR4[prefix] {
				if !filepath.IsAbs(dir) {
					dir = filepath.Join(base, dir)
				}
				dir = filepath.Clean(dir)
				if !seen[dir] {
					seen[dir] = true
					dirs = append(dirs, dir)
				}
			}
		}
	}
	return dirs, nil
}
