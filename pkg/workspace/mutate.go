package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/spf13/afero"
)

// MutationPrefix marks a source file as commented out of the build. The
// compile-command generator skips files carrying it, which removes the
// file's functions from the analyzed program.
const MutationPrefix = "nse0_"

// languages accepted for mutation targets; the experiment operates on
// C/C++ subjects only.
var mutableLanguages = map[string]struct{}{
	"C":   {},
	"C++": {},
}

// Mutate renames the designated source file inside projectDir so the build
// no longer sees it. relPath is project-relative. The target must exist, not
// already be mutated, and be a C or C++ source per language detection.
func Mutate(fs afero.Fs, projectDir, relPath string) error {
	if relPath == "" {
		return fmt.Errorf("mutate: no mutation file configured")
	}

	absPath := filepath.Join(projectDir, filepath.FromSlash(relPath))
	base := filepath.Base(absPath)
	if strings.HasPrefix(base, MutationPrefix) {
		return fmt.Errorf("mutate %s: already mutated", relPath)
	}

	content, err := afero.ReadFile(fs, absPath)
	if err != nil {
		return fmt.Errorf("mutate %s: %w", relPath, err)
	}

	lang := enry.GetLanguage(base, content)
	if _, ok := mutableLanguages[lang]; !ok {
		return fmt.Errorf("mutate %s: not a C/C++ source (detected %q)", relPath, lang)
	}

	renamed := filepath.Join(filepath.Dir(absPath), MutationPrefix+base)
	if err := fs.Rename(absPath, renamed); err != nil {
		return fmt.Errorf("mutate %s: %w", relPath, err)
	}
	return nil
}

// Restore walks projectDir and strips the mutation prefix from every file
// carrying it. It returns the number of files restored.
func Restore(fs afero.Fs, projectDir string) (int, error) {
	var renames [][2]string

	err := afero.Walk(fs, projectDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		base := filepath.Base(path)
		if !strings.HasPrefix(base, MutationPrefix) {
			return nil
		}
		restored := filepath.Join(filepath.Dir(path), strings.TrimPrefix(base, MutationPrefix))
		renames = append(renames, [2]string{path, restored})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("restore %s: %w", projectDir, err)
	}

	// Rename after the walk so the traversal never sees its own effects.
	for _, pair := range renames {
		if err := fs.Rename(pair[0], pair[1]); err != nil {
			return 0, fmt.Errorf("restore %s: %w", pair[0], err)
		}
	}
	return len(renames), nil
}
