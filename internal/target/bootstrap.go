package target

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tacogips/fsflash/internal/debug"
)

// Bootstrap seeds dir with the profile's config template under fileName
// and returns dir. The directory is created when missing and an existing
// file is overwritten. A failure part way leaves the directory as is.
func Bootstrap(p Profile, dir, fileName string) (string, error) {
	if p.Template == "" {
		return "", fmt.Errorf("no config template for target %s", p.Chip)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	dst := filepath.Join(dir, fileName)
	debug.Debug("Copying %s -> %s", p.Template, dst)
	if err := copyFile(p.Template, dst); err != nil {
		return "", err
	}
	return dir, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy template to %s: %w", dst, err)
	}
	return out.Close()
}
