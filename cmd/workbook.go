package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cfgpkg "github.com/KaramelBytes/releve-cli/internal/config"
	"github.com/KaramelBytes/releve-cli/internal/utils"
	"github.com/KaramelBytes/releve-cli/internal/workbook"
)

func defaultWorkbooksDir() (string, error) {
	dir := effectiveConfig().WorkbooksDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, cfgpkg.DirName, "workbooks")
	}
	dir, err := cfgpkg.ExpandHome(dir)
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func resolveWorkbookDirByName(name string) (string, error) {
	if name == "" {
		return "", errors.New("workbook name is required")
	}
	root, err := defaultWorkbooksDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}

// openWorkbook loads the workbook named by -w, or the one found by walking up
// from the working directory.
func openWorkbook() (*workbook.Workbook, error) {
	if workbookName != "" {
		dir, err := resolveWorkbookDirByName(workbookName)
		if err != nil {
			return nil, err
		}
		return workbook.Load(dir)
	}
	dir, err := utils.FindRoot("", workbook.FileName)
	if err != nil {
		return nil, fmt.Errorf("no workbook selected: pass -w <name> or run inside a workbook directory (%v)", err)
	}
	return workbook.Load(dir)
}
