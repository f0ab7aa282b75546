package main

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/ryotapoi/specmig/internal/core"
)

// workspaceFs returns the workspace root as a filesystem addressed with
// root-relative paths.
func workspaceFs(root string) (afero.Fs, error) {
	ok, err := afero.DirExists(afero.NewOsFs(), root)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("root not found: %s", root)
	}
	return afero.NewBasePathFs(afero.NewOsFs(), root), nil
}

// openLedger opens the run ledger. With create false a ledger that does
// not exist yet yields nil.
func openLedger(root string, cfg core.Config, create bool) (*core.Ledger, error) {
	p := core.LedgerPath(root, cfg)
	if p == "" {
		return nil, nil
	}
	if !create {
		ok, err := afero.Exists(afero.NewOsFs(), p)
		if err != nil || !ok {
			return nil, err
		}
	}
	return core.OpenLedger(p)
}
