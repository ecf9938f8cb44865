package commands

import (
	"os"

	"go.trai.ch/jlc/internal/app"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/zerr"
)

func hostDefaults() (domain.Defaults, error) {
	wd, err := os.Getwd()
	if err != nil {
		return domain.Defaults{}, zerr.Wrap(err, "failed to get working directory")
	}
	// A missing executable path only loses the bundled driver default.
	exe, _ := os.Executable()
	return app.HostDefaults(wd, exe, os.Getenv), nil
}
