package commands

import (
	"fmt"

	"git.home.luguber.info/inful/doctheme/internal/version"
)

// VersionCmd prints build information.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Println("doctheme " + version.String())
	return nil
}
