//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the colony with the configuration under assets/config.
func (Run) Colony() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run colony...")
	if _, err := executeCmd("bin/colony", withArgs("-config", "assets/config/colony.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
