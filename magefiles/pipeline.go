//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Scan runs the field extraction stage over decks/raw/.
func Scan() error {
	mg.Deps(Build)
	return run(filepath.Join(binDir, binName), "scan")
}

// Store indexes scanned records into the deck database.
func Store() error {
	mg.Deps(Build)
	return run(filepath.Join(binDir, binName), "store")
}

// Export writes the deck database to decks/index/export.yaml.
func Export() error {
	mg.Deps(Build)
	return run(filepath.Join(binDir, binName), "export")
}
