// Package license is the catalog of licenses a generated repository can use.
package license

import (
	_ "embed"
	"fmt"
	"path"
	"sync"

	"go.yaml.in/yaml/v3"
)

// ID identifies a supported license. Values are SPDX identifiers where one
// exists.
type ID string

// Supported license ids.
const (
	Apache2   ID = "Apache-2.0"
	MIT       ID = "MIT"
	Unlicense ID = "Unlicense"
	FreeBSD   ID = "BSD-2-Clause-FreeBSD"
	NewBSD    ID = "BSD-3-Clause"
	ISC       ID = "ISC"
	NoLicense ID = "nolicense"
)

// DefaultID is preselected in the license prompt.
const DefaultID = MIT

// License is one catalog entry.
type License struct {
	ID   ID     `yaml:"id"`
	Name string `yaml:"name"`
}

//go:embed licenses.yaml
var rawCatalog []byte

var (
	loadOnce sync.Once
	catalog  []License
	loadErr  error
)

func load() ([]License, error) {
	loadOnce.Do(func() {
		var doc struct {
			Licenses []License `yaml:"licenses"`
		}
		if err := yaml.Unmarshal(rawCatalog, &doc); err != nil {
			loadErr = fmt.Errorf("parsing license catalog: %w", err)
			return
		}
		catalog = doc.Licenses
	})
	return catalog, loadErr
}

// All returns the catalog in display order.
func All() []License {
	list, err := load()
	if err != nil {
		// The catalog is embedded at build time; a parse failure is a build defect.
		panic(err)
	}
	out := make([]License, len(list))
	copy(out, list)
	return out
}

// Lookup returns the license with the given id.
func Lookup(id ID) (License, bool) {
	for _, l := range All() {
		if l.ID == id {
			return l, true
		}
	}
	return License{}, false
}

// Parse converts a string into a supported ID.
func Parse(s string) (ID, error) {
	if _, ok := Lookup(ID(s)); !ok {
		return "", fmt.Errorf("unsupported license %q", s)
	}
	return ID(s), nil
}

// TemplatePath returns the location of the license text inside the template
// store.
func TemplatePath(id ID) string {
	return path.Join("licenses", string(id)+".txt")
}
