package session

import (
	"fmt"
	"strings"

	"github.com/typings-labs/gentypings/internal/license"
)

type field int

const (
	fieldSource field = iota
	fieldPublished
	fieldRegistryName
	fieldAmbient
	fieldUsername
	fieldLicense
	fieldLicenseAuthor
	fieldCount
)

var fieldNames = [fieldCount]string{
	"source", "published", "registry name", "ambient", "username", "license", "license author",
}

// Builder assembles a Config. Each setter may be called once; a second call
// returns an error.
type Builder struct {
	cfg Config
	set [fieldCount]bool
}

func (b *Builder) mark(f field) error {
	if b.set[f] {
		return fmt.Errorf("%s already set", fieldNames[f])
	}
	b.set[f] = true
	return nil
}

// Source records the source reference and the values derived from it.
func (b *Builder) Source(ref RepoRef) error {
	if err := b.mark(fieldSource); err != nil {
		return err
	}
	b.cfg.SourceRepoRef = ref.String()
	b.cfg.SourcePackageURL = ref.URL()
	b.cfg.SourcePackageName = ref.Repo
	b.cfg.PrettyPackageName = PrettyName(ref.Repo)
	return nil
}

// SourcePackageName returns the derived package name, or empty before Source.
func (b *Builder) SourcePackageName() string { return b.cfg.SourcePackageName }

// Published records whether the source is installable from the registry.
func (b *Builder) Published(published bool) error {
	if err := b.mark(fieldPublished); err != nil {
		return err
	}
	b.cfg.IsPublishedOnRegistry = published
	return nil
}

// IsPublished reports the recorded registry answer.
func (b *Builder) IsPublished() bool { return b.cfg.IsPublishedOnRegistry }

// RegistryName records the name to install from the registry. It is only
// valid once the package was marked as published.
func (b *Builder) RegistryName(name string) error {
	if !b.set[fieldPublished] || !b.cfg.IsPublishedOnRegistry {
		return fmt.Errorf("registry name given for a package not published on the registry")
	}
	if err := b.mark(fieldRegistryName); err != nil {
		return err
	}
	b.cfg.RegistryName = name
	return nil
}

// Ambient records whether the declaration is global.
func (b *Builder) Ambient(ambient bool) error {
	if err := b.mark(fieldAmbient); err != nil {
		return err
	}
	b.cfg.IsAmbientDeclaration = ambient
	return nil
}

// Username records the author's GitHub username.
func (b *Builder) Username(name string) error {
	if err := b.mark(fieldUsername); err != nil {
		return err
	}
	b.cfg.Username = name
	return nil
}

// CurrentUsername returns the recorded username, or empty before Username.
func (b *Builder) CurrentUsername() string { return b.cfg.Username }

// License records the chosen license.
func (b *Builder) License(id license.ID) error {
	if _, ok := license.Lookup(id); !ok {
		return fmt.Errorf("unsupported license %q", id)
	}
	if err := b.mark(fieldLicense); err != nil {
		return err
	}
	b.cfg.LicenseID = id
	return nil
}

// LicenseAuthor records the name printed into the license.
func (b *Builder) LicenseAuthor(name string) error {
	if err := b.mark(fieldLicenseAuthor); err != nil {
		return err
	}
	b.cfg.LicenseAuthorName = name
	return nil
}

// Build returns the finished Config. Every field must have been set, except
// the registry name of an unpublished package.
func (b *Builder) Build() (Config, error) {
	var missing []string
	for f := field(0); f < fieldCount; f++ {
		if f == fieldRegistryName && !b.cfg.IsPublishedOnRegistry {
			continue
		}
		if !b.set[f] {
			missing = append(missing, fieldNames[f])
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("incomplete session: missing %s", strings.Join(missing, ", "))
	}
	return b.cfg, nil
}
