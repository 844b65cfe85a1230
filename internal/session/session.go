// Package session defines the configuration collected from the user for one
// generator run. A Config is assembled through a Builder, field by field, and
// is a plain read-only value once built.
package session

import (
	"fmt"
	"strings"

	"github.com/typings-labs/gentypings/internal/license"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// GitHubBaseURL is prefixed to a repo reference to form its URL.
const GitHubBaseURL = "https://github.com/"

// RepoRef is a parsed "author/repo" reference.
type RepoRef struct {
	Author string
	Repo   string
}

// String returns the reference in "author/repo" form.
func (r RepoRef) String() string { return r.Author + "/" + r.Repo }

// URL returns the GitHub URL of the repository.
func (r RepoRef) URL() string { return GitHubBaseURL + r.String() }

// ParseRepoRef parses an "author/repo" reference. Anything after the second
// slash is rejected.
func ParseRepoRef(s string) (RepoRef, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("invalid source %q: expected author/repo", s)
	}
	return RepoRef{Author: parts[0], Repo: parts[1]}, nil
}

// PrettyName turns a package name into a display name: the first dash becomes
// a space and the result is title-cased.
func PrettyName(pkg string) string {
	return cases.Title(language.English).String(strings.Replace(pkg, "-", " ", 1))
}

// Config is the session configuration. All fields are assigned once during
// collection and never modified afterwards.
type Config struct {
	SourceRepoRef     string
	SourcePackageURL  string
	SourcePackageName string
	PrettyPackageName string

	IsPublishedOnRegistry bool
	RegistryName          string // set only when IsPublishedOnRegistry

	IsAmbientDeclaration bool
	Username             string

	LicenseID         license.ID
	LicenseAuthorName string
}
