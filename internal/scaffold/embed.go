package scaffold

import "embed"

// templateFS holds the files copied into every generated repository. The all:
// prefix keeps dotfiles such as .editorconfig and .vscode/.
//
//go:embed all:templates
var templateFS embed.FS
