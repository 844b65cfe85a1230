// Package config manages user-level settings stored at ~/.gentypings/config.yaml.
// Besides keys set with "gentypings config set", it keeps the answers of
// prompts marked as remembered (the GitHub username) so the next run can offer
// them as defaults.
package config
