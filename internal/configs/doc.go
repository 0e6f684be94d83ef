// Package configs manages Ngaio's TOML configuration files and path settings.
//
// Two configuration scopes exist:
//
//   - User config: stored under the OS config directory
//     (~/.config/ngaio/config.toml on Linux). Holds the user's identity
//     (email, UUID) stamped onto evidence records as the acting party.
//
//   - Project config: stored at .ngaio/config.toml in the project root.
//     Holds the project identity, evidence defaults, and the export
//     manifest patterns.
//
// Path settings (UserNgaioSettings, ProjectNgaioSettings) are initialized
// once per process; InitProjectSettings fills project paths after the root
// directory has been discovered.
package configs
