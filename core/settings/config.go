package settings

import "path/filepath"

// Config locates the workspace and its sitemap settings file.
type Config struct {
	// Root is the workspace root directory every sitemap path is relative to.
	Root string `mapstructure:"root" default:"."`
	// SettingsFile is the settings file path, relative to Root unless absolute.
	SettingsFile string `mapstructure:"settings_file" default:".vscode/sitemap-generator.json"`
}

// SettingsPath returns the settings file location.
func (c Config) SettingsPath() string {
	if filepath.IsAbs(c.SettingsFile) {
		return c.SettingsFile
	}
	return filepath.Join(c.Root, c.SettingsFile)
}
