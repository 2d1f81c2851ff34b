package client

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	projectOrg  = "apimgr"
	projectName = "ipweather"
)

// CLIConfigDir returns the CLI config directory
// ~/.config/apimgr/ipweather/ (Unix) or %APPDATA%\apimgr\ipweather\ (Windows)
func CLIConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", projectOrg, projectName)
}

// CLIConfigFile returns the CLI config file path
func CLIConfigFile() string {
	return filepath.Join(CLIConfigDir(), "cli.yml")
}
