package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// AppDataDir returns an operating-system specific data directory for the
// application, e.g. ~/.auctionsim on Linux or
// %LOCALAPPDATA%\Auctionsim on Windows.
func AppDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}
	appName = strings.TrimPrefix(appName, ".")
	appNameUpper := string(unicode.ToUpper(rune(appName[0]))) + appName[1:]
	appNameLower := string(unicode.ToLower(rune(appName[0]))) + appName[1:]

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("LOCALAPPDATA")
		if roaming || appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData != "" {
			return filepath.Join(appData, appNameUpper)
		}
	case "darwin":
		if home != "" {
			return filepath.Join(home, "Library", "Application Support", appNameUpper)
		}
	default:
		if home != "" {
			return filepath.Join(home, "."+appNameLower)
		}
	}

	// Fall back to the current directory if all else fails.
	return "."
}
