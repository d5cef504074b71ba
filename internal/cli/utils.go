package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/synheart/lifelog/internal/profile"
)

// bindFlag makes a command-line flag take precedence over the config
// file and environment for key
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag.Name, err))
	}
}

func getProfileDir(configured string) string {
	if configured != "" {
		return configured
	}

	// Try current directory first
	if _, err := os.Stat("profiles"); err == nil {
		return "profiles"
	}

	// Try relative to executable
	exe, err := os.Executable()
	if err == nil {
		dir := filepath.Join(filepath.Dir(exe), "profiles")
		if _, err := os.Stat(dir); err == nil {
			return dir
		}
	}

	return ""
}

// loadProfiles returns the built-in profiles plus any found on disk.
// Profiles on disk replace built-ins of the same name.
func loadProfiles(configuredDir string) (*profile.Registry, error) {
	registry, err := profile.Builtin()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in profiles: %w", err)
	}

	dir := getProfileDir(configuredDir)
	if dir == "" {
		return registry, nil
	}
	if err := registry.LoadFromDir(dir); err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return registry, nil
}
