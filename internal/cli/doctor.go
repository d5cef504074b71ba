package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/synheart/lifelog/internal/profile"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and profiles",
	Long:  `Validates the effective configuration, loads every profile and prints usage examples.`,
	RunE:  runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "lifelog environment check")
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Go Version:        %s\n", runtime.Version())
	fmt.Fprintf(out, "OS/Arch:           %s/%s\n\n", runtime.GOOS, runtime.GOARCH)

	if configPath != "" {
		fmt.Fprintf(out, "✅ Config file: %s\n", configPath)
	} else {
		fmt.Fprintln(out, "✅ No config file; using defaults and LIFELOG_* environment")
	}
	fmt.Fprintf(out, "   profile=%s format=%s log=%s/%s\n\n",
		settings.Monitor.Profile, settings.Output.Format, settings.Logging.Level, settings.Logging.Format)

	builtin, err := profile.Builtin()
	if err != nil {
		fmt.Fprintf(out, "❌ Built-in profiles failed to load: %v\n\n", err)
		return err
	}
	fmt.Fprintf(out, "✅ %d built-in profiles\n", len(builtin.List()))

	dir := getProfileDir(settings.Monitor.ProfileDir)
	switch {
	case dir == "":
		fmt.Fprintln(out, "   No profiles directory (optional)")
	default:
		if _, err := os.Stat(dir); err != nil {
			fmt.Fprintf(out, "❌ Profiles directory not found: %s\n", dir)
		} else {
			fmt.Fprintf(out, "✅ Profiles directory found: %s\n", dir)
		}
	}

	registry, err := loadProfiles(settings.Monitor.ProfileDir)
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n\n", err)
		return err
	}
	for _, name := range registry.List() {
		p, _ := registry.Get(name)
		fmt.Fprintf(out, "   %s\n", profileSummary(p))
	}

	if _, err := registry.Get(settings.Monitor.Profile); err != nil {
		fmt.Fprintf(out, "\n❌ Selected profile is unavailable: %v\n\n", err)
		return err
	}
	fmt.Fprintf(out, "\n✅ Selected profile %q is available\n\n", settings.Monitor.Profile)

	fmt.Fprintln(out, "Examples:")
	fmt.Fprintln(out, "  lifelog monitor --profile workday")
	fmt.Fprintln(out, "  lifelog monitor --duration 5m --format json > session.ndjson")
	fmt.Fprintln(out, "  lifelog sample -n 5 --category sleep --seed 42")
	fmt.Fprintln(out)
	return nil
}
