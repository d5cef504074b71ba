package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/profile"
	"github.com/synheart/lifelog/internal/stream"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect generation profiles",
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List available profiles",
	Long:  `Lists all built-in and on-disk profiles with their descriptions.`,
	RunE:  runListProfiles,
}

var describeProfileCmd = &cobra.Command{
	Use:   "describe <profile>",
	Short: "Describe a profile in detail",
	Long:  `Shows a profile's timing knobs, category weights and phases.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribeProfile,
}

func init() {
	profilesCmd.AddCommand(listProfilesCmd)
	profilesCmd.AddCommand(describeProfileCmd)
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	registry, err := loadProfiles(settings.Monitor.ProfileDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	descriptions := registry.ListWithDescriptions()

	fmt.Fprintln(out, "Available profiles:")
	fmt.Fprintln(out)
	for _, name := range registry.List() {
		fmt.Fprintf(out, "  %-20s %s\n", name, descriptions[name])
	}
	fmt.Fprintln(out)
	return nil
}

func runDescribeProfile(cmd *cobra.Command, args []string) error {
	registry, err := loadProfiles(settings.Monitor.ProfileDir)
	if err != nil {
		return err
	}
	p, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	config, err := p.StreamConfig(stream.DefaultConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	duration := p.Duration
	if duration == "" {
		duration = "unlimited"
	}
	fmt.Fprintf(out, "Profile: %s\n", p.Name)
	fmt.Fprintf(out, "Description: %s\n", p.Description)
	fmt.Fprintf(out, "Duration: %s\n", duration)
	fmt.Fprintf(out, "Capacity: %d\n", config.Capacity)
	fmt.Fprintf(out, "Interval: %v - %v\n", config.MinInterval, config.MaxInterval)
	fmt.Fprintf(out, "Hourly reset: %v\n", config.HourlyReset)
	fmt.Fprintf(out, "Initial wellness: %d\n", config.InitialWellness)
	if p.LowVitalChance != nil {
		fmt.Fprintf(out, "Low vital chance: %.2f\n", *p.LowVitalChance)
	}

	fmt.Fprintln(out, "\nWeights:")
	writeWeights(out, p.Weights, "  ")

	if len(p.Phases) > 0 {
		fmt.Fprintln(out, "\nPhases:")
		for i, phase := range p.Phases {
			fmt.Fprintf(out, "  %d. %s (duration: %s)\n", i+1, phase.Name, phase.Duration)
			if len(phase.Weights) > 0 {
				writeWeights(out, phase.Weights, "       ")
			}
		}
	}

	fmt.Fprintln(out)
	return nil
}

// writeWeights prints weights in category order, so output is stable
func writeWeights(out io.Writer, weights map[string]float64, indent string) {
	if len(weights) == 0 {
		fmt.Fprintf(out, "%suniform\n", indent)
		return
	}
	byCategory := make(map[models.Category]float64, len(weights))
	for name, w := range weights {
		if c, err := models.ParseCategory(name); err == nil {
			byCategory[c] = w
		}
	}
	for _, c := range models.Categories() {
		if w, ok := byCategory[c]; ok {
			fmt.Fprintf(out, "%s%-14s %-6g %s\n", indent, c, w, strings.Repeat("▪", int(w*2+0.5)))
		}
	}
}

// profileSummary is a one-line description used by doctor
func profileSummary(p *profile.Profile) string {
	phases := make([]string, 0, len(p.Phases))
	for _, phase := range p.Phases {
		phases = append(phases, phase.Name)
	}
	if len(phases) == 0 {
		return p.Name
	}
	return fmt.Sprintf("%s (phases: %s)", p.Name, strings.Join(phases, " → "))
}
