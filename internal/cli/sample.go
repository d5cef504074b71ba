package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/synheart/lifelog/internal/generator"
	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/profile"
)

var (
	sampleCount    int
	sampleCategory string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print a batch of generated events",
	Long: `Generates events without the live stream and prints them, oldest first.
Category weights come from the selected profile unless --category pins one.`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleCount, "count", "n", 10, "Number of events to print")
	sampleCmd.Flags().StringVarP(&sampleCategory, "category", "c", "", "Only generate this category")
}

func runSample(cmd *cobra.Command, args []string) error {
	if sampleCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", sampleCount)
	}

	registry, err := loadProfiles(settings.Monitor.ProfileDir)
	if err != nil {
		return err
	}
	prof, err := registry.Get(settings.Monitor.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile '%s': %w", settings.Monitor.Profile, err)
	}
	engine, err := profile.NewEngine(prof, nil)
	if err != nil {
		return err
	}

	var category models.Category
	if sampleCategory != "" {
		if category, err = models.ParseCategory(sampleCategory); err != nil {
			return err
		}
	}

	seed := settings.Monitor.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	factory := generator.NewFactory(generator.Config{
		Seed:           seed,
		LowVitalChance: prof.LowVitalChance,
		Weights:        engine.Weights,
	})

	encoder, err := newEncoder()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 0; i < sampleCount; i++ {
		var event models.Event
		if category == "" {
			event = factory.Generate()
		} else if event, err = factory.GenerateCategory(category); err != nil {
			return err
		}

		line, err := encoder.Encode(event)
		if err != nil {
			return err
		}
		if _, err := out.Write(line); err != nil {
			return err
		}
	}
	return nil
}
