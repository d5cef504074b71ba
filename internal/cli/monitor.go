package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/spf13/cobra"
	"github.com/synheart/lifelog/internal/clock"
	"github.com/synheart/lifelog/internal/dispatch"
	"github.com/synheart/lifelog/internal/encoding"
	"github.com/synheart/lifelog/internal/generator"
	"github.com/synheart/lifelog/internal/logger"
	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/profile"
	"github.com/synheart/lifelog/internal/stream"
)

var (
	errQuit     = errors.New("quit requested")
	errDeadline = errors.New("session length reached")
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the live event log",
	Long: `Starts generating life events into a bounded in-memory log and tails them.

While running, type commands on stdin:
  pause | resume | clear | stats | list [n] | summary
  filter <category|all> | search [text] | help | quit`,
	RunE: runMonitor,
}

func init() {
	flags := monitorCmd.Flags()
	flags.Int("capacity", 0, "Maximum events kept in the log (0 uses the profile's value)")
	flags.Duration("duration", 0, "Stop after this long, e.g. 5m (0 uses the profile's length)")
	flags.Bool("quiet", false, "Do not tail events; only answer commands")
	flags.Int("buffer", 64, "Per-consumer event buffer size")
	bindFlag(v, "monitor.capacity", flags.Lookup("capacity"))
	bindFlag(v, "monitor.duration", flags.Lookup("duration"))
	bindFlag(v, "output.quiet", flags.Lookup("quiet"))
	bindFlag(v, "output.buffer", flags.Lookup("buffer"))
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg := settings.Monitor
	out := cmd.OutOrStdout()

	registry, err := loadProfiles(cfg.ProfileDir)
	if err != nil {
		return err
	}
	prof, err := registry.Get(cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to load profile '%s': %w", cfg.Profile, err)
	}

	clk := clock.Real()
	engine, err := profile.NewEngine(prof, clk)
	if err != nil {
		return err
	}

	streamCfg, err := prof.StreamConfig(stream.DefaultConfig())
	if err != nil {
		return fmt.Errorf("profile '%s': %w", prof.Name, err)
	}
	if cfg.Capacity > 0 {
		streamCfg.Capacity = cfg.Capacity
	}
	if cfg.Seed != 0 {
		streamCfg.Seed = cfg.Seed
	}

	encoder, err := newEncoder()
	if err != nil {
		return err
	}

	feed := make(chan models.Event, settings.Output.Buffer)
	streamCfg.Clock = clk
	streamCfg.Output = feed

	factory := generator.NewFactory(generator.Config{
		Seed:           streamCfg.Seed + 1,
		LowVitalChance: prof.LowVitalChance,
		Weights:        engine.Weights,
		Clock:          clk,
	})
	controller, err := stream.NewController(streamCfg, factory)
	if err != nil {
		return err
	}

	dispatcher := dispatch.NewDispatcher(feed, settings.Output.Buffer)
	printer := dispatcher.Subscribe("printer")
	s := newSession(controller, encoder, out, settings.Output.Quiet, engine)

	fmt.Fprintf(out, "lifelog monitor\n\n")
	fmt.Fprintf(out, "Profile:   %s (%s)\n", prof.Name, prof.Description)
	fmt.Fprintf(out, "Capacity:  %d events\n", streamCfg.Capacity)
	fmt.Fprintf(out, "Interval:  %v - %v\n", streamCfg.MinInterval, streamCfg.MaxInterval)
	fmt.Fprintf(out, "Seed:      %d\n", streamCfg.Seed)
	fmt.Fprintf(out, "Type 'help' for commands.\n\n")

	var g run.Group

	// Stream controller
	stopped := make(chan struct{})
	g.Add(func() error {
		if err := controller.Start(); err != nil {
			return err
		}
		<-stopped
		return nil
	}, func(error) {
		controller.Dispose()
		close(stopped)
	})

	// Fan-out of new events
	dispatchCtx, cancelDispatch := context.WithCancel(context.Background())
	g.Add(func() error {
		dispatcher.Run(dispatchCtx)
		return nil
	}, func(error) {
		cancelDispatch()
	})

	// Live tail; ends when the dispatcher closes the subscription
	g.Add(func() error {
		for event := range printer {
			s.tail(event)
		}
		return nil
	}, func(error) {})

	// Interactive commands
	done := make(chan struct{})
	lines := readLines(cmd.InOrStdin(), done)
	g.Add(func() error {
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					// stdin closed; keep running until another actor stops
					<-done
					return nil
				}
				if s.execute(line) {
					return errQuit
				}
			case <-done:
				return nil
			}
		}
	}, func(error) {
		close(done)
	})

	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	if length := sessionLength(cfg.Duration, prof); length > 0 {
		cancelled := make(chan struct{})
		g.Add(func() error {
			select {
			case <-clk.After(length):
				return errDeadline
			case <-cancelled:
				return nil
			}
		}, func(error) {
			close(cancelled)
		})
	}

	err = g.Run()

	fmt.Fprintln(out)
	s.writeStatus()
	if dropped := dispatcher.GetDroppedCount() + controller.Dropped(); dropped > 0 {
		fmt.Fprintf(out, "%d events were not tailed (consumer too slow)\n", dropped)
	}

	var sig run.SignalError
	switch {
	case errors.As(err, &sig):
		logger.Info("Received %v, shutting down", sig.Signal)
		return nil
	case errors.Is(err, errQuit), errors.Is(err, errDeadline):
		logger.Info("Monitor stopped: %v", err)
		return nil
	}
	return err
}

// sessionLength picks the --duration flag over the profile's length.
// Zero means run until interrupted.
func sessionLength(flag time.Duration, p *profile.Profile) time.Duration {
	if flag > 0 {
		return flag
	}
	if length, unlimited := p.SessionLength(); !unlimited {
		return length
	}
	return 0
}

func newEncoder() (encoding.Encoder, error) {
	format, err := encoding.ParseFormat(settings.Output.Format)
	if err != nil {
		return nil, err
	}
	encoder := encoding.NewEncoder(format)
	if text, ok := encoder.(*encoding.TextEncoder); ok && settings.Output.TimeFormat != "" {
		text.TimeFormat = settings.Output.TimeFormat
	}
	return encoder, nil
}

// readLines feeds r line by line until EOF or done
func readLines(r io.Reader, done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("Reading commands: %v", err)
		}
	}()
	return lines
}
