package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/synheart/lifelog/internal/encoding"
	"github.com/synheart/lifelog/internal/logger"
	"github.com/synheart/lifelog/internal/models"
	"github.com/synheart/lifelog/internal/profile"
	"github.com/synheart/lifelog/internal/query"
	"github.com/synheart/lifelog/internal/stream"
)

// session is the interactive view over one controller. The filter only
// shapes what is shown; the buffer and counters never depend on it.
type session struct {
	controller *stream.Controller
	encoder    encoding.Encoder
	engine     *profile.Engine
	quiet      bool

	mu     sync.Mutex // guards out, filter and tally
	out    io.Writer
	filter query.Filter
	tally  map[models.Category]int
}

func newSession(c *stream.Controller, enc encoding.Encoder, out io.Writer, quiet bool, engine *profile.Engine) *session {
	return &session{
		controller: c,
		encoder:    enc,
		engine:     engine,
		quiet:      quiet,
		out:        out,
		filter:     query.Filter{Category: query.All},
		tally:      make(map[models.Category]int),
	}
}

// tail handles one newly generated event
func (s *session) tail(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tally[event.Category]++
	if s.quiet || !s.filter.Matches(event) {
		return
	}
	s.writeEventLocked(event)
}

// execute runs one command line and reports whether the user asked to quit
func (s *session) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command, rest := strings.ToLower(fields[0]), strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))

	switch command {
	case "quit", "exit", "q":
		return true
	case "pause":
		s.report(s.controller.Pause(), "paused")
	case "resume":
		s.report(s.controller.Resume(), "resumed")
	case "clear":
		s.report(s.controller.Clear(), "cleared")
	case "stats", "status":
		s.writeStatus()
	case "list", "ls":
		s.list(rest)
	case "summary":
		s.summary()
	case "filter":
		s.setCategory(rest)
	case "search":
		s.setSearch(rest)
	case "help", "?":
		s.printf("commands: pause, resume, clear, stats, list [n], summary, filter <category|all>, search [text], quit\n")
		s.printf("categories: %s\n", categoryNames())
	default:
		s.printf("unknown command %q (try 'help')\n", command)
	}
	return false
}

func (s *session) report(err error, done string) {
	if err != nil {
		s.printf("error: %v\n", err)
		return
	}
	s.printf("%s\n", done)
}

func (s *session) writeStatus() {
	f := s.currentFilter()
	all := s.controller.Summary(query.Filter{})
	line := renderStatus(s.controller.Stats(), s.controller.Summary(f), all.ByCategory[models.CategoryFitness], s.controller.State())
	if s.engine != nil {
		if phase := s.engine.GetCurrentPhase(); phase != nil {
			line += " | phase " + phase.Name
		}
	}
	s.printf("%s\n", line)
}

func (s *session) list(arg string) {
	f := s.currentFilter()
	events := s.controller.Events(f)

	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			s.printf("error: list takes a non-negative count, got %q\n", arg)
			return
		}
		if n < len(events) {
			events = events[:n]
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%d events (%s), newest first\n", len(events), describeFilter(f))
	for _, event := range events {
		s.writeEventLocked(event)
	}
}

func (s *session) summary() {
	f := s.currentFilter()
	view := s.controller.Summary(f)

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "buffered (%s):\n", describeFilter(f))
	for _, c := range models.Categories() {
		if n := view.ByCategory[c]; n > 0 {
			fmt.Fprintf(s.out, "  %-14s %d\n", c, n)
		}
	}

	seen := make([]models.Category, 0, len(s.tally))
	for c := range s.tally {
		seen = append(seen, c)
	}
	sort.Slice(seen, func(i, j int) bool { return s.tally[seen[i]] > s.tally[seen[j]] })
	fmt.Fprintf(s.out, "tailed this session:\n")
	for _, c := range seen {
		fmt.Fprintf(s.out, "  %-14s %d\n", c, s.tally[c])
	}
}

func (s *session) setCategory(arg string) {
	f, err := query.ParseFilter(arg, s.currentFilter().Search)
	if err != nil {
		s.printf("error: %v (categories: all, %s)\n", err, categoryNames())
		return
	}
	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	s.printf("showing %s\n", describeFilter(f))
}

func (s *session) setSearch(text string) {
	s.mu.Lock()
	s.filter.Search = text
	f := s.filter
	s.mu.Unlock()
	s.printf("showing %s\n", describeFilter(f))
}

func (s *session) currentFilter() query.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *session) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) writeEventLocked(event models.Event) {
	line, err := s.encoder.Encode(event)
	if err != nil {
		logger.Warn("Skipping event %d: %v", event.Sequence, err)
		return
	}
	if _, err := s.out.Write(line); err != nil {
		logger.Warn("Writing event %d: %v", event.Sequence, err)
	}
}

func categoryNames() string {
	names := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		names = append(names, strings.ToLower(string(c)))
	}
	return strings.Join(names, ", ")
}
