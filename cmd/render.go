package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/samsaffron/streamui/internal/config"
	"github.com/samsaffron/streamui/internal/logging"
	"github.com/samsaffron/streamui/internal/signal"
	"github.com/samsaffron/streamui/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	renderWithhold   bool
	renderStats      bool
	renderSimulate   bool
	renderChunkSize  int
	renderChunkDelay time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a markdown stream",
	Long: `Read markdown from a file or stdin and render it as it arrives.

Pending text is flushed every render.flush_interval and at the end of the
input. With --withhold (or render.policy: withhold) text is only flushed up
to the last point where no code fence or inline marker is left open.

Examples:
  some-llm-cli | streamui render
  streamui render README.md --width 60
  streamui render README.md --simulate --withhold --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	flags := renderCmd.Flags()
	AddWithholdFlag(flags, &renderWithhold)
	AddStatsFlag(flags, &renderStats)
	AddSimulateFlags(flags, &renderSimulate, &renderChunkSize, &renderChunkDelay)
}

// streamOptions controls how streamMarkdown paces and flushes.
type streamOptions struct {
	interval    time.Duration
	withhold    bool
	maxNewlines int // 0 disables compaction
	simulate    bool
	chunkSize   int
	chunkDelay  time.Duration
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	styles := newStyles(cfg)

	engine, err := ui.NewMarkdownEngine(cfg.Render.Engine, styles, cfg.Render.Highlight)
	if err != nil {
		return err
	}

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	restore, err := installSink(cmd, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() {
		if err := restore(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context())
	defer stop()

	opts := streamOptions{
		interval:    cfg.Render.FlushInterval,
		withhold:    renderWithhold || cfg.Render.Policy == "withhold",
		maxNewlines: cfg.Render.MaxNewlines,
		simulate:    renderSimulate,
		chunkSize:   renderChunkSize,
		chunkDelay:  renderChunkDelay,
	}
	stats, err := streamMarkdown(ctx, in, newTextBuffer(cfg.Render, engine), opts)

	if sig, ok := signal.FromContext(ctx); ok {
		slog.Debug("render interrupted", "signal", sig)
		logging.LogEventLine(styles.FormatCtrlC())
		err = nil
	}
	if err != nil {
		return err
	}

	if renderStats {
		logging.LogEventLine(styles.Muted.Render(stats.Render()))
	}
	return nil
}

func newTextBuffer(r config.RenderConfig, engine ui.MarkdownEngine) *ui.TextBuffer {
	opts := []ui.TextBufferOption{
		ui.WithMarkdownEngine(engine),
		ui.WithDefaultWidth(r.DefaultWidth),
	}
	if r.Width > 0 {
		return ui.NewTextBufferWithWidth(r.Width, opts...)
	}
	return ui.NewTextBuffer(opts...)
}

// streamMarkdown reads r to the end, pushing chunks into buf and emitting
// rendered output through the logging sink on every tick and at EOF. buf is
// only touched by the calling goroutine.
//
// When ctx is cancelled the pending text is flushed and the cause returned
// without waiting for the reader, which may be blocked on a terminal read.
func streamMarkdown(ctx context.Context, r io.Reader, buf *ui.TextBuffer, opts streamOptions) (*ui.RenderStats, error) {
	g, gctx := errgroup.WithContext(ctx)

	raw := make(chan string)
	g.Go(func() error {
		defer close(raw)
		return readChunks(gctx, r, raw)
	})

	chunks := raw
	if opts.simulate {
		paced := make(chan string)
		g.Go(func() error {
			defer close(paced)
			return paceChunks(gctx, raw, paced, opts.chunkSize, opts.chunkDelay)
		})
		chunks = paced
	}

	s := &streamer{buf: buf, withhold: opts.withhold, stats: ui.NewRenderStats()}
	if opts.maxNewlines > 0 {
		s.compactor = ui.NewStreamingNewlineCompactor(opts.maxNewlines)
	}

	ticker := time.NewTicker(opts.interval)
	defer ticker.Stop()

	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				s.flush(true)
				return s.stats, g.Wait()
			}
			s.push(chunk)
		case <-ticker.C:
			s.flush(false)
		case <-ctx.Done():
			s.flush(true)
			return s.stats, context.Cause(ctx)
		}
	}
}

type streamer struct {
	buf       *ui.TextBuffer
	withhold  bool
	compactor *ui.StreamingNewlineCompactor
	stats     *ui.RenderStats
}

func (s *streamer) push(chunk string) {
	s.stats.AddChunk(chunk)
	if s.compactor != nil {
		chunk = s.compactor.CompactChunk(chunk)
	}
	s.buf.Push(chunk)
}

// flush renders pending text. Mid-stream flushes honor the withhold policy;
// the final flush renders everything.
func (s *streamer) flush(final bool) {
	if s.buf.IsEmpty() {
		return
	}
	start := time.Now()
	var out string
	var ok bool
	if s.withhold && !final {
		out, ok = s.buf.FlushReady()
	} else {
		out, ok = s.buf.Flush()
	}
	s.stats.AddFlush(out, time.Since(start))
	if ok {
		logging.LogEvent(out)
	}
}

const readBufferSize = 4096

// readChunks sends everything read from r to out, one chunk per Read.
func readChunks(ctx context.Context, r io.Reader, out chan<- string) error {
	p := make([]byte, readBufferSize)
	for {
		n, err := r.Read(p)
		if n > 0 {
			select {
			case out <- string(p[:n]):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// paceChunks re-slices every chunk from in into pieces of at most size
// characters and sends them to out with delay between pieces.
func paceChunks(ctx context.Context, in <-chan string, out chan<- string, size int, delay time.Duration) error {
	if size <= 0 {
		size = 1
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for chunk := range in {
		for _, piece := range splitChars(chunk, size) {
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case out <- piece:
			case <-ctx.Done():
				return ctx.Err()
			}
			timer.Reset(delay)
		}
	}
	return nil
}

// splitChars splits s into pieces of at most n characters without cutting
// a multi-byte character.
func splitChars(s string, n int) []string {
	var pieces []string
	count, start := 0, 0
	for i := range s {
		if count == n {
			pieces = append(pieces, s[start:i])
			start, count = i, 0
		}
		count++
	}
	if start < len(s) {
		pieces = append(pieces, s[start:])
	}
	return pieces
}
