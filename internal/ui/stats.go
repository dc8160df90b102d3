package ui

import (
	"fmt"
	"time"
)

// RenderStats tracks throughput of a streamed render.
type RenderStats struct {
	StartTime time.Time

	Chunks      int // chunks pushed
	InputBytes  int // raw bytes pushed
	Flushes     int // renders that produced output
	OutputBytes int // rendered bytes emitted
	Tokens      int // approximate tokens pushed

	// Time tracking
	RenderTime time.Duration
}

// NewRenderStats creates a RenderStats with StartTime set to now.
func NewRenderStats() *RenderStats {
	return &RenderStats{StartTime: time.Now()}
}

// AddChunk records a pushed chunk.
func (s *RenderStats) AddChunk(chunk string) {
	s.Chunks++
	s.InputBytes += len(chunk)
	s.Tokens += EstimateTokens(chunk)
}

// AddFlush records a render that took d and produced out.
func (s *RenderStats) AddFlush(out string, d time.Duration) {
	s.RenderTime += d
	if out == "" {
		return
	}
	s.Flushes++
	s.OutputBytes += len(out)
}

// Render returns the stats as a compact single-line string.
func (s RenderStats) Render() string {
	return s.render(time.Since(s.StartTime))
}

func (s RenderStats) render(total time.Duration) string {
	return fmt.Sprintf("Stats: %.1fs (render %.3fs) | %d chunks | %s in / %s out | ~%s tok | %d flushes",
		total.Seconds(),
		s.RenderTime.Seconds(),
		s.Chunks,
		formatByteCount(s.InputBytes),
		formatByteCount(s.OutputBytes),
		formatTokenCount(s.Tokens),
		s.Flushes)
}

// formatTokenCount formats a token count with a k/M suffix.
func formatTokenCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func formatByteCount(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
