package profiling

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/pprof/profile"
)

const profileLabel = "profile_id"

// SamplingPeriod is the interval between CPU samples taken by the Go runtime
// profiler (100 Hz). Work that finishes faster than this is likely to be
// missing from the report.
const SamplingPeriod = 10 * time.Millisecond

type frameStat struct {
	function string
	file     string
	line     int64
	flat     int64
	cum      int64
}

type reportHeader struct {
	profileID    string
	targetName   string
	runsExecuted int
	elapsed      time.Duration
}

// renderReport aggregates the CPU samples labelled with the run's profile id
// and formats the hottest functions by cumulative time.
func renderReport(raw []byte, hdr reportHeader, limit int) (string, error) {
	var stats []frameStat
	var total int64
	var samples int

	if len(raw) > 0 {
		prof, err := profile.Parse(bytes.NewReader(raw))
		if err != nil {
			return "", fmt.Errorf("failed to parse cpu profile: %w", err)
		}
		stats, total, samples = aggregate(prof, hdr.profileID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Profile %s for target %q: %d runs in %s\n",
		hdr.profileID, hdr.targetName, hdr.runsExecuted, hdr.elapsed.Round(time.Microsecond))

	if samples == 0 {
		fmt.Fprintf(&b, "No CPU samples were recorded. The profiler samples every %s; increase runs or profile a longer target to get a call table.\n", SamplingPeriod)

		return b.String(), nil
	}

	shown := min(limit, len(stats))
	fmt.Fprintf(&b, "%d samples, %s total CPU time; showing top %d of %d functions sorted by cumulative time\n\n",
		samples, time.Duration(total), shown, len(stats))
	fmt.Fprintf(&b, "%12s %7s %12s %7s  %s\n", "flat", "flat%", "cum", "cum%", "function")
	for _, s := range stats[:shown] {
		fmt.Fprintf(&b, "%12s %6.2f%% %12s %6.2f%%  %s\n",
			time.Duration(s.flat), percent(s.flat, total),
			time.Duration(s.cum), percent(s.cum, total),
			location(s))
	}

	return b.String(), nil
}

func aggregate(prof *profile.Profile, profileID string) (stats []frameStat, total int64, samples int) {
	idx := valueIndex(prof)
	if idx < 0 {
		return nil, 0, 0
	}
	byKey := make(map[string]*frameStat)

	for _, sample := range prof.Sample {
		if idx >= len(sample.Value) || !hasLabel(sample, profileID) {
			continue
		}
		value := sample.Value[idx]
		total += value
		samples++

		// A function recursing within one stack counts once toward cum.
		seen := make(map[string]bool)
		for li, loc := range sample.Location {
			for lj, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				key := line.Function.Name + "\x00" + line.Function.Filename
				fs, ok := byKey[key]
				if !ok {
					fs = &frameStat{
						function: line.Function.Name,
						file:     line.Function.Filename,
						line:     line.Function.StartLine,
					}
					byKey[key] = fs
				}
				if li == 0 && lj == 0 {
					fs.flat += value
				}
				if !seen[key] {
					fs.cum += value
					seen[key] = true
				}
			}
		}
	}

	stats = make([]frameStat, 0, len(byKey))
	for _, fs := range byKey {
		stats = append(stats, *fs)
	}
	slices.SortFunc(stats, func(a, b frameStat) int {
		if c := cmp.Compare(b.cum, a.cum); c != 0 {
			return c
		}
		if c := cmp.Compare(b.flat, a.flat); c != 0 {
			return c
		}

		return strings.Compare(a.function, b.function)
	})

	return stats, total, samples
}

// valueIndex picks the cpu time column, falling back to the last one.
func valueIndex(prof *profile.Profile) int {
	for i, st := range prof.SampleType {
		if st.Type == "cpu" {
			return i
		}
	}

	return len(prof.SampleType) - 1
}

func hasLabel(sample *profile.Sample, profileID string) bool {
	return slices.Contains(sample.Label[profileLabel], profileID)
}

func percent(v, total int64) float64 {
	if total == 0 {
		return 0
	}

	return float64(v) / float64(total) * 100
}

func location(s frameStat) string {
	if s.file == "" {
		return s.function
	}

	return fmt.Sprintf("%s (%s:%d)", s.function, s.file, s.line)
}
