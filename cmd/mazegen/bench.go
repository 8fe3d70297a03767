package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/encoder/pb"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	width  int
	height int
	runs   int
	seed   int64
}

// benchSample collects one metric across runs.
type benchSample struct {
	name string
	data stats.Float64Data
}

// benchReport is the outcome of a bench run.
type benchReport struct {
	runs    int
	elapsed time.Duration
	encoded uint64
	walls   int64
	samples []*benchSample
}

func newBenchCmd(newLogger loggerFactory) *cobra.Command {
	opts := benchOptions{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Generate many mazes and report their shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := newLogger(cmd)
			if err != nil {
				return err
			}

			report, err := runBench(opts, func(run int, elapsed time.Duration) {
				l.Debug(fmt.Sprintf("Run %d took %s", run, elapsed))
			})
			if err != nil {
				return err
			}
			return report.write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "W", 20, "rooms per row")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 20, "rooms per column")
	cmd.Flags().IntVarP(&opts.runs, "runs", "n", 100, "number of mazes to generate")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "seed of the first run, incremented per run")
	return cmd
}

// runBench generates opts.runs mazes with consecutive seeds.
func runBench(opts benchOptions, progress func(run int, elapsed time.Duration)) (*benchReport, error) {
	if opts.runs < 1 {
		return nil, errors.New("runs must be at least 1")
	}

	solution := &benchSample{name: "solution length"}
	deadEnds := &benchSample{name: "dead ends"}
	junctions := &benchSample{name: "junctions"}
	recoveries := &benchSample{name: "recoveries"}
	draws := &benchSample{name: "draws"}
	report := &benchReport{
		runs:    opts.runs,
		samples: []*benchSample{solution, deadEnds, junctions, recoveries, draws},
	}

	encoder := &pb.Protobuf{}
	start := time.Now()
	for run := 0; run < opts.runs; run++ {
		seed := opts.seed + int64(run)
		runStart := time.Now()

		m, err := generateMaze(opts.width, opts.height, seed)
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", run, err)
		}
		if progress != nil {
			progress(run, time.Since(runStart))
		}

		shape := m.Analyze()
		solution.data = append(solution.data, float64(shape.SolutionLength))
		deadEnds.data = append(deadEnds.data, float64(shape.DeadEnds))
		junctions.data = append(junctions.data, float64(shape.Junctions))
		recoveries.data = append(recoveries.data, float64(m.Stats().Recoveries))
		draws.data = append(draws.data, float64(m.Stats().Draws))
		report.walls += int64(m.Len())

		b, err := encoder.MarshalMaze(dmn.NewMazeRecord(uuid.New(), seed, m))
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", run, err)
		}
		report.encoded += uint64(len(b))
	}
	report.elapsed = time.Since(start)

	return report, nil
}

func (r *benchReport) write(w io.Writer) error {
	fmt.Fprintf(w, "%d mazes in %s, %s walls, %s encoded\n",
		r.runs, r.elapsed.Round(time.Millisecond), humanize.Comma(r.walls), humanize.Bytes(r.encoded))
	fmt.Fprintf(w, "%-16s %10s %10s %10s\n", "metric", "mean", "median", "stddev")

	for _, s := range r.samples {
		mean, err := stats.Mean(s.data)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		median, err := stats.Median(s.data)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		stddev, err := stats.StandardDeviation(s.data)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		fmt.Fprintf(w, "%-16s %10.2f %10.2f %10.2f\n", s.name, mean, median, stddev)
	}
	return nil
}
