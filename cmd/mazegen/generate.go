package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/encoder/pb"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by generate.
const (
	formatASCII = "ascii"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatPB    = "pb"
)

type generateOptions struct {
	width  int
	height int
	seed   int64
	format string
	output string
}

func newGenerateCmd(newLogger loggerFactory) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one maze and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = time.Now().UnixNano()
			}
			l, err := newLogger(cmd)
			if err != nil {
				return err
			}

			m, err := generateMaze(opts.width, opts.height, opts.seed)
			if err != nil {
				return err
			}
			l.Debug(fmt.Sprintf("Generated %dx%d maze with seed %d in %d draws", opts.width, opts.height, opts.seed, m.Stats().Draws))

			b, err := render(m, opts.seed, opts.format)
			if err != nil {
				return err
			}

			if opts.output == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(opts.output, b, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", opts.output, err)
			}
			l.Info(fmt.Sprintf("Wrote %s", opts.output))
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.width, "width", "W", 10, "rooms per row")
	cmd.Flags().IntVarP(&opts.height, "height", "H", 10, "rooms per column")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "generator seed, random when unset")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatASCII, "output format: ascii, json, yaml or pb")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

// generateMaze builds a maze with its entrance and exit opened.
func generateMaze(width, height int, seed int64) (*maze.Maze, error) {
	g, err := maze.NewGenerator(width, height, maze.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	return g.Generate()
}

func render(m *maze.Maze, seed int64, format string) ([]byte, error) {
	if format == formatASCII {
		return []byte(m.String()), nil
	}

	record := dmn.NewMazeRecord(uuid.New(), seed, m)
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case formatYAML:
		return yaml.Marshal(record)
	case formatPB:
		return (&pb.Protobuf{}).MarshalMaze(record)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
