package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lrucache/internal/script"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Replay a command script against a fresh cache",
		Long: `Replay a command script against a fresh cache of --capacity entries.

The script is read from file, or from stdin when no file is given. Every
command except put prints one line: the value or MISS for get and peek,
true/false for del, the count for len, and MRU-to-LRU keys for keys.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			ops, err := script.Parse(in)
			if err != nil {
				return err
			}

			c, err := a.newCache(a.cfg.Capacity)
			if err != nil {
				return err
			}

			results, err := script.RunContext(cmd.Context(), c, ops)
			out := cmd.OutOrStdout()
			for _, r := range results {
				switch r.Op.Kind {
				case script.KindPut:
					continue
				case script.KindGet, script.KindPeek:
					a.log.Debug().Str("op", r.Op.String()).Bool("found", r.Found).Msg("lookup")
				}
				fmt.Fprintln(out, r)
			}
			if err != nil {
				a.log.Warn().Err(err).Int("applied", len(results)).Int("total", len(ops)).Msg("replay interrupted")
				return err
			}

			a.log.Info().Int("ops", len(ops)).Int("resident", c.Len()).Msg("replay finished")
			return nil
		},
	}
}
