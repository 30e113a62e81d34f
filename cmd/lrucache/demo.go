package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lrucache/internal/script"
)

const demoCapacity = 2

const demoScript = `put 1 1
put 2 2
get 1
put 3 3
get 2
put 4 4
get 1
get 3
get 4
keys`

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Replay the capacity-2 eviction walkthrough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := script.Parse(strings.NewReader(demoScript))
			if err != nil {
				return err
			}

			c, err := a.newCache(demoCapacity)
			if err != nil {
				return err
			}

			a.log.Info().Int("capacity", demoCapacity).Msg("lrucache demo starting")
			out := cmd.OutOrStdout()
			for _, r := range script.Run(c, ops) {
				a.log.Info().Str("op", r.Op.String()).Strs("keys", c.Keys()).Msg("step")
				if r.Op.Kind == script.KindPut {
					continue
				}
				fmt.Fprintf(out, "%-8s -> %s\n", r.Op, r)
			}
			return nil
		},
	}
}
