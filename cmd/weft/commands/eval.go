package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newEvalCmd() *cobra.Command {
	var ctxVars []string

	cmd := &cobra.Command{
		Use:   "eval <definition> <plug>",
		Short: "Evaluate a plug of a definition file",
		Long: `Evaluate a dotted plug path inside a definition file, for example:

  weft eval rig.weft.yaml rig.result --context tree:path=/a/b`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars := make(map[string]string, len(ctxVars))
			for _, kv := range ctxVars {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return zerr.With(zerr.New("context entries take the form key=value"), "entry", kv)
				}
				vars[k] = v
			}
			out, err := c.app.Eval(args[0], args[1], vars)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&ctxVars, "context", "c", nil, "context entry key=value (repeatable)")
	return cmd
}
