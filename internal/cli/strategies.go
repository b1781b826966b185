package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"quantfolio/types"
)

// strategiesCmd lists the built-in strategies with their defaults.
type strategiesCmd struct{}

func (*strategiesCmd) Name() string     { return "strategies" }
func (*strategiesCmd) Synopsis() string { return "list built-in strategies and their parameters" }
func (*strategiesCmd) Usage() string {
	return `quantfolio strategies

  Lists every built-in strategy with its description and default parameters.
`
}
func (*strategiesCmd) SetFlags(*flag.FlagSet) {}

func (c *strategiesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, info := range types.Strategies {
		fmt.Printf("%s: %s\n", info.ID, info.Name)
		fmt.Printf("    %s\n", info.Description)
		params, err := json.Marshal(info.Params)
		if err == nil {
			fmt.Printf("    defaults: %s\n", params)
		}
	}
	return subcommands.ExitSuccess
}
