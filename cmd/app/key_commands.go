package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tradeport/keyvault/cmd/app/commands"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master encryption key",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateMasterKey(commands.DefaultIO().Writer)
			},
		},
	}
}
