package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tradeport/keyvault/cmd/app/commands"
	"github.com/tradeport/keyvault/internal/app"
	"github.com/tradeport/keyvault/internal/config"
)

func getAdminCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Register a new user account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address for the new user",
				},
				&cli.StringFlag{
					Name:     "password",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Password for the new user",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				userUseCase, err := container.UserUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateUser(
					ctx,
					userUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "create-exchange",
			Usage: "Register a trading venue for credential storage",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Venue name (e.g., binance, coinbase, kraken)",
				},
				&cli.StringFlag{
					Name:     "display-name",
					Aliases:  []string{"d"},
					Required: true,
					Usage:    "Human-readable venue name",
				},
				&cli.StringFlag{
					Name:    "base-url",
					Aliases: []string{"u"},
					Value:   "",
					Usage:   "Override the venue's default API base URL",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				exchangeUseCase, err := container.ExchangeUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateExchange(
					ctx,
					exchangeUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("display-name"),
					cmd.String("base-url"),
					cmd.String("format"),
				)
			},
		},
	}
}
