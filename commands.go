package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// app holds what every command needs once the config has been read.
type app struct {
	configPath string
	out        io.Writer
	cfg        Config
	log        zerolog.Logger

	// httpClient builds the signed client Twitter calls go through.
	httpClient func(Config) *http.Client
}

func newApp(out io.Writer) *app {
	return &app{
		out:        out,
		log:        newLogger(out, "info", true),
		httpClient: newTwitterHTTPClient,
	}
}

func (a *app) setup() error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = newLogger(a.out, cfg.LogLevel, !cfg.LogJSON).With().Str("run_id", uuid.NewString()).Logger()
	return nil
}

func (a *app) api() TwitterAPI {
	return newTwitterClient(a.httpClient(a.cfg), a.log)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "follower-tweeter",
		Short: "Follow people who tweet about something, unfollow the ones who don't follow back",
		Long: `Each invocation does exactly one thing. In grow mode it searches tweets and
follows one author it has never followed before; once Twitter refuses a follow
it switches to prune mode, where it unfollows one account that doesn't follow
back. When nobody is left to unfollow it switches back to grow mode.

Meant to be run from cron or a similar scheduler.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", DEFAULT_CONFIG_PATH, "settings file")

	root.AddCommand(a.searchCmd(), a.seedLedgerCmd(), a.modeCmd())
	return root
}

func (a *app) run() error {
	api := a.api()
	runner := NewRunner(
		NewModeFile(a.cfg.ModeFilepath, a.log),
		NewGrower(api, NewLedger(a.cfg.OnceFollowedFilepath), a.cfg.UserSearchQuery, a.log),
		NewPruner(api, a.log),
		a.log,
	)
	return runner.Run()
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Print the ids of accounts a search would pick from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := a.cfg.UserSearchQuery
			if len(args) == 1 {
				query = args[0]
			}
			ids, err := a.api().SearchUsers(query)
			if err != nil {
				return err
			}
			for _, id := range ids.sorted() {
				fmt.Fprintln(a.out, id)
			}
			return nil
		},
	}
}

func (a *app) seedLedgerCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed-ledger",
		Short: "Write everyone currently followed into the once-followed ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			following, err := a.api().ListFollowing()
			if err != nil {
				return err
			}
			if err := writeLedger(a.cfg.OnceFollowedFilepath, following.sorted(), force); err != nil {
				return err
			}
			a.log.Info().Int("ids", len(following)).Str("path", a.cfg.OnceFollowedFilepath).Msg("seeded ledger")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing ledger")
	return cmd
}

func (a *app) modeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "mode [grow|prune]",
		Short:     "Show the current mode, or set it",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"grow", "prune"},
		RunE: func(cmd *cobra.Command, args []string) error {
			modeFile := NewModeFile(a.cfg.ModeFilepath, a.log)
			if len(args) == 0 {
				m, err := modeFile.Read()
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, m)
				return nil
			}
			m, err := parseModeName(args[0])
			if err != nil {
				return err
			}
			return modeFile.Write(m)
		},
	}
}
