package cmd

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bcg",
		Short:         "BarCamp session grid (bcg): plan tracks, time slots and topics",
		Long:          "bcg edits the session grid of a BarCamp planning room. The grid lives as a state event in a Matrix space, or in a local event log when working offline.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	flags := rootCmd.PersistentFlags()
	flags.String("backend", "", "Event backend: matrix or local")
	flags.String("room", "", "Matrix room id of the planning room")
	flags.String("space", "", "Matrix space id holding the session grid (default: parent space of the room)")
	flags.Bool("debug", false, "Log debug output to stderr")
	flags.Bool("ids", false, "Show track, time slot and topic ids")
	bindFlag(app, keyBackend, rootCmd, "backend")
	bindFlag(app, keyRoomID, rootCmd, "room")
	bindFlag(app, keySpaceID, rootCmd, "space")
	bindFlag(app, keyLogDebug, rootCmd, "debug")
	bindFlag(app, keyShowIDs, rootCmd, "ids")

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newGridCmd(app),
		newTrackCmd(app),
		newSlotCmd(app),
		newTopicCmd(app),
		newRoomCmd(app),
	)

	return rootCmd
}

func bindFlag(app *app, key string, cmd *cobra.Command, name string) {
	// BindPFlag only fails for a nil flag.
	_ = app.cfg.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
}
