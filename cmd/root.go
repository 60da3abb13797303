// root.go
// Copyright (C) Andrew Woodlee 2023
// License: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amarzullo24/vmup/pkg/logging"
	"github.com/amarzullo24/vmup/pkg/vmup"
)

var (
	// Used for flags.
	settingsFile string
	sshConfig    string
	verbose      bool
	logFile      string

	rootCmd = &cobra.Command{
		Use:   "vmup",
		Short: "Keeps SSH config HostName entries in sync with cloud VMs.",
		Long: `Vmup manages Host blocks in the SSH client config and drives the
gcloud CLI to start and stop compute instances, rewriting each HostName
with the ephemeral public IP a VM gets on start.`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
)

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "config", "f", "", "settings file to read from")
	rootCmd.PersistentFlags().StringVar(&sshConfig, "sshConfig", "", "ssh config file to edit, overrides the settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Sets verbose level")
	rootCmd.PersistentFlags().StringVar(&logFile, "logFile", "", "log file to write to")
	rootCmd.AddCommand(listCmd, updateCmd, addCmd, startCmd, stopCmd, showCmd, versionCmd)
}

func newManager() *vmup.Manager {
	path := settingsFile
	if path == "" {
		path = vmup.DefaultSettingsPath()
	}
	settings, err := vmup.LoadSettings(path)
	if err != nil {
		logging.ExitWithMSG(fmt.Sprintf("Error: %v", err), 1, nil)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	writers := logging.SetLoggingWriters(logFile)
	log := zerolog.New(writers).With().Timestamp().Logger()

	return vmup.NewManager(settings, log, vmup.WithSSHConfig(sshConfig))
}
