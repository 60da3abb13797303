package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amarzullo24/vmup/pkg/logging"
)

var updateCmd = &cobra.Command{
	Use:   "update [host] [new_ip]",
	Short: "Update the HostName of a given SSH host.",
	Long:  "Update rewrites the HostName line of one host block, leaving every other line untouched.",
	Args:  cobra.ExactArgs(2),
	Run:   updateHost,
}

func updateHost(cmd *cobra.Command, args []string) {
	manager := newManager()
	host, newIP := args[0], args[1]

	if err := manager.UpdateHostname(host, newIP); err != nil {
		logging.ExitWithMSG(fmt.Sprintf("Error: %v", err), 1, &manager.Logger)
	}
	fmt.Printf("Successfully updated HostName for '%s' to '%s' in %s\n", host, newIP, manager.SSHConfigPath())
}
