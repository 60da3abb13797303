package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amarzullo24/vmup/pkg/logging"
)

var addCmd = &cobra.Command{
	Use:   "add [new_name]",
	Short: "Add a new SSH host entry.",
	Long: `Add appends a host block with a placeholder HostName, the Google
Compute Engine identity file and the user from the settings file.`,
	Args: cobra.ExactArgs(1),
	Run:  addHost,
}

func addHost(cmd *cobra.Command, args []string) {
	manager := newManager()
	name := args[0]

	if err := manager.AddHost(name); err != nil {
		logging.ExitWithMSG(fmt.Sprintf("Error: %v", err), 1, &manager.Logger)
	}
	fmt.Printf("Successfully added new host '%s' to %s\n", name, manager.SSHConfigPath())
}
