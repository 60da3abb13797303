package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amarzullo24/vmup/pkg/logging"
)

var startCmd = &cobra.Command{
	Use:   "start [instance]",
	Short: "Start a VM and update the SSH config with its public IP.",
	Args:  cobra.ExactArgs(1),
	Run:   startVM,
}

func startVM(cmd *cobra.Command, args []string) {
	manager := newManager()
	instance := args[0]

	if err := manager.StartVM(instance); err != nil {
		logging.ExitWithMSG(fmt.Sprintf("Error: %v", err), 1, &manager.Logger)
	}
	fmt.Printf("Successfully updated SSH config for %s\n", instance)
}
