package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amarzullo24/vmup/pkg/logging"
)

var stopCmd = &cobra.Command{
	Use:   "stop [instance]",
	Short: "Stop a VM.",
	Args:  cobra.ExactArgs(1),
	Run:   stopVM,
}

func stopVM(cmd *cobra.Command, args []string) {
	manager := newManager()
	instance := args[0]

	if err := manager.StopVM(instance); err != nil {
		logging.ExitWithMSG(fmt.Sprintf("Error: %v", err), 1, &manager.Logger)
	}
	fmt.Printf("Successfully stopped %s\n", instance)
}
