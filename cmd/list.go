package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured SSH hosts and their HostNames.",
	Args:  cobra.NoArgs,
	Run:   listHosts,
}

func listHosts(cmd *cobra.Command, args []string) {
	manager := newManager()

	hostnames, err := manager.ListHostnames()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	if len(hostnames) == 0 {
		fmt.Println("No hostnames found in the SSH config file.")
		return
	}

	fmt.Println("Configured Hosts:")
	for _, entry := range hostnames {
		fmt.Println(entry)
	}
}
