package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amarzullo24/vmup/pkg/logging"
	"github.com/amarzullo24/vmup/pkg/sshconf"
)

var showCmd = &cobra.Command{
	Use:   "show [host]",
	Short: "Show the effective SSH settings for one host.",
	Long: `Show resolves the host against the ssh config the way ssh(1) would,
Host patterns included, and prints the effective settings.`,
	Args: cobra.ExactArgs(1),
	Run:  showHost,
}

func showHost(cmd *cobra.Command, args []string) {
	manager := newManager()
	host := args[0]

	resolved, err := sshconf.Resolve(host, manager.SSHConfigPath())
	if err != nil {
		logging.ExitWithMSG(fmt.Sprintf("Error: %v", err), 1, &manager.Logger)
	}

	fmt.Printf("Host %s\n", resolved.Host)
	fmt.Printf("    HostName %s\n", resolved.HostName)
	if resolved.User != "" {
		fmt.Printf("    User %s\n", resolved.User)
	}
	fmt.Printf("    Port %s\n", resolved.Port)
	if resolved.IdentityFile != "" {
		fmt.Printf("    IdentityFile %s\n", resolved.IdentityFile)
	}
}
