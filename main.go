package main

import "github.com/amarzullo24/vmup/cmd"

func main() {
	cmd.Execute()
}
