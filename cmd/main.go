package main

import (
	"fmt"
	"os"

	"github.com/pyth-network/governance/cmd/xcadmin"
)

func main() {
	rootCmd := xcadmin.BuildXcadminCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
