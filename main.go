package main

import "github/vaultbridge/hw-wallet/cmd"

func main() {
	cmd.Execute()
}
