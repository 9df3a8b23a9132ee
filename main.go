package main

import "github.com/rasoihub/tiffinbox/cmd"

func main() {
	cmd.Execute()
}
