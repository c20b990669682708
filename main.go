package main

import "github.com/KaramelBytes/releve-cli/cmd"

func main() {
	cmd.Execute()
}
