package main

import "github.com/lintwarden/lintwarden/cmd"

func main() {
	cmd.Execute()
}
