package main

import "github.com/theirongolddev/deskpad/cmd"

func main() {
	cmd.Execute()
}
