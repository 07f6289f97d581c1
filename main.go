package main

import "github.com/darrenhoch/DualogOutlook/cmd"

func main() {
	cmd.Execute()
}
