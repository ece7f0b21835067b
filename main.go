package main

import "github.com/sunbearc22/panewright/cmd"

func main() {
	cmd.Execute()
}
