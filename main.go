package main

import "github.com/twiced-technology-gmbh/weekplan/cmd"

func main() {
	cmd.Execute()
}
