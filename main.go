package main

import "traveldeals/cmd"

func main() {
	cmd.Execute()
}
