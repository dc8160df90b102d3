package main

import "github.com/samsaffron/streamui/cmd"

func main() {
	cmd.Execute()
}
