package main

import "statuswatch/internal/cli"

func main() {
	cli.Execute()
}
