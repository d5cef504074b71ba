package main

import "github.com/synheart/lifelog/internal/cli"

func main() {
	cli.Execute()
}
