package main

import "github.com/claude/gymlog/internal/cli"

func main() {
	cli.Execute()
}
