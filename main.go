package main

import "github.com/gradus-nz/gradus/internal/cli"

func main() {
	cli.Execute()
}
