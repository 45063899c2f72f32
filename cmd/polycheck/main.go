package main

import "github.com/aalvaropc/polycheck/internal/cli"

func main() {
	cli.Execute()
}
