package main

import "github.com/vvakame/fedecompose/internal/cli"

func main() {
	cli.Execute()
}
