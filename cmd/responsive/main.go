package main

import "github.com/withgalaxy/responsive/pkg/cli"

func main() {
	cli.Execute()
}
