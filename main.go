package main

import "github.com/naka-gawa/trending-analyzer/cmd"

func main() {
	cmd.Execute()
}
