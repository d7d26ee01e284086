package main

import (
	"os"

	"goTweetStatus/cli"
)

func main() {
	os.Exit(cli.Execute())
}
