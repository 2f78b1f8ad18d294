package main

import "github.com/dmitrijs2005/gameauth/internal/client/cli"

func main() {
	cli.Execute()
}
