package main

import "github.com/labnet/testledger/cmd/testledger/command"

func main() {
	command.Execute()
}
