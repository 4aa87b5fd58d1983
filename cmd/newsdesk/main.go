package main

import "github.com/finwire/newsdesk/internal/commands"

func main() {
	commands.Execute()
}
