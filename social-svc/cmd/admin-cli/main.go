package main

import "github.com/Densingh-123/Home-Services/social-svc/cmd/admin-cli/commands"

func main() {
	commands.Execute()
}
