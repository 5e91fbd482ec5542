package main

import (
	"comcigan/cmd/comcigan-cli/commands"
	"context"
)

func main() {
	commands.ExecuteContext(context.Background())
}
