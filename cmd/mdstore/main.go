package main

import (
	"github.com/bornholm/mdstore/internal/command"
	"github.com/bornholm/mdstore/internal/command/file"
	"github.com/bornholm/mdstore/internal/command/mirror"
)

func main() {
	command.Main(
		"mdstore", "a markdown file store client",
		file.ListCommand(),
		file.CatCommand(),
		file.PutCommand(),
		file.RemoveCommand(),
		file.FetchCommand(),
		file.ViewCommand(),
		file.PreviewCommand(),
		mirror.Command(),
	)
}
