package main

import "github.com/jhoicas/Ventas-api/cmd/ventasctl/commands"

func main() {
	commands.Execute()
}
