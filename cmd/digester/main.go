package main

import cmd "github.com/rohmanhakim/digester/internal/cli"

func main() {
	cmd.Execute()
}
