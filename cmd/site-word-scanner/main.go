package main

import cmd "github.com/rohmanhakim/site-word-scanner/internal/cli"

func main() {
	cmd.Execute()
}
