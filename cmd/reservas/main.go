package main

import "github.com/mesafacil/reservas/internal/cli"

func main() {
	cli.Execute()
}
