// Package main is the entry point for the okauth CLI.
package main

import "github.com/simp-lee/odnoklassniki/internal/cli"

func main() {
	cli.Execute()
}
