package main

import "github.com/integralist/fastly-client-go/internal/cli"

func main() {
	cli.Execute()
}
