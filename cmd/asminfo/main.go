package main

import "github.com/mvp-joe/asminfo/internal/cli"

func main() {
	cli.Execute()
}
