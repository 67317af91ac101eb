package main

import "github.com/KaramelBytes/phenoqc/cmd"

func main() {
	cmd.Execute()
}
