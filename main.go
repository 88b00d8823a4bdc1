package main

import "github.com/frahmantamala/budget-tracker/cmd"

func main() {
	cmd.Execute()
}
