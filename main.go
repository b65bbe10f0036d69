package main

import "github.com/jenkins-infra/plugin-modernizer-stats/cmd"

func main() {
	cmd.Execute()
}
