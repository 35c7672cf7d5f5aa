// Package main is the entry point for the bbtrack CLI tool, which tracks
// slot bonus buys per session and computes profit and ranking analytics.
package main

import "github.com/bbtrack/bbtrack/cmd"

func main() {
	cmd.Execute()
}
