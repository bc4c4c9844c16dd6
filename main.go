/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "BaziMeta/cmd"

func main() {
	cmd.Execute()
}
