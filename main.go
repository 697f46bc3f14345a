package main

import "github.com/ahmedhsn/studybudget/internal/cli"

func main() {
	cli.Execute()
}
