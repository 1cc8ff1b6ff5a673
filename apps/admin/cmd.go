package main

import (
	"errors"
	"fmt"

	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/storage/database"
)

var (
	errHelp = errors.New("help provided")

	// mockable
	createIfNotExistFunc = database.CreateIfNotExist
	migrateFunc          = migrate
)

type commandLine struct {
	conf *core.Config
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  createdb - create the app database and user if they do not exist")
	fmt.Println("  migrate  - apply pending schema migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "createdb":
		return createIfNotExistFunc(cli.conf)
	case "migrate":
		return migrateFunc(cli.conf)
	default:
		cli.printUsage()
		return errHelp
	}
}

func migrate(conf *core.Config) error {
	db, err := database.Open(conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err = db.Ping(); err != nil {
		return err
	}
	return database.Migrate(db)
}
