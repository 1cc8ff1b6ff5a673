package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/classforge/classforge/apps/api/echo"
	"github.com/classforge/classforge/core"
	"github.com/classforge/classforge/core/assignment"
	"github.com/classforge/classforge/core/class"
	"github.com/classforge/classforge/core/submission"
	logsvc "github.com/classforge/classforge/services/logger"
	"github.com/classforge/classforge/storage/database"
)

func main() {
	conf := core.NewConfig()

	// set up logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() { _ = db.Close() }()

	// set up services
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	class.InitValidators(validate, translator)

	store := database.NewStore(db)
	classSvc := class.NewService(store, logger, validate, translator)
	asgSvc := assignment.NewService(store, logger, validate, translator)
	subSvc := submission.NewService(store, logger, validate, translator)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Conf:          conf,
			Logger:        logger,
			ClassSvc:      classSvc,
			AssignmentSvc: asgSvc,
			SubmissionSvc: subSvc,
		},
	)
	app.Start()
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
