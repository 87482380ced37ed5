package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"Repokit/database"
	"Repokit/internal/server"
)

func main() {
	srv, err := InitializeServer()
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDatabase(srv.DB)

	if err := srv.JanitorService.StartCleanCycle(); err != nil {
		log.Fatalf("Failed to schedule the janitor: %v", err)
	}
	defer srv.JanitorService.StopClean()

	app := server.NewApp(srv)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		if err := app.Shutdown(); err != nil {
			srv.LogService.Log.WithError(err).Error("shutdown failed")
		}
	}()

	if err := app.Listen(fmt.Sprintf(":%d", srv.Configuration.Server.Port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
