package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"reservas/api"
	"reservas/db"
	"reservas/message"
	"reservas/migrations"
	"reservas/observability"
	"reservas/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Debug("No .env file loaded")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tp := observability.ConfigureTraceProvider()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("Could not shut down trace provider")
		}
	}()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	if err != nil {
		logrus.WithError(err).Panic("Could not connect to Postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	rdb := message.NewRedisClient(os.Getenv("REDIS_ADDR"))
	defer rdb.Close()

	if os.Getenv("REBUILD_OPS_READ_MODEL") == "true" {
		err := migrations.RebuildOpsReadModel(
			ctx,
			db.NewDataLakeRepository(&conn),
			db.NewOpsReservationReadModel(&conn),
		)
		if err != nil {
			logrus.WithError(err).Panic("Could not rebuild ops read model")
		}
	}

	clients := api.NewClients(os.Getenv("UPSTREAM_API_URL"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	svc := service.New(
		rdb,
		conn,
		api.NewReservationsClient(clients),
		api.NewEventsClient(clients),
		api.NewUsersClient(clients),
		port,
	)

	logrus.Info("Starting reservas gateway")

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Panic("Service stopped with error")
	}
}
