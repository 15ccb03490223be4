package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/autotrips/bid-service/internal/client"
	"github.com/autotrips/bid-service/internal/router/config"
	"github.com/autotrips/bid-service/internal/store"

	"github.com/sirupsen/logrus"
)

// logNotifier выводит уведомления хранилищ в лог вместо интерфейса.
type logNotifier struct {
	logger *logrus.Logger
}

func (n *logNotifier) ShowNotification(message string, severity store.Severity) {
	if severity == store.SeverityError {
		n.logger.Error(message)
		return
	}
	n.logger.Info(message)
}

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	status := flag.String("status", "", "optional list_state filter")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Fatal("cannot load config: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authStore := store.NewAuthStore(client.NewAuthAPI(cfg.AuthBaseURL, nil))
	pair, err := authStore.Login(ctx, *email, *password)
	if err != nil {
		logger.Fatal(authStore.Error())
	}
	logger.Infof("logged in as %s", authStore.Role())

	api := client.New(cfg.APIBaseURL, nil)
	api.SetToken(pair.Access)

	notifier := &logNotifier{logger: logger}
	bidStore := store.NewBidStore(api, notifier, logger)
	transporterStore := store.NewTransporterStore(api)

	bidStore.FetchBids(ctx, *status)
	transporterStore.FetchTransporters(ctx)

	snapshot := bidStore.Snapshot()
	if snapshot.BidError != "" {
		logger.Fatal(snapshot.BidError)
	}
	logger.Infof("bids: untouched=%d in_progress=%d completed=%d, transporters=%d",
		len(snapshot.Untouched), len(snapshot.InProgress), len(snapshot.Completed),
		len(transporterStore.Transporters()))
}
