// Command demo runs the billing flow in-process: a user with 100.00 tops up and
// calls the model, then the balance and both histories are printed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"ml_billing/internal/billing"
	"ml_billing/internal/config"
	"ml_billing/internal/domain"
	"ml_billing/internal/history"
	"ml_billing/internal/model"
	"ml_billing/internal/registry"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if !cfg.Debug {
		log.SetLevel(logrus.WarnLevel)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("demo failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logrus.FieldLogger) error {
	ctx := context.Background()
	hist := history.New()
	svc := billing.NewService(hist, log, billing.WithInferenceCost(cfg.ModelInferenceCost))
	users := registry.New(cfg.MinPasswordLength)

	user, err := users.CreateWithBalance("test@mail.ru", "secure_password123", decimal.RequireFromString("100.00"))
	if err != nil {
		return err
	}

	top, err := domain.NewTopUpEvent(1, user, decimal.RequireFromString("25.00"), time.Now())
	if err != nil {
		return err
	}
	if err := svc.ProcessEvent(ctx, top, nil); err != nil {
		return err
	}

	path := cfg.ModelPath
	if path == "" {
		path = "model_path.txt"
	}
	call, err := domain.NewModelCallEvent(2, user, "image.jpg", time.Now())
	if err != nil {
		return err
	}
	if err := svc.ProcessEvent(ctx, call, model.Load(path, log)); err != nil {
		// A missing model file is expected outside a real deployment
		fmt.Printf("Model call failed: %v\n", err)
	}

	fmt.Printf("User %d <%s>\n", user.ID, user.Email)
	fmt.Printf("Current balance: %s\n", user.Wallet.Balance().StringFixed(2))
	fmt.Println("Balance history:")
	for _, r := range hist.TransactionsFor(user.ID) {
		fmt.Printf("%d. [%s] %s: %s\n", r.TransactionID, r.Timestamp.Format("2006-01-02 15:04"), r.Kind, r.Amount.StringFixed(2))
	}
	fmt.Println("Model requests:")
	for i, p := range hist.PredictionsFor(user.ID) {
		fmt.Printf("%d. [%s] file: %s, result: %s\n", i+1, p.Timestamp.Format("2006-01-02 15:04"), p.InputImage, p.OutputResult)
	}
	fmt.Printf("Events: %d, model call price: %s\n", len(user.Events), svc.InferenceCost().StringFixed(2))
	return nil
}
