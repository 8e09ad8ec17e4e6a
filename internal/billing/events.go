package billing

import (
	"context"
	"fmt"

	"ml_billing/internal/domain"

	"github.com/sirupsen/logrus"
)

// ProcessEvent runs the billing side effects of an event and attaches it to its creator.
//
// A top-up deposits the event amount. A model call checks the balance covers the
// inference cost, asks p for a prediction, charges the cost and records the prediction;
// any failure leaves the wallet and both logs unchanged. Other titles have no billing
// side effects.
func (s *Service) ProcessEvent(ctx context.Context, ev *domain.Event, p Predictor) error {
	if ev == nil || ev.Creator == nil {
		return ErrNoEvent
	}
	user := ev.Creator
	if user.Wallet == nil {
		return ErrNoWallet
	}

	switch ev.Title {
	case domain.TopUpTitle:
		if !ev.Amount.IsPositive() {
			s.logRejected(ctx, user, ev.Amount, domain.KindDeposit, domain.ErrInvalidAmount)
			return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidAmount, ev.Amount)
		}
		unlock := s.lock(user.ID)
		defer unlock()
		if _, err := s.execute(ctx, user, ev.Amount, domain.KindDeposit); err != nil {
			return err
		}
		user.AddEvent(ev)
		return nil

	case domain.ModelCallTitle:
		unlock := s.lock(user.ID)
		defer unlock()
		return s.modelCall(ctx, ev, p)

	default:
		unlock := s.lock(user.ID)
		defer unlock()
		user.AddEvent(ev)
		s.logger(ctx).WithFields(logrus.Fields{
			"user_id":  user.ID,
			"event_id": ev.ID,
			"title":    ev.Title,
		}).Debug("Event has no billing action")
		return nil
	}
}

// modelCall must be called with the creator's lock held
func (s *Service) modelCall(ctx context.Context, ev *domain.Event, p Predictor) error {
	user := ev.Creator
	cost := s.inferenceCost

	if cost.IsNegative() {
		s.logRejected(ctx, user, cost, domain.KindServiceCharge, domain.ErrInvalidAmount)
		return fmt.Errorf("%w: inference cost %s is negative", domain.ErrInvalidAmount, cost)
	}
	if user.Wallet.Balance().LessThan(cost) {
		s.logRejected(ctx, user, cost, domain.KindServiceCharge, domain.ErrInsufficientFunds)
		return fmt.Errorf("%w: balance %s, model call costs %s", domain.ErrInsufficientFunds,
			user.Wallet.Balance().StringFixed(2), cost.StringFixed(2))
	}
	if p == nil {
		return fmt.Errorf("%w: no model configured", ErrPredictor)
	}

	pred, err := p.Predict(ev.Image)
	if err != nil {
		s.logger(ctx).WithFields(logrus.Fields{
			"user_id":  user.ID,
			"event_id": ev.ID,
			"image":    ev.Image,
			"error":    err.Error(),
		}).Error("Prediction failed")
		return fmt.Errorf("%w: %w", ErrPredictor, err)
	}

	// A zero cost makes the call free: the prediction is recorded without a charge
	if cost.IsPositive() {
		if _, err := s.execute(ctx, user, cost, domain.KindServiceCharge); err != nil {
			return err
		}
	}

	ev.Result = pred.Output
	ev.Amount = cost
	user.AddEvent(ev)
	s.history.AddPrediction(domain.NewPredictionRecord(user.ID, pred.Input, pred.Output, s.now()))

	s.logger(ctx).WithFields(logrus.Fields{
		"user_id":  user.ID,
		"event_id": ev.ID,
		"image":    pred.Input,
		"result":   pred.Output,
		"cost":     cost.String(),
	}).Info("Model call billed")
	return nil
}
