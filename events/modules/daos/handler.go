package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DepositService applies treasury deposits.
type DepositService interface {
	Deposit(ctx context.Context, daoID, from string, amount decimal.Decimal) (decimal.Decimal, error)
}

// ErrInvalidEvent marks deposit messages that can never be applied.
var ErrInvalidEvent = errors.New("invalid event")

// HandleTreasuryDeposit processes one message from the deposit topic.
func HandleTreasuryDeposit(ctx context.Context, msg []byte, service DepositService, logger *zap.Logger) error {
	var event TreasuryDepositEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return fmt.Errorf("%w: failed to unmarshal TreasuryDepositEvent: %v", ErrInvalidEvent, err)
	}

	if event.DAOID == "" || event.From == "" || !event.Amount.IsPositive() {
		return fmt.Errorf("%w: missing required fields", ErrInvalidEvent)
	}

	balance, err := service.Deposit(ctx, event.DAOID, event.From, event.Amount)
	if err != nil {
		return fmt.Errorf("deposit to %s: %w", event.DAOID, err)
	}

	logger.Info("treasury deposit applied",
		zap.String("dao_id", event.DAOID),
		zap.String("from", event.From),
		zap.String("amount", event.Amount.String()),
		zap.String("balance", balance.String()))
	return nil
}
