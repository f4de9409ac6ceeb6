package daos

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/governance-backend/governance"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	cases := map[string]int{
		governance.CodeNotMember:          fiber.StatusForbidden,
		governance.CodeDAONotFound:        fiber.StatusNotFound,
		governance.CodeInvalidProposalID:  fiber.StatusNotFound,
		governance.CodeDAOIDTaken:         fiber.StatusConflict,
		governance.CodeAlreadyVoted:       fiber.StatusConflict,
		governance.CodeAlreadyExecuted:    fiber.StatusConflict,
		governance.CodeQuorumNotReached:   fiber.StatusUnprocessableEntity,
		governance.CodeMajorityNotReached: fiber.StatusUnprocessableEntity,
		governance.CodeInsufficientFunds:  fiber.StatusUnprocessableEntity,
		governance.CodeInvalidQuorum:      fiber.StatusBadRequest,
		governance.CodeMissingTarget:      fiber.StatusBadRequest,
		governance.CodeInternal:           fiber.StatusInternalServerError,
		CodeInvalidRequest:                fiber.StatusBadRequest,
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusOf(code), code)
	}
}
