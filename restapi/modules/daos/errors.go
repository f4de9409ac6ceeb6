package daos

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/governance-backend/governance"
)

// CodeInvalidRequest marks a body or parameter that could not be decoded.
const CodeInvalidRequest = "INVALID_REQUEST"

// StatusOf maps an error code to the HTTP status returned for it.
func StatusOf(code string) int {
	switch code {
	case governance.CodeNotMember:
		return fiber.StatusForbidden
	case governance.CodeDAONotFound, governance.CodeInvalidProposalID:
		return fiber.StatusNotFound
	case governance.CodeDAOIDTaken, governance.CodeAlreadyVoted, governance.CodeAlreadyExecuted:
		return fiber.StatusConflict
	case governance.CodeVotingEnded, governance.CodeVotingNotEnded,
		governance.CodeMajorityNotReached, governance.CodeQuorumNotReached,
		governance.CodeInsufficientFunds:
		return fiber.StatusUnprocessableEntity
	case governance.CodeInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// respondError writes the error envelope for err.
func respondError(c *fiber.Ctx, err error) error {
	code := governance.CodeOf(err)
	message := err.Error()
	if code == governance.CodeInternal {
		message = "internal error"
	}
	return c.Status(StatusOf(code)).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"code":    CodeInvalidRequest,
		"message": message,
	})
}
