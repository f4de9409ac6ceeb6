// Package daos implements the REST API handlers for DAO governance.
package daos

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/ortelius/governance-backend/governance"
	"github.com/ortelius/governance-backend/internal/services"
	"github.com/ortelius/governance-backend/model"
	"github.com/ortelius/governance-backend/restapi/modules/auth"
	"github.com/ortelius/governance-backend/util"
)

func caller(c *fiber.Ctx) string {
	id, _ := auth.Identity(c)
	return id
}

func proposalID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("pid")
	if err != nil {
		return 0, governance.ErrInvalidProposalID
	}
	return id, nil
}

func views(svc *services.GovernanceService, ps []model.Proposal) []model.ProposalView {
	now := svc.Now()
	out := make([]model.ProposalView, 0, len(ps))
	for _, p := range ps {
		out = append(out, model.ProposalView{Proposal: p, Status: p.Status(now)})
	}
	return out
}

// CreateDAO handles POST /daos
func CreateDAO(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CreateDAORequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
		req.InitialMembers = util.NormalizeIdentities(req.InitialMembers)

		info, err := svc.CreateDAO(c.UserContext(), caller(c), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"dao":     info,
		})
	}
}

// ListDAOs handles GET /daos
func ListDAOs(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Registry.DAOs(svc.Now()))
	}
}

// GetDAO handles GET /daos/:id
func GetDAO(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := svc.Registry.DAOInfo(c.Params("id"), svc.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(info)
	}
}

// ListProposals handles GET /daos/:id/proposals[?active=true]
func ListProposals(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.Registry.DAO(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		if c.QueryBool("active") {
			return c.JSON(views(svc, org.ActiveProposals(svc.Now())))
		}
		return c.JSON(views(svc, org.Proposals()))
	}
}

// GetProposal handles GET /daos/:id/proposals/:pid
func GetProposal(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.Registry.DAO(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		id, err := proposalID(c)
		if err != nil {
			return respondError(c, err)
		}
		p, err := org.Proposal(id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(model.ProposalView{Proposal: p, Status: p.Status(svc.Now())})
	}
}

// CreateProposal handles POST /daos/:id/proposals
func CreateProposal(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CreateProposalRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
		req.Target = util.NormalizeIdentity(req.Target)

		p, err := svc.CreateProposal(c.UserContext(), caller(c), c.Params("id"), req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success":  true,
			"proposal": model.ProposalView{Proposal: p, Status: p.Status(svc.Now())},
		})
	}
}

// Vote handles POST /daos/:id/proposals/:pid/vote
func Vote(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.VoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}
		id, err := proposalID(c)
		if err != nil {
			return respondError(c, err)
		}

		p, err := svc.Vote(c.UserContext(), caller(c), c.Params("id"), id, req.Support)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success":  true,
			"proposal": model.ProposalView{Proposal: p, Status: p.Status(svc.Now())},
		})
	}
}

// Execute handles POST /daos/:id/proposals/:pid/execute
func Execute(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := proposalID(c)
		if err != nil {
			return respondError(c, err)
		}

		p, err := svc.Execute(c.UserContext(), caller(c), c.Params("id"), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success":  true,
			"proposal": model.ProposalView{Proposal: p, Status: p.Status(svc.Now())},
		})
	}
}

// Deposit handles POST /daos/:id/deposit
func Deposit(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.DepositRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body: "+err.Error())
		}

		balance, err := svc.Deposit(c.UserContext(), c.Params("id"), caller(c), req.Value)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"success": true,
			"balance": balance,
		})
	}
}

// GetMember handles GET /daos/:id/members/:member
func GetMember(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.Registry.DAO(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		member := c.Params("member")
		return c.JSON(fiber.Map{
			"identity":  member,
			"is_member": org.IsMember(member),
			"activity":  org.MemberActivities(member),
		})
	}
}

// ListActivities handles GET /daos/:id/activities
func ListActivities(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.Registry.DAO(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(org.AllMembersActivities())
	}
}

// GetActivity handles GET /daos/:id/activities/:member
func GetActivity(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.Registry.DAO(c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(org.MemberActivities(c.Params("member")))
	}
}

// ListAllProposals handles GET /proposals
func ListAllProposals(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(views(svc, svc.Registry.AllProposals()))
	}
}

// userParam reads the :user path parameter as a normalized identity.
func userParam(c *fiber.Ctx) string {
	user := c.Params("user")
	if unescaped, err := url.PathUnescape(user); err == nil {
		user = unescaped
	}
	return util.NormalizeIdentity(user)
}

// ListUserDAOs handles GET /users/:user/daos
func ListUserDAOs(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Registry.UserDAOs(userParam(c), svc.Now()))
	}
}

// ListUserProposals handles GET /users/:user/proposals
func ListUserProposals(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(views(svc, svc.Registry.UserProposals(userParam(c))))
	}
}

// GetUserActivities handles GET /users/:user/activities
func GetUserActivities(svc *services.GovernanceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Registry.UserActivities(userParam(c)))
	}
}
