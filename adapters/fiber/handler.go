package fiber

import (
	"errors"
	"math"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/sandbank"
)

func (a *Adapter) register(c fiber.Ctx) error {
	var input sandbank.RegisterInput
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	user, err := a.sb.Register(input)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(user)
}

func (a *Adapter) login(c fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := a.sb.Login(input.Username, input.Password)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) logout(c fiber.Ctx) error {
	if err := a.sb.Logout(extractToken(c)); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "signed out successfully",
	})
}

func (a *Adapter) session(c fiber.Ctx) error {
	data, err := a.sb.GetSession(extractToken(c))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(data)
}

func (a *Adapter) search(c fiber.Ctx) error {
	users, verdict, err := a.sb.Search(c.Query("q"))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"users":  users,
		"result": verdict,
	})
}

func (a *Adapter) rawQuery(c fiber.Ctx) error {
	var input struct {
		Query string `json:"query"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	report, err := a.sb.RunRawQuery(extractToken(c), input.Query)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(report)
}

func (a *Adapter) transfer(c fiber.Ctx) error {
	var input struct {
		Recipient   string  `json:"recipient"`
		Amount      float64 `json:"amount"` // dollars
		Description string  `json:"description"`
	}
	if err := c.Bind().Body(&input); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	// The engine works in cents; a non-finite amount never reaches it.
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return handleError(c, sandbank.ErrInvalidAmount)
	}
	cents := int64(math.Round(input.Amount * 100))

	pair, err := a.sb.Transfer(extractToken(c), input.Recipient, cents, input.Description)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(pair)
}

func (a *Adapter) transactions(c fiber.Ctx) error {
	txs, err := a.sb.Transactions(extractToken(c))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(txs)
}

func (a *Adapter) promote(c fiber.Ctx) error {
	user, err := a.sb.PromoteUser(extractToken(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(user)
}

func (a *Adapter) demote(c fiber.Ctx) error {
	user, err := a.sb.DemoteUser(extractToken(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(user)
}

func (a *Adapter) deleteUser(c fiber.Ctx) error {
	if err := a.sb.DeleteUser(extractToken(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "user deleted",
	})
}

func (a *Adapter) vulnerabilities(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(a.sb.ListVulnerabilities())
}

// handleError maps engine errors to appropriate HTTP responses.
func handleError(c fiber.Ctx, err error) error {
	return c.Status(mapErrorToStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// mapErrorToStatus maps engine error types to HTTP status codes.
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, sandbank.ErrInvalidCredentials),
		errors.Is(err, sandbank.ErrInvalidToken),
		errors.Is(err, sandbank.ErrSessionNotFound),
		errors.Is(err, sandbank.ErrSessionExpired),
		errors.Is(err, sandbank.ErrUnknownSession):
		return http.StatusUnauthorized

	case errors.Is(err, sandbank.ErrAccessDenied):
		return http.StatusForbidden

	case errors.Is(err, sandbank.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, sandbank.ErrUsernameTaken):
		return http.StatusConflict

	case errors.Is(err, sandbank.ErrWeakPassword),
		errors.Is(err, sandbank.ErrPasswordMismatch),
		errors.Is(err, sandbank.ErrUsernameRequired),
		errors.Is(err, sandbank.ErrInvalidAmount),
		errors.Is(err, sandbank.ErrInsufficientFunds),
		errors.Is(err, sandbank.ErrUnknownRecipient):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
