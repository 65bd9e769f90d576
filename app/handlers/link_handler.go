package handlers

import (
	"context"
	"log"
	"time"

	businessflow "github.com/pabst/shortener/business_flow"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/pabst/shortener/app/dto"
	"github.com/pabst/shortener/utils"
)

// LinkHandlerInterface defines the contract for link submission and
// resolution endpoints
type LinkHandlerInterface interface {
	Add(c fiber.Ctx) error
	Visit(c fiber.Ctx) error
	WhatIs(c fiber.Ctx) error
	ShortenPage(c fiber.Ctx) error
}

type LinkHandler struct {
	shortenFlow businessflow.ShortenFlow
	visitFlow   businessflow.VisitFlow
	lookupFlow  businessflow.LookupFlow
	validator   *validator.Validate
	rootURL     string
}

func NewLinkHandler(
	shortenFlow businessflow.ShortenFlow,
	visitFlow businessflow.VisitFlow,
	lookupFlow businessflow.LookupFlow,
	rootURL string,
) LinkHandlerInterface {
	return &LinkHandler{
		shortenFlow: shortenFlow,
		visitFlow:   visitFlow,
		lookupFlow:  lookupFlow,
		validator:   validator.New(),
		rootURL:     rootURL,
	}
}

// Add shortens a submitted URL. Resubmitting a known URL answers 200
// with the existing link instead of creating a duplicate.
func (h *LinkHandler) Add(c fiber.Ctx) error {
	var req dto.ShortenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"Invalid request format", "INVALID_REQUEST", nil))
	}

	if err := h.validator.Struct(req); err != nil {
		var details []string
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				details = append(details, getValidationErrorMessage(fieldError))
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"Validation failed", "VALIDATION_ERROR", details))
	}

	daysActive := 0
	if req.DaysActive != nil {
		daysActive = *req.DaysActive
	}

	ctx := h.createRequestContext(c, "/add")
	result, err := h.shortenFlow.Shorten(ctx, req.URL, req.Vanity, daysActive, businessflow.NewClientMetadata(ctx))
	if err != nil {
		return h.renderShortenError(c, err)
	}

	status := fiber.StatusCreated
	message := "Short link created"
	if result.AlreadyExists {
		status = fiber.StatusOK
		message = "URL was already shortened"
	}

	return c.Status(status).JSON(dto.SuccessResponse(message, dto.ShortenResponse{
		URL:     h.rootURL + result.Link.Segment,
		Segment: result.Link.Segment,
	}))
}

func (h *LinkHandler) renderShortenError(c fiber.Ctx, err error) error {
	switch {
	case businessflow.IsValidationError(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			err.Error(), "VALIDATION_ERROR", nil))
	case businessflow.IsTargetTimeout(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"The URL is not reachable (timeout)", "TARGET_TIMEOUT", nil))
	case businessflow.IsTargetUnreachable(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"The URL is not reachable", "TARGET_UNREACHABLE", nil))
	case businessflow.IsVanityTaken(err):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse(
			"That vanity URL is already taken", "VANITY_TAKEN", nil))
	case businessflow.IsRateLimited(err):
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse(
			"Rate limit exceeded. Try again later.", "RATE_LIMITED", nil))
	default:
		log.Println("Shorten failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"Failed to shorten URL", "INTERNAL_ERROR", nil))
	}
}

// Visit resolves a segment and redirects to the original URL
func (h *LinkHandler) Visit(c fiber.Ctx) error {
	segment := c.Params("segment")
	if segment == "" {
		return c.Status(fiber.StatusBadRequest).SendString("invalid short link")
	}

	ctx := h.createRequestContext(c, "/:segment")
	target, err := h.visitFlow.Visit(ctx, segment, businessflow.NewClientMetadata(ctx))
	if err != nil {
		switch {
		case businessflow.IsLinkNotFound(err):
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Status(fiber.StatusNotFound).SendString(notFoundPage)
		case businessflow.IsLinkExpired(err):
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Status(fiber.StatusGone).SendString(expiredPage)
		default:
			log.Println("Visit failed", err)
			return c.Status(fiber.StatusInternalServerError).SendString("internal error")
		}
	}

	c.Redirect().Status(fiber.StatusFound).To(target)
	return nil
}

// WhatIs describes the link behind a segment or full short URL
func (h *LinkHandler) WhatIs(c fiber.Ctx) error {
	segment := c.Params("segment")
	if segment == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"Segment is required", "INVALID_REQUEST", nil))
	}

	ctx := h.createRequestContext(c, "/whatis/:segment")
	link, err := h.lookupFlow.WhatIs(ctx, segment)
	if err != nil {
		if businessflow.IsLinkNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse(
				"Short link not found", "NOT_FOUND", nil))
		}
		log.Println("WhatIs failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"Failed to look up link", "INTERNAL_ERROR", nil))
	}

	return c.Status(fiber.StatusOK).JSON(dto.SuccessResponse("Short link found", dto.WhatIsResponse{
		URL:           link.OriginalURL,
		Segment:       link.Segment,
		ShortURL:      h.rootURL + link.Segment,
		Clicks:        link.ClickCount,
		Created:       utils.TimeSince(link.CreatedAt),
		Title:         link.Title,
		OGImage:       link.OGImage,
		OGDescription: link.OGDescription,
	}))
}

// ShortenPage serves the submission form
func (h *LinkHandler) ShortenPage(c fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(shortenPage)
}

func (h *LinkHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return h.createRequestContextWithTimeout(c, endpoint, 10*time.Second)
}

func (h *LinkHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.RefererKey, c.Get("Referer"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.TimeoutKey, timeout)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
