package handlers

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/url"
	"time"

	businessflow "github.com/pabst/shortener/business_flow"

	"github.com/gofiber/fiber/v3"
	"github.com/pabst/shortener/app/dto"
	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/utils"
)

// StatsHandlerInterface defines the contract for the stats endpoints
type StatsHandlerInterface interface {
	Page(c fiber.Ctx) error
	JSON(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

type StatsHandler struct {
	flow    businessflow.StatsFlow
	rootURL string
}

func NewStatsHandler(flow businessflow.StatsFlow, rootURL string) StatsHandlerInterface {
	return &StatsHandler{flow: flow, rootURL: rootURL}
}

var statsTemplate = template.Must(template.New("stats").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>URL Shortener Stats</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 2rem; background: #111; color: #e0e0e0; }
    .header h1 { font-weight: 700; font-size: 2.2rem; margin: 0; }
    .header .subtitle { font-size: 1rem; color: #777; margin-top: 0.25rem; }
    nav { margin-bottom: 1rem; }
    nav a { color: #00cc88; text-decoration: none; }
    .header { margin-bottom: 1.5rem; }
    table { border-collapse: collapse; width: 100%; background: #1a1a1a; }
    th, td { padding: 0.75rem 1rem; text-align: left; border-bottom: 1px solid #333; }
    th { background: #222; font-weight: 600; }
    td a { color: #00cc88; text-decoration: none; word-break: break-all; }
    td:nth-child(4) { text-align: center; }
    .empty { text-align: center; padding: 2rem; color: #777; }
  </style>
</head>
<body>
  <nav><a href="/shorten">&rarr; Shorten an URL</a></nav>
  <div class="header">
    <h1>{{.Hostname}}</h1>
    <div class="subtitle">url shortener stats</div>
  </div>
  <table>
    <thead>
      <tr>
        <th>Original URL</th>
        <th>Title</th>
        <th>Short Link</th>
        <th>Clicks</th>
        <th>Created</th>
        <th>Last Clicked</th>
        <th>Expires</th>
      </tr>
    </thead>
    <tbody>
      {{if not .Rows}}<tr><td colspan="7" class="empty">No URLs yet</td></tr>{{end}}
      {{range .Rows}}<tr>
        <td><a href="{{.URL}}" target="_blank" rel="noopener">{{.URL}}</a></td>
        <td>{{if .Title}}{{.Title}}{{else}}<em>Untitled</em>{{end}}</td>
        <td><a href="{{.ShortURL}}" target="_blank" rel="noopener">{{.Segment}}</a></td>
        <td>{{.ClickCount}}</td>
        <td>{{.CreatedAt}}</td>
        <td>{{.LastClickedAt}}</td>
        <td>{{if .ExpiresAt}}{{.ExpiresAt}}{{else}}Never{{end}}</td>
      </tr>{{end}}
    </tbody>
  </table>
</body>
</html>`))

type statsPageData struct {
	Hostname string
	Rows     []dto.LinkStatsDTO
}

// Page renders the stats listing as HTML
func (h *StatsHandler) Page(c fiber.Ctx) error {
	rows, err := h.flow.List(h.createRequestContext(c, "/stats"))
	if err != nil {
		log.Println("Stats page failed", err)
		return c.Status(fiber.StatusInternalServerError).SendString("internal error")
	}

	hostname := h.rootURL
	if parsed, err := url.Parse(h.rootURL); err == nil && parsed.Hostname() != "" {
		hostname = parsed.Hostname()
	}

	data := statsPageData{
		Hostname: hostname,
		Rows:     h.toDTOs(rows),
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return statsTemplate.Execute(c.Response().BodyWriter(), data)
}

// JSON returns the stats listing as JSON
func (h *StatsHandler) JSON(c fiber.Ctx) error {
	rows, err := h.flow.List(h.createRequestContext(c, "/stats/json"))
	if err != nil {
		log.Println("Stats json failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"Failed to load stats", "INTERNAL_ERROR", nil))
	}

	return c.Status(fiber.StatusOK).JSON(h.toDTOs(rows))
}

// Export downloads the stats listing as an xlsx workbook
func (h *StatsHandler) Export(c fiber.Ctx) error {
	payload, err := h.flow.ExportExcel(h.createRequestContext(c, "/stats/export"))
	if err != nil {
		log.Println("Stats export failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"Failed to export stats", "INTERNAL_ERROR", nil))
	}

	filename := fmt.Sprintf("links-%s.xlsx", utils.UTCNow().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(payload)
}

func (h *StatsHandler) toDTOs(rows []*models.LinkStats) []dto.LinkStatsDTO {
	out := make([]dto.LinkStatsDTO, 0, len(rows))
	for _, row := range rows {
		item := dto.LinkStatsDTO{
			URL:           row.OriginalURL,
			Title:         row.Title,
			Segment:       row.Segment,
			ShortURL:      h.rootURL + row.Segment,
			ClickCount:    row.ClickCount,
			CreatedAt:     utils.FormatDate(row.CreatedAt),
			LastClickedAt: utils.FormatDatePtr(row.LastClickedAt),
		}
		if row.ExpiresAt != nil {
			item.ExpiresAt = utils.ToPtr(utils.FormatDate(*row.ExpiresAt))
		}
		out = append(out, item)
	}
	return out
}

func (h *StatsHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	ctx = context.WithValue(ctx, utils.RequestIDKey, c.Get("X-Request-ID"))
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = context.WithValue(ctx, utils.CancelFuncKey, cancel)
	return ctx
}
