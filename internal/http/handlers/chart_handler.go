package handlers

import (
	"encoding/json"
	"html/template"

	applog "cantrack/internal/log"
	"cantrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ChartHandler struct {
	Drinks *services.DrinkService
}

// Dashboard shows the summary stats and the most recent purchases.
func (h *ChartHandler) Dashboard(c *fiber.Ctx) error {
	uid := userID(c)

	stats, err := h.Drinks.Stats(uid)
	if err != nil {
		// Degrade to zero stats rather than failing the page.
		applog.Error(c, "dashboard.stats.fail", err, nil)
	}
	recent, err := h.Drinks.Recent(uid, 5)
	if err != nil {
		applog.Error(c, "dashboard.recent.fail", err, nil)
		recent = nil
	}

	return render(c, "dashboard", fiber.Map{
		"Stats":  stats,
		"Recent": recent,
	})
}

// Charts renders the charts page with all five transform payloads embedded
// as JSON for the client-side renderer.
func (h *ChartHandler) Charts(c *fiber.Ctx) error {
	uid := userID(c)

	drinks, err := h.Drinks.All(uid)
	if err != nil {
		applog.Error(c, "charts.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load chart data. Please retry."})
	}

	spending := services.SpendingOverTime(drinks)

	return render(c, "charts", fiber.Map{
		"Spending":   chartJSON(spending),
		"BySeries":   chartJSON(services.DrinksBySeries(drinks)),
		"Ratings":    chartJSON(services.RatingDistribution(drinks)),
		"ByDay":      chartJSON(services.DrinksByDayOfWeek(drinks)),
		"Cumulative": chartJSON(services.CumulativeTotalCans(drinks)),
		"Count":      len(drinks),
	})
}

func chartJSON(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}
