package handlers

import (
	"strconv"
	"strings"

	"cantrack/internal/domain"
	applog "cantrack/internal/log"
	"cantrack/internal/repos"
	"cantrack/internal/services"
	"cantrack/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type DrinkHandler struct {
	Drinks *services.DrinkService
}

func (h *DrinkHandler) List(c *fiber.Ctx) error {
	uid := userID(c)

	var f repos.DrinkFilters
	if raw := strings.TrimSpace(c.Query("q")); raw != "" {
		q, ok := validate.Q(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": raw})
			return c.Status(400).Render("drinks", listPageData(nil, "", "", 1, "Enter a valid search keyword"))
		}
		f.Search = q
	}
	if raw := strings.TrimSpace(c.Query("series")); raw != "" {
		s, ok := validate.Series(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "series"})
			return c.Status(400).Render("drinks", listPageData(nil, "", "", 1, "Invalid series filter"))
		}
		f.Series = s
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, ok := validate.DateBound(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "from"})
			return c.Status(400).Render("drinks", listPageData(nil, "", "", 1, "Enter dates as YYYY-MM-DD"))
		}
		f.DateFrom = from
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, ok := validate.DateBound(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "to"})
			return c.Status(400).Render("drinks", listPageData(nil, "", "", 1, "Enter dates as YYYY-MM-DD"))
		}
		// Date-only upper bound still covers that whole day.
		if len(to) == len("2006-01-02") {
			to += "T23:59:59Z"
		}
		f.DateTo = to
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	drinks, err := h.Drinks.List(uid, f, page, 20)
	if err != nil {
		applog.Error(c, "drinks.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your drinks. Please retry."})
	}

	return render(c, "drinks", listPageData(drinks, f.Search, f.Series, page, ""))
}

// listPageData fills every key the drinks template touches, so error
// renders cannot trip over missing fields.
func listPageData(drinks []domain.Drink, q, series string, page int, errMsg string) fiber.Map {
	return fiber.Map{
		"Drinks": drinks,
		"Series": validSeries(),
		"Q":      q, "SeriesFilter": series,
		"Page": page, "NextPage": page + 1, "PrevPage": page - 1,
		"Err": errMsg,
	}
}

func (h *DrinkHandler) NewForm(c *fiber.Ctx) error {
	return render(c, "drink_form", fiber.Map{
		"Action": "/drinks", "Series": validSeries(),
		"Form": fiber.Map{
			"Name": "", "Series": "", "VolumeML": "", "Cost": "",
			"Rating": "", "Notes": "", "CreatedAt": "",
		},
	})
}

func (h *DrinkHandler) Create(c *fiber.Ctx) error {
	uid := userID(c)
	in, echo, errMsg := parseDrinkForm(c)
	if errMsg != "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "drink"})
		return c.Status(400).Render("drink_form", fiber.Map{
			"Action": "/drinks", "Series": validSeries(), "Form": echo, "Err": errMsg,
			"CSRFToken": c.Cookies("csrf_"),
		})
	}

	d, err := h.Drinks.Create(uid, in)
	if err != nil {
		applog.Error(c, "drinks.create.fail", err, nil)
		return c.Status(500).Render("drink_form", fiber.Map{
			"Action": "/drinks", "Series": validSeries(), "Form": echo,
			"Err": "Could not save the drink. Please try again.", "CSRFToken": c.Cookies("csrf_"),
		})
	}

	applog.Audit(c, "drinks.create", map[string]any{"drink": d.ID, "name": d.Name})
	return c.Redirect("/drinks")
}

func (h *DrinkHandler) EditForm(c *fiber.Ctx) error {
	uid := userID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Drink not found"})
	}
	d, err := h.Drinks.Get(uid, id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Drink not found"})
	}
	return render(c, "drink_form", fiber.Map{
		"Action": "/drinks/" + d.ID, "Series": validSeries(),
		"Form": fiber.Map{
			"Name": d.Name, "Series": d.Series, "VolumeML": strconv.Itoa(d.VolumeML),
			"Cost":   strconv.FormatFloat(d.Cost, 'f', 2, 64),
			"Rating": strconv.Itoa(d.Rating), "Notes": d.Notes, "CreatedAt": d.CreatedAt,
		},
	})
}

func (h *DrinkHandler) Update(c *fiber.Ctx) error {
	uid := userID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Drink not found"})
	}
	in, echo, errMsg := parseDrinkForm(c)
	if errMsg != "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "drink", "id": id})
		return c.Status(400).Render("drink_form", fiber.Map{
			"Action": "/drinks/" + id, "Series": validSeries(), "Form": echo, "Err": errMsg,
			"CSRFToken": c.Cookies("csrf_"),
		})
	}

	if _, err := h.Drinks.Update(uid, id, in); err != nil {
		applog.Error(c, "drinks.update.fail", err, map[string]any{"drink": id})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Drink not found"})
	}

	applog.Audit(c, "drinks.update", map[string]any{"drink": id})
	return c.Redirect("/drinks")
}

func (h *DrinkHandler) Delete(c *fiber.Ctx) error {
	uid := userID(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Drink not found"})
	}
	if err := h.Drinks.Delete(uid, id); err != nil {
		applog.Error(c, "drinks.delete.fail", err, map[string]any{"drink": id})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Drink not found"})
	}
	applog.Audit(c, "drinks.delete", map[string]any{"drink": id})
	return c.Redirect("/drinks")
}

func validSeries() []string {
	return append([]string(nil), domain.AllSeries...)
}

// parseDrinkForm validates every field and returns the input plus an echo
// map of the raw submission for re-rendering the form with inline errors.
func parseDrinkForm(c *fiber.Ctx) (services.DrinkInput, fiber.Map, string) {
	raw := fiber.Map{
		"Name":      c.FormValue("name"),
		"Series":    c.FormValue("series"),
		"VolumeML":  c.FormValue("volume_ml"),
		"Cost":      c.FormValue("cost"),
		"Rating":    c.FormValue("rating"),
		"Notes":     c.FormValue("notes"),
		"CreatedAt": c.FormValue("created_at"),
	}

	var in services.DrinkInput
	var ok bool
	if in.Name, ok = validate.Name(c.FormValue("name")); !ok {
		return in, raw, "Enter the drink name"
	}
	if in.Series, ok = validate.Series(c.FormValue("series")); !ok {
		return in, raw, "Pick a valid series"
	}
	if in.VolumeML, ok = validate.Volume(c.FormValue("volume_ml")); !ok {
		return in, raw, "Volume must be a positive number of milliliters"
	}
	if in.Cost, ok = validate.Cost(c.FormValue("cost")); !ok {
		return in, raw, "Cost must be zero or a positive amount"
	}
	if in.Rating, ok = validate.Rating(c.FormValue("rating")); !ok {
		return in, raw, "Rating must be between 1 and 5"
	}
	in.Notes = validate.Notes(c.FormValue("notes"))
	if in.CreatedAt, ok = validate.Timestamp(c.FormValue("created_at")); !ok {
		return in, raw, "Purchase time must be a valid date and time"
	}
	return in, raw, ""
}
