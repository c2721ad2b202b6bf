package handlers

import (
	"html/template"
	"io"
	"strings"

	"cantrack/internal/domain"
	applog "cantrack/internal/log"
	"cantrack/internal/services"
	"cantrack/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const maxImageBytes = 5 << 20

type LibraryHandler struct {
	Cans   *services.LibraryService
	Images *services.ImageService
}

// libraryCard wraps an aggregate for the template. Resolved image URLs are
// either our own object-storage links or data URLs built server-side from
// the upload, so they bypass the template URL sanitizer (which would strip
// the data: scheme).
type libraryCard struct {
	domain.CanLibraryItem
	SafeImageURL template.URL
}

func (h *LibraryHandler) Library(c *fiber.Ctx) error {
	return h.renderLibrary(c, fiber.StatusOK, "")
}

// renderLibrary draws the library page, optionally with an inline form
// error; the submitted upload fields are echoed back into the form.
func (h *LibraryHandler) renderLibrary(c *fiber.Ctx, status int, errMsg string) error {
	uid := userID(c)

	items, err := h.Cans.CanLibrary(uid)
	if err != nil {
		applog.Error(c, "library.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your can library. Please retry."})
	}
	canTypes, err := h.Cans.ExistingCanTypes(uid)
	if err != nil {
		// The upload form just loses its suggestions.
		canTypes = nil
	}

	cards := make([]libraryCard, len(items))
	for i, it := range items {
		cards[i] = libraryCard{CanLibraryItem: it, SafeImageURL: template.URL(it.ImageURL)}
	}

	c.Status(status)
	return render(c, "library", fiber.Map{
		"Items":         cards,
		"CanTypes":      canTypes,
		"SeriesOptions": validSeries(),
		"Err":           errMsg,
		"Form": fiber.Map{
			"CanName": c.FormValue("can_name"),
			"Series":  c.FormValue("series"),
		},
	})
}

func (h *LibraryHandler) UploadImage(c *fiber.Ctx) error {
	uid := userID(c)

	name, ok := validate.Name(c.FormValue("can_name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "library.image", "field": "can_name"})
		return h.renderLibrary(c, fiber.StatusBadRequest, "Enter the can name")
	}
	series, ok := validate.Series(c.FormValue("series"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "library.image", "field": "series"})
		return h.renderLibrary(c, fiber.StatusBadRequest, "Pick a valid series")
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return h.renderLibrary(c, fiber.StatusBadRequest, "Choose an image file")
	}
	if fh.Size > maxImageBytes {
		return h.renderLibrary(c, fiber.StatusBadRequest, "Image is too large (5 MB max)")
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "library.image.read.fail", err, nil)
		return h.renderLibrary(c, fiber.StatusBadRequest, "Could not read the image file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		applog.Error(c, "library.image.read.fail", err, nil)
		return h.renderLibrary(c, fiber.StatusBadRequest, "Could not read the image file")
	}

	url, err := h.Images.SetImage(c.UserContext(), uid, name, series, fh.Filename, data)
	if err != nil {
		applog.Error(c, "library.image.set.fail", err, map[string]any{"can": name, "series": series})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not store the image. Please try again."})
	}

	applog.Audit(c, "library.image.set", map[string]any{"can": name, "series": series, "fallback": strings.HasPrefix(url, "data:")})
	return c.Redirect("/library")
}

func (h *LibraryHandler) RemoveImage(c *fiber.Ctx) error {
	uid := userID(c)

	name, ok := validate.Name(c.FormValue("can_name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "library.remove", "field": "can_name"})
		return h.renderLibrary(c, fiber.StatusBadRequest, "Enter the can name")
	}
	series, ok := validate.Series(c.FormValue("series"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "library.remove", "field": "series"})
		return h.renderLibrary(c, fiber.StatusBadRequest, "Pick a valid series")
	}

	if err := h.Images.Remove(uid, name, series); err != nil {
		applog.Error(c, "library.image.remove.fail", err, map[string]any{"can": name, "series": series})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not remove the image. Please try again."})
	}

	applog.Audit(c, "library.image.remove", map[string]any{"can": name, "series": series})
	return c.Redirect("/library")
}
