package handlers

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
}

const maxImageBytes = 10 * 1024 * 1024

func validateImageHeader(fh *multipart.FileHeader) error {
	if fh.Size == 0 || fh.Size > maxImageBytes {
		return fmt.Errorf("image %q exceeds the allowed size", fh.Filename)
	}
	if !allowedImageTypes[fh.Header.Get("Content-Type")] {
		return fmt.Errorf("image %q has an unsupported content type", fh.Filename)
	}
	return nil
}

type campgroundForm struct {
	Title       string
	Price       float64
	Description string
	Location    string
}

// parseCampgroundForm validates the posted fields. Messages are written
// for the user; they go back out verbatim through the flash channel.
func parseCampgroundForm(c interface {
	FormValue(key string, defaultValue ...string) string
}) (campgroundForm, []string) {
	var form campgroundForm
	var problems []string

	form.Title = strings.TrimSpace(c.FormValue("title"))
	if form.Title == "" {
		problems = append(problems, "Title is required")
	}
	form.Location = strings.TrimSpace(c.FormValue("location"))
	if form.Location == "" {
		problems = append(problems, "Location is required")
	}
	form.Description = strings.TrimSpace(c.FormValue("description"))

	priceRaw := c.FormValue("price")
	if priceRaw == "" {
		problems = append(problems, "Price is required")
	} else {
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil || price < 0 {
			problems = append(problems, "Price must be a non-negative number")
		} else {
			form.Price = price
		}
	}
	return form, problems
}

type reviewForm struct {
	Rating int
	Body   string
}

func parseReviewForm(c interface {
	FormValue(key string, defaultValue ...string) string
}) (reviewForm, []string) {
	var form reviewForm
	var problems []string

	form.Body = strings.TrimSpace(c.FormValue("body"))
	if form.Body == "" {
		problems = append(problems, "Review text is required")
	}
	rating, err := strconv.Atoi(c.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		problems = append(problems, "Rating must be between 1 and 5")
	} else {
		form.Rating = rating
	}
	return form, problems
}
