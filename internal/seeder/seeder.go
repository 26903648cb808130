// Package seeder generates tagged sample data for local development. Every
// generated row carries the seed source tag so cleanup can find it again.
package seeder

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// SeedTag marks rows created by the seeder; cleanup filters on it.
const SeedTag = "local:seed"

// ServiceTypes returns the canonical service type rows.
func ServiceTypes() []map[string]any {
	return []map[string]any{
		{"slug": "routine", "name": "Routine Care"},
		{"slug": "deep-clean", "name": "Deep Clean"},
		{"slug": "move", "name": "Move In / Move Out"},
		{"slug": "commercial", "name": "Commercial"},
	}
}

var serviceTypeSlugs = []string{"routine", "deep-clean", "move", "commercial"}

// Inquiries generates n fake inquiry rows ready for the data API.
func Inquiries(n int) []map[string]any {
	rows := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		name := gofakeit.Name()
		rows = append(rows, map[string]any{
			"full_name":          name,
			"email":              gofakeit.Email(),
			"phone":              fmt.Sprintf("+1%d", gofakeit.Number(2000000000, 9999999999)),
			"message":            gofakeit.Paragraph(1, 3, 12, " "),
			"service_type_id":    nil,
			"preferred_schedule": nil,
			"status":             "new",
			"source":             SeedTag,
			"form_id":            uuid.New().String(),
			"utm":                map[string]string{"utm_source": "seed-script"},
			"metadata": map[string]any{
				"company":    gofakeit.Company(),
				"created_by": SeedTag,
				"service":    gofakeit.RandomString(serviceTypeSlugs),
			},
		})
	}
	return rows
}

// NewsletterSignups generates n fake newsletter signup rows.
func NewsletterSignups(n int) []map[string]any {
	rows := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, map[string]any{
			"email":     gofakeit.Email(),
			"full_name": gofakeit.Name(),
			"source":    SeedTag,
			"form_id":   uuid.New().String(),
			"tags":      []string{"seed", gofakeit.RandomString([]string{"ops", "launch", "blog"})},
			"utm":       map[string]string{"utm_source": "seed-script"},
			"metadata":  map[string]any{"created_by": SeedTag},
		})
	}
	return rows
}
