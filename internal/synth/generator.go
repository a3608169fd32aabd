// Package synth generates synthetic invoice records used to train the
// suggestion models. Labels are rule-derived rather than sampled so the
// trained estimators recover a known deterministic-plus-noise function.
package synth

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/billforge/billforge/internal/model"
)

// catalogItem is a billable service with a realistic hourly-rate range.
type catalogItem struct {
	name    string
	minRate int
	maxRate int
}

var catalog = map[string][]catalogItem{
	"Software Development": {
		{"Custom API Development", 150, 200},
		{"Frontend Development", 120, 180},
		{"Backend System Architecture", 180, 250},
		{"Database Design & Optimization", 160, 220},
	},
	"Cloud Services": {
		{"AWS Infrastructure Setup", 100, 150},
		{"Azure Migration Services", 120, 180},
		{"Cloud Security Configuration", 140, 200},
		{"Kubernetes Cluster Management", 150, 220},
	},
	"Cybersecurity": {
		{"Security Audit & Assessment", 200, 300},
		{"Penetration Testing", 180, 280},
		{"Security Policy Development", 150, 220},
		{"Incident Response Planning", 180, 250},
	},
	"IT Consulting": {
		{"Technology Strategy Planning", 180, 250},
		{"System Architecture Review", 160, 220},
		{"Digital Transformation Consulting", 200, 300},
		{"IT Infrastructure Assessment", 150, 200},
	},
}

var fallbackItem = catalogItem{"General IT Consulting", 100, 150}

// Generator produces synthetic invoice records from a seeded random stream.
type Generator struct {
	rng *rand.Rand
	now time.Time
	seq int
}

// New creates a generator. The same seed always yields the same records.
func New(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

// Generate returns n labeled invoice records. Writing them anywhere is the
// caller's concern.
func (g *Generator) Generate(n int) []model.InvoiceRecord {
	records := make([]model.InvoiceRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.Next())
	}
	return records
}

// Next returns the next record in the stream.
func (g *Generator) Next() model.InvoiceRecord {
	record := g.record(g.seq)
	g.seq++
	return record
}

func (g *Generator) record(i int) model.InvoiceRecord {
	category := model.ServiceCategories[g.rng.Intn(len(model.ServiceCategories))]
	industry := model.ClientIndustries[g.rng.Intn(len(model.ClientIndustries))]
	country := model.Countries[g.rng.Intn(len(model.Countries))]
	projectType := model.ProjectTypes[g.rng.Intn(len(model.ProjectTypes))]

	items := catalog[category]
	if len(items) == 0 {
		items = []catalogItem{fallbackItem}
	}

	numItems := g.rng.Intn(6) + 1
	var totalHours int
	var totalAmount float64
	for j := 0; j < numItems; j++ {
		item := items[g.rng.Intn(len(items))]
		hours := g.rng.Intn(91) + 10
		rate := g.rng.Intn(item.maxRate-item.minRate+1) + item.minRate
		totalHours += hours
		totalAmount += float64(hours * rate)
	}

	taxRate, _ := model.TaxRateForCountry(country)

	return model.InvoiceRecord{
		ID:              fmt.Sprintf("IT-%d", 2023000+i),
		ServiceCategory: category,
		ClientIndustry:  industry,
		Country:         country,
		ProjectType:     projectType,
		TotalAmount:     totalAmount,
		TotalHours:      totalHours,
		NumServices:     numItems,
		Discount:        g.discountLabel(totalAmount, industry),
		TaxRate:         taxRate,
		DocComplexity:   docComplexityLabel(totalAmount, category),
		PaymentTerms:    model.PaymentTermsFor(projectType),
		Timestamp:       g.now.AddDate(0, 0, -(g.rng.Intn(365) + 1)),
	}
}

// discountLabel applies the tiered discount rule with sampled noise inside
// each tier.
func (g *Generator) discountLabel(amount float64, industry string) float64 {
	switch {
	case amount > 20000:
		return round2(8 + g.rng.Float64()*7)
	case amount > 10000 && model.IsEnterpriseIndustry(industry):
		return round2(5 + g.rng.Float64()*7)
	default:
		return 0
	}
}

func docComplexityLabel(amount float64, category string) string {
	switch {
	case amount > 15000 || category == "Cybersecurity" || category == "System Integration":
		return model.DocHigh
	case amount > 8000:
		return model.DocMedium
	default:
		return model.DocLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
