package compose

import (
	"errors"
	"testing"

	"github.com/go-logr/logr"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/registry"
	"dashboard/internal/testutils"
)

func newDashboard(regs Registries) *Dashboard {
	return NewDashboard(testutils.Store(), regs, newComposer(), logr.Discard())
}

func section(t *testing.T, p models.Page, id string) models.Section {
	t.Helper()
	for _, s := range p.Sections {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("Expected section %q", id)
	return models.Section{}
}

func TestRenderDefaults(t *testing.T) {
	// 1. Setup
	d := newDashboard(DefaultRegistries())
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// 2. Run
	page := d.Render(models.Selection{})

	// 3. Assertions
	if len(page.Sections) != 5 {
		t.Fatalf("Expected 5 sections, got %d", len(page.Sections))
	}
	for _, s := range page.Sections {
		if s.Error != "" || s.View == nil {
			t.Errorf("Section %s: error %q", s.ID, s.Error)
		}
	}
	price := section(t, page, SectionPrice)
	if price.Label != "Superhost" {
		t.Errorf("Expected the first choice by default, got %q", price.Label)
	}
	if len(section(t, page, SectionComments).View.Clouds) != 2 {
		t.Error("Expected two word clouds")
	}
}

func TestRenderEveryChoice(t *testing.T) {
	d := newDashboard(DefaultRegistries())
	for _, label := range registry.PriceChoices {
		if _, err := d.Section(SectionPrice, models.Selection{Price: label}); err != nil {
			t.Errorf("Price by %s: %v", label, err)
		}
	}
	for _, label := range registry.AvailabilityChoices {
		if _, err := d.Section(SectionAvailability, models.Selection{Availability: label}); err != nil {
			t.Errorf("Availability by %s: %v", label, err)
		}
	}
	for _, label := range registry.CommentChoices {
		if _, err := d.Section(SectionComments, models.Selection{Comments: label}); err != nil {
			t.Errorf("Comments by %s: %v", label, err)
		}
	}
}

func TestRenderUnknownLabel(t *testing.T) {
	d := newDashboard(DefaultRegistries())

	page := d.Render(models.Selection{Price: "Color"})

	price := section(t, page, SectionPrice)
	if price.Error == "" || price.View != nil {
		t.Errorf("Expected an error region, got %+v", price)
	}
	if section(t, page, SectionAvailability).Error != "" {
		t.Error("Other sections should still render")
	}

	_, err := d.Section(SectionPrice, models.Selection{Price: "Color"})
	var unknown *registry.UnknownDimensionError
	if !errors.As(err, &unknown) {
		t.Errorf("Expected UnknownDimensionError, got %v", err)
	}
}

func TestRenderDropsMissingCategories(t *testing.T) {
	d := newDashboard(DefaultRegistries())

	sec, err := d.Section(SectionAvailability, models.Selection{Availability: "Host Response Time"})
	if err != nil {
		t.Fatalf("Section failed: %v", err)
	}
	if sec.View.Stats.Rows != 3 {
		t.Errorf("Expected the NA row dropped, got %d rows", sec.View.Stats.Rows)
	}
}

func TestRenderDriftedRegistry(t *testing.T) {
	regs := DefaultRegistries()
	regs.Price = registry.MustNew(registry.ExplorerPrice, registry.Descriptor{
		Label: "Superhost", Dataset: "missing_table", Field: "host_is_superhost", DisplayName: "Superhost",
	})
	d := newDashboard(regs)

	if err := d.Validate(); err == nil {
		t.Error("Expected Validate to report the drift")
	}
	if section(t, d.Render(models.Selection{}), SectionPrice).Error == "" {
		t.Error("Expected an error region for the drifted section")
	}
}

func TestRenderEmptyDataset(t *testing.T) {
	store := engine.NewStore([]*engine.Table{
		testutils.Trend(engine.TablePriceSuperhost, "host_is_superhost"),
		testutils.Listings().Where(func(int) bool { return false }),
	}, nil)
	d := NewDashboard(store, DefaultRegistries(), newComposer(), logr.Discard())

	sec, err := d.Section(SectionPrice, models.Selection{})
	if err != nil {
		t.Fatalf("Empty dataset should not fail, got %v", err)
	}
	if sec.View.Charts[0].Mark != models.MarkPlaceholder {
		t.Errorf("Expected placeholder, got %s", sec.View.Charts[0].Mark)
	}
}

func TestRenderHeaderOnlyTable(t *testing.T) {
	// 1. Setup
	header := []string{"date", "price", "beds"}
	beds := engine.NewTable(engine.TablePriceBeds, "price_beds.csv", header, make([][]string, len(header)))
	store := engine.NewStore([]*engine.Table{testutils.Listings(), beds}, nil)
	d := NewDashboard(store, DefaultRegistries(), newComposer(), logr.Discard())

	// 2. Run
	sec, err := d.Section(SectionPrice, models.Selection{Price: "Number of Beds"})

	// 3. Assertions
	if err != nil {
		t.Fatalf("Header-only table should not fail, got %v", err)
	}
	if sec.Label != "Number of Beds" || sec.View == nil {
		t.Fatalf("Unexpected section %+v", sec)
	}
	for _, c := range sec.View.Charts {
		if c.Mark != models.MarkPlaceholder || c.Message == "" {
			t.Errorf("Chart %s: expected a placeholder, got %s", c.ID, c.Mark)
		}
	}
}

func TestExplorers(t *testing.T) {
	ex := newDashboard(DefaultRegistries()).Explorers()
	if len(ex.Price) != len(registry.PriceChoices) || len(ex.Accommodates) != 2 {
		t.Errorf("Unexpected explorers %+v", ex)
	}
}

func TestUnknownSection(t *testing.T) {
	_, err := newDashboard(DefaultRegistries()).Section("reviews", models.Selection{})
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("Expected ErrUnknownSection, got %v", err)
	}
}
