package compose

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/registry"
)

// Section IDs in page order.
const (
	SectionPrice        = "price"
	SectionAvailability = "availability"
	SectionComments     = "comments"
	SectionMap          = "map"
	SectionHistogram    = "histogram"
)

// ErrUnknownSection is returned for a section ID the page does not have.
var ErrUnknownSection = errors.New("unknown section")

var sectionOrder = []string{SectionPrice, SectionAvailability, SectionComments, SectionMap, SectionHistogram}

// Cloud IDs of the comment section.
const (
	CloudHigh = "high"
	CloudLow  = "low"
)

// Registries holds the registry of each explorer.
type Registries struct {
	Price        *registry.Registry
	Availability *registry.Registry
	Comments     *registry.Registry
}

// DefaultRegistries returns the built-in registries of the Berlin dashboard.
func DefaultRegistries() Registries {
	return Registries{
		Price:        registry.Price(),
		Availability: registry.Availability(),
		Comments:     registry.Comments(),
	}
}

// Dashboard renders pages from an immutable store. It is safe for concurrent use.
type Dashboard struct {
	store    *engine.Store
	regs     Registries
	composer *Composer
	log      logr.Logger
}

func NewDashboard(store *engine.Store, regs Registries, c *Composer, log logr.Logger) *Dashboard {
	return &Dashboard{store: store, regs: regs, composer: c, log: log.WithName("dashboard")}
}

// Validate checks every registry entry against the store.
func (d *Dashboard) Validate() error {
	for _, r := range []*registry.Registry{d.regs.Price, d.regs.Availability, d.regs.Comments} {
		if err := r.Validate(d.store); err != nil {
			return err
		}
	}
	return nil
}

// Store returns the store the dashboard reads.
func (d *Dashboard) Store() *engine.Store { return d.store }

// Explorers lists the selectbox choices and the guest counts of the slider.
func (d *Dashboard) Explorers() models.Explorers {
	ex := models.Explorers{
		Price:        d.regs.Price.Labels(),
		Availability: d.regs.Availability.Labels(),
		Comments:     d.regs.Comments.Labels(),
		Accommodates: []int{},
	}
	if t, ok := d.store.Table(engine.TableListings); ok {
		if acc := Accommodates(t); acc != nil {
			ex.Accommodates = acc
		}
	}
	return ex
}

// Render composes every section for sel. A failing section carries its error and
// does not affect the others.
func (d *Dashboard) Render(sel models.Selection) models.Page {
	page := models.Page{Sections: make([]models.Section, 0, len(sectionOrder))}
	for _, id := range sectionOrder {
		sec, err := d.Section(id, sel)
		if err != nil {
			d.log.Error(err, "section failed", "section", id)
			sec.View = nil
			sec.Error = err.Error()
		}
		page.Sections = append(page.Sections, sec)
	}
	return page
}

// Section composes one section. The returned section always carries its header, even
// with an error.
func (d *Dashboard) Section(id string, sel models.Selection) (models.Section, error) {
	switch id {
	case SectionPrice:
		return d.explore(models.Section{
			ID:     id,
			Title:  "Price",
			Prompt: "Explore Price By ",
		}, d.regs.Price, sel.Price, func(v registry.View) (models.View, error) {
			trend, err := d.table(v.Dataset)
			if err != nil {
				return models.View{}, err
			}
			dist, err := d.table(v.DistributionDataset())
			if err != nil {
				return models.View{}, err
			}
			return d.composer.TrendDistribution(prepare(trend, v), prepare(dist, v), v.Field, v.DisplayName, sel.Highlight)
		})

	case SectionAvailability:
		return d.explore(models.Section{
			ID:     id,
			Title:  "Availability",
			Prompt: "Explore Availability in 90 Days By ",
		}, d.regs.Availability, sel.Availability, func(v registry.View) (models.View, error) {
			t, err := d.table(v.Dataset)
			if err != nil {
				return models.View{}, err
			}
			return d.composer.LinkedDetailScatter(prepare(t, v), v.Field, v.DisplayName, v.Kind, sel.Brush)
		})

	case SectionComments:
		return d.explore(models.Section{
			ID:     id,
			Title:  "What Customers Say",
			Prompt: "Look at What Customers Say for Airbnb By Room's ",
		}, d.regs.Comments, sel.Comments, func(v registry.View) (models.View, error) {
			view := models.View{Strategy: models.StrategyTermFrequency}
			for _, g := range []struct {
				id    string
				group registry.TermGroup
			}{{CloudHigh, v.Descriptor.High}, {CloudLow, v.Descriptor.Low}} {
				tf, ok := d.store.Terms(g.group.Terms)
				if !ok {
					return models.View{}, errors.Errorf("no term frequencies %q", g.group.Terms)
				}
				view.Clouds = append(view.Clouds, d.composer.TermFrequency(g.id, g.group.Caption, tf))
			}
			return view, nil
		})

	case SectionMap, SectionHistogram:
		sec := models.Section{ID: id, Title: "Listings"}
		compose := d.composer.Map
		if id == SectionHistogram {
			sec.Title = "Price Distribution"
			compose = d.composer.Histogram
		}
		if sel.Accommodates != nil {
			sec.Label = fmt.Sprint(*sel.Accommodates)
		}
		listings, err := d.table(engine.TableListings)
		if err != nil {
			return sec, err
		}
		view, err := compose(listings, sel.Accommodates)
		if err != nil {
			return sec, err
		}
		sec.View = &view
		return sec, nil
	}
	return models.Section{ID: id}, errors.Wrap(ErrUnknownSection, id)
}

// explore resolves label against r and composes the resulting view. An empty label
// selects the first choice.
func (d *Dashboard) explore(sec models.Section, r *registry.Registry, label string, compose func(registry.View) (models.View, error)) (models.Section, error) {
	sec.Choices = r.Labels()
	if label == "" && len(sec.Choices) > 0 {
		label = sec.Choices[0]
	}
	sec.Label = label

	v, err := registry.Select(r, label)
	if err != nil {
		return sec, err
	}
	view, err := compose(v)
	if err != nil {
		return sec, errors.Wrapf(err, "%s by %s", sec.Title, label)
	}
	sec.View = &view
	return sec, nil
}

func (d *Dashboard) table(name string) (*engine.Table, error) {
	t, ok := d.store.Table(name)
	if !ok {
		return nil, errors.Errorf("no dataset %q", name)
	}
	return t, nil
}

// prepare drops rows without a value of the selected field when the field is
// categorical or the descriptor asks for it.
func prepare(t *engine.Table, v registry.View) *engine.Table {
	if v.Kind == registry.Categorical || v.Descriptor.DropMissing {
		return t.DropMissing(v.Field)
	}
	return t
}
