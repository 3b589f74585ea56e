package registry

// View is what the composer needs to draw one selection.
type View struct {
	Dataset     string
	Field       string
	Kind        Kind
	DisplayName string

	Descriptor Descriptor
}

// DistributionDataset is the table the distribution view counts.
func (v View) DistributionDataset() string {
	if v.Descriptor.Distribution != "" {
		return v.Descriptor.Distribution
	}
	return v.Dataset
}

// Select resolves label against r. It performs no I/O and keeps no state.
func Select(r *Registry, label string) (View, error) {
	d, err := r.Resolve(label)
	if err != nil {
		return View{}, err
	}
	return View{
		Dataset:     d.Dataset,
		Field:       d.Field,
		Kind:        d.Kind,
		DisplayName: d.DisplayName,
		Descriptor:  d,
	}, nil
}
