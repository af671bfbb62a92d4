package atlas

import "github.com/AdaptationAtlas/data-management/internal/catalog"

// RootCatalog constructs the Atlas theme hierarchy: a root catalog with one
// child catalog per theme. The tree is caller-owned; every call returns a
// fresh copy.
func RootCatalog() *catalog.Catalog {
	root := catalog.New(
		"adaptation-atlas",
		"Africa Agriculture Adaptation Atlas Catalog",
		"The Agriculture Adaptation Atlas uses a SpatioTemporal Asset Catalog (STAC) "+
			"to share critical data and data stories for decision-makers. STAC metadata "+
			"and cloud-optimized formats keep the data accessible, searchable, and "+
			"interoperable with geospatial tools across programming languages.",
	)

	root.AddLink(catalog.Link{
		Rel:       "related",
		Href:      "https://adaptationatlas.cgiar.org/",
		Title:     "Africa Agriculture Adaptation Atlas Website",
		MediaType: "text/html",
	})

	themes := []struct {
		id, title, description string
	}{
		{"boundaries", "Boundaries",
			"Datasets defining geographic boundaries used in the Adaptation Atlas, " +
				"including watersheds, administrative areas, and other spatial units."},
		{"exposure", "Exposure",
			"Datasets representing the presence or distribution of people, assets, or " +
				"systems that could be affected by climate-related hazards."},
		{"socio-economic", "Socio-Economic",
			"Socio-economic indicators relevant to climate vulnerability and adaptive " +
				"capacity, including poverty, livelihoods, and readiness."},
		{"impacts", "Impacts",
			"Datasets quantifying the impacts of climate change on key systems, " +
				"including changes in crop suitability, yields, and pest and disease risks."},
		{"solutions", "Solutions",
			"Datasets highlighting adaptation solutions to climate risks, their spatial " +
				"suitability, and projected outcomes under different strategies."},
		{"phenology", "Phenology",
			"Datasets describing the timing and duration of seasonal agricultural " +
				"events: start and end of season, season length, and crop calendars."},
		{"hazard-exposure", "Hazard Exposure",
			"Historical and projected exposure of crops, livestock, and people to " +
				"climate hazards such as drought, waterlogging, and heat stress."},
		{"climate", "Climate",
			"Climate datasets used in the Adaptation Atlas: historical observations and " +
				"future projections of hazards and underlying variables."},
	}

	for _, theme := range themes {
		root.AddChild(catalog.New(theme.id, theme.title, theme.description))
	}

	return root
}
