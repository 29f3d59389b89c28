package recommend

import "datasight/domain/chart"

// template is the per-chart-type generator: the descriptive text every
// recommendation of that type starts from
type template struct {
	title            string
	description      string
	bestFor          []string
	dataRequirements []string
	example          string
}

var templates = map[chart.Type]template{
	chart.Bar: {
		title:            "Bar Chart",
		description:      "Compares values across discrete categories with rectangular bars.",
		bestFor:          []string{"Category comparison", "Ranking", "Part-to-part comparison"},
		dataRequirements: []string{"One categorical column", "One numeric column"},
		example:          "Sales by product line",
	},
	chart.Line: {
		title:            "Line Chart",
		description:      "Connects data points in time order to show how values change.",
		bestFor:          []string{"Trends over time", "Forecast review", "Seasonality"},
		dataRequirements: []string{"One date column", "At least one numeric column"},
		example:          "Monthly revenue over the last two years",
	},
	chart.Pie: {
		title:            "Pie Chart",
		description:      "Shows each category as a slice of the whole.",
		bestFor:          []string{"Share of total", "Composition with few categories"},
		dataRequirements: []string{"One categorical column", "One non-negative numeric column"},
		example:          "Market share by vendor",
	},
	chart.Doughnut: {
		title:            "Doughnut Chart",
		description:      "A pie chart with a hollow center that can carry a headline figure.",
		bestFor:          []string{"Share of total", "Dashboards with a central KPI"},
		dataRequirements: []string{"One categorical column", "One non-negative numeric column"},
		example:          "Budget allocation with total spend in the center",
	},
	chart.PolarArea: {
		title:            "Polar Area Chart",
		description:      "Equal-angle segments whose radius encodes magnitude per category.",
		bestFor:          []string{"Magnitude by category", "Cyclic categories"},
		dataRequirements: []string{"One categorical column", "One numeric column"},
		example:          "Support tickets by weekday",
	},
	chart.Radar: {
		title:            "Radar Chart",
		description:      "Plots several metrics on axes radiating from a common center.",
		bestFor:          []string{"Multi-metric comparison", "Profile comparison"},
		dataRequirements: []string{"One categorical column", "Three or more columns"},
		example:          "Product scores across price, quality and support",
	},
	chart.Scatter: {
		title:            "Scatter Plot",
		description:      "Places each row as a point on two numeric axes.",
		bestFor:          []string{"Correlation", "Clusters", "Outliers"},
		dataRequirements: []string{"Two numeric columns"},
		example:          "Advertising spend against revenue",
	},
	chart.Bubble: {
		title:            "Bubble Chart",
		description:      "A scatter plot whose point size encodes a third measure.",
		bestFor:          []string{"Three-variable comparison", "Weighted correlation"},
		dataRequirements: []string{"Two or three numeric columns"},
		example:          "Countries by GDP, life expectancy and population",
	},
	chart.Area: {
		title:            "Area Chart",
		description:      "A line chart with the region below filled to emphasise volume.",
		bestFor:          []string{"Cumulative totals", "Volume over time"},
		dataRequirements: []string{"One date column", "At least one numeric column"},
		example:          "Active users accumulated per week",
	},
	chart.Funnel: {
		title:            "Funnel Chart",
		description:      "Shows how a quantity shrinks through successive stages.",
		bestFor:          []string{"Conversion stages", "Pipeline drop-off"},
		dataRequirements: []string{"One ordered categorical column", "One numeric column"},
		example:          "Visitors to sign-ups to paying customers",
	},
	chart.Waterfall: {
		title:            "Waterfall Chart",
		description:      "Builds a running total from sequential positive and negative contributions.",
		bestFor:          []string{"Cumulative effect", "Variance explanation"},
		dataRequirements: []string{"One ordered categorical column", "One numeric column"},
		example:          "Profit bridge from revenue to net income",
	},
	chart.Heatmap: {
		title:            "Heatmap",
		description:      "Colors a grid of cells by value to reveal dense patterns.",
		bestFor:          []string{"Dense pattern detection", "Two-way category comparison"},
		dataRequirements: []string{"Categorical columns", "One numeric column", "More than 100 rows"},
		example:          "Orders by region and hour of day",
	},
}
