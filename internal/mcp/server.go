package mcp

import (
	"context"

	"winelens/internal/config"
	"winelens/internal/wine"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes the filter and aggregation engine as MCP tools. Its
// only state is the immutable dataset and the configuration; every tool
// call recomputes from scratch, so there are no sessions and nothing to
// lock.
type Server struct {
	MCPServer *sdkmcp.Server

	ds  *wine.Dataset
	cfg *config.AppConfig
}

// NewServer creates the MCP server over an already loaded dataset.
func NewServer(ds *wine.Dataset, cfg *config.AppConfig) *Server {
	s := &Server{ds: ds, cfg: cfg}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "winelens", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves the stdio transport until the client disconnects or the
// context is canceled.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Int("rows", len(s.ds.Records)).Msg("MCP server starting stdio loop")
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "describe_dataset",
		Description: "Describe the loaded wine catalog: row and column counts, distinct countries/regions/grapes, price and rating extremes.",
	}, s.handleDescribeDataset)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_options",
		Description: "List the cascading filter options: all countries, the regions available under the selected countries, and the grapes available under the selected countries and regions. Omit a selection to mean 'all'.",
	}, s.handleListOptions)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "filter_wines",
		Description: "Apply a filter to the catalog and return the match count plus a bounded row preview. Omitted selections mean 'all'; an explicitly empty selection matches nothing. focus=true applies the France/Burgundy/Pinot Noir drill-down (numeric bounds still apply).",
	}, s.handleFilterWines)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "rank_countries",
		Description: "Rank countries over the full catalog, by record count or by average price.",
		InputSchema: rankCountriesSchema,
	}, s.handleRankCountries)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "price_summary",
		Description: "Summarize the prices of the rows matching a filter: count, mean, sample standard deviation, min/max and interpolated percentiles (25/50/75/90 by default).",
	}, s.handlePriceSummary)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "distribution",
		Description: "Histogram of the filtered rows. field=price bins on a log10 price domain (50 bins default, non-positive prices excluded); field=rating bins linearly (20 bins default).",
	}, s.handleDistribution)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "rating_boxes",
		Description: "Box-plot statistics (quartiles, 1.5 IQR whiskers, outliers) of ratings per country, for the top countries by record count.",
	}, s.handleRatingBoxes)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "map_country_prices",
		Description: "Mean price per country over the full catalog, the aggregate behind the world map. Countries without a priced row are absent.",
	}, s.handleMapCountryPrices)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "export_filtered",
		Description: "Write the rows matching a filter to a CSV file, or to a zip archive when the name ends in .zip. Returns the written path and row count.",
	}, s.handleExportFiltered)
}

// rankCountriesSchema is spelled out by hand for the enum on "by"; the
// other tools rely on schema inference from their input structs.
var rankCountriesSchema = &jsonschema.Schema{
	Type: "object",
	Properties: map[string]*jsonschema.Schema{
		"by": {
			Type:        "string",
			Enum:        []any{"count", "avg_price"},
			Description: "ranking key",
		},
		"top": {
			Type:        "integer",
			Description: "maximum entries to return (default 10)",
		},
	},
	Required: []string{"by"},
}
