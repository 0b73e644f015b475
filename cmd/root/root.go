// Package root contains the root command for the application
package root

import (
	"time"

	"labonita/compras/internal/cellparse"
	"labonita/compras/internal/config"
	"labonita/compras/internal/dashboard"
	"labonita/compras/internal/models"
	"labonita/compras/internal/normalize"
	"labonita/compras/internal/report"
	"labonita/compras/internal/source"
	"labonita/compras/internal/store"
	"labonita/compras/internal/writeback"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// FilterFlags holds the filter options shared by the table, export and
// summary commands.
type FilterFlags struct {
	Search           string
	From             string
	To               string
	Supplier         string
	Product          string
	Payment          string
	IncludeCancelled bool
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "compras",
		Short: "Purchase-tracking dashboard engine for La Bonita.",
		Long: `compras loads purchase records from the spreadsheet-backed source,
normalizes them, and derives the dashboard views: filtered tables, KPI
summaries, supplier rankings, price history and multi-sheet reports.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to compras!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			// Propagate the configured logger to every engine package.
			cellparse.SetLogger(Log)
			normalize.SetLogger(Log)
			store.SetLogger(Log)
			source.SetLogger(Log)
			report.SetLogger(Log)
			writeback.SetLogger(Log)
			dashboard.SetLogger(Log)

			report.SetDelimiter(Cfg.Delimiter())
		},
	}

	// Endpoint overrides the configured source endpoint
	Endpoint string

	// Input is a local CSV export used instead of the HTTP endpoint
	Input string

	// Filters are the shared filter flags
	Filters = FilterFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&Endpoint, "endpoint", "e", "", "Record source endpoint URL (overrides configuration)")
	Cmd.PersistentFlags().StringVarP(&Input, "input", "i", "", "Local CSV export to load instead of the endpoint")

	Cmd.PersistentFlags().StringVar(&Filters.Search, "search", "", "Substring to match against supplier or product")
	Cmd.PersistentFlags().StringVar(&Filters.From, "from", "", "Inclusive start day (e.g. 2026-01-01 or 01/01/2026)")
	Cmd.PersistentFlags().StringVar(&Filters.To, "to", "", "Inclusive end day")
	Cmd.PersistentFlags().StringVar(&Filters.Supplier, "supplier", "", "Exact supplier filter")
	Cmd.PersistentFlags().StringVar(&Filters.Product, "product", "", "Exact product filter")
	Cmd.PersistentFlags().StringVar(&Filters.Payment, "payment", "", "Exact payment state filter (PAGADO or PENDIENTE)")
	Cmd.PersistentFlags().BoolVar(&Filters.IncludeCancelled, "include-cancelled", false, "Include soft-deleted records")
}

// NewService builds the dashboard service from the active flags and
// configuration: a local file source when --input is set, the HTTP source
// otherwise.
func NewService() *dashboard.Service {
	synonyms, err := models.LoadSynonyms(Cfg.SynonymsFile)
	if err != nil {
		Log.Fatalf("Failed to load synonym table: %v", err)
	}

	var src dashboard.TableSource
	if Input != "" {
		src = &source.FileSource{Path: Input, Delimiter: Cfg.Delimiter()}
	} else {
		endpoint := Endpoint
		if endpoint == "" {
			endpoint = Cfg.Source.Endpoint
		}
		if endpoint == "" {
			Log.Fatal("No record source: set --endpoint, --input or source.endpoint in the configuration")
		}
		src = source.NewHTTPSource(endpoint, time.Duration(Cfg.Source.TimeoutSeconds)*time.Second)
	}

	return dashboard.NewService(src, synonyms)
}

// BuildCriteria converts the shared filter flags into filter criteria.
// Unparseable day bounds are treated as unset.
func BuildCriteria() models.FilterCriteria {
	criteria := models.FilterCriteria{
		SearchText:       Filters.Search,
		Supplier:         Filters.Supplier,
		Product:          Filters.Product,
		Payment:          Filters.Payment,
		IncludeCancelled: Filters.IncludeCancelled,
	}

	if from, ok := cellparse.ParseDateFlexible(Filters.From); ok {
		criteria.DateFrom = from
	} else if Filters.From != "" {
		Log.Warnf("Ignoring unparseable --from value %q", Filters.From)
	}

	if to, ok := cellparse.ParseDateFlexible(Filters.To); ok {
		criteria.DateTo = to
	} else if Filters.To != "" {
		Log.Warnf("Ignoring unparseable --to value %q", Filters.To)
	}

	return criteria
}
