// Command triangulate groups DNA match segments that overlap on the same
// chromosome region and writes ranked reports.
//
//	triangulate -i matches.csv -style summary -csv groups.csv
//	triangulate -i matches.xlsx -c run.yaml -policy connected -xlsx groups.xlsx
//
// Flags given on the command line override the YAML file passed with -c.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/liserjrqlxue/goUtil/fmtUtil"
	"github.com/liserjrqlxue/goUtil/osUtil"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/liserjrqlxue/version"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/triangulation/config"
	"github.com/katalvlaran/triangulation/engine"
	"github.com/katalvlaran/triangulation/group"
	"github.com/katalvlaran/triangulation/ingest"
	"github.com/katalvlaran/triangulation/logging"
	"github.com/katalvlaran/triangulation/metrics"
	"github.com/katalvlaran/triangulation/report"
	"github.com/katalvlaran/triangulation/schedule"
	"github.com/katalvlaran/triangulation/segment"
)

// flag
var (
	input = flag.String(
		"i",
		"",
		"input segments, .csv or .xlsx",
	)
	confFile = flag.String(
		"c",
		"",
		"YAML config file",
	)
	output = flag.String(
		"o",
		"",
		"report output file, default stdout",
	)
	minOverlap = flag.Int64(
		"overlap",
		0,
		"minimum overlap in bp",
	)
	minSize = flag.Int(
		"size",
		0,
		"minimum group size",
	)
	policy = flag.String(
		"policy",
		"",
		"group membership: star or connected",
	)
	strictAbove = flag.Int(
		"strict-above",
		0,
		"connected policy only checks stars larger than this",
	)
	minCM = flag.Float64(
		"min-cm",
		0,
		"drop segments below this many cM",
	)
	maxCM = flag.Float64(
		"max-cm",
		0,
		"drop segments above this many cM, 0 for no limit",
	)
	workers = flag.Int(
		"workers",
		0,
		"chromosomes processed concurrently",
	)
	strategy = flag.String(
		"strategy",
		"",
		"parallel or sequential",
	)
	index = flag.String(
		"index",
		"",
		"overlap index: tree or scan",
	)
	verifyBP = flag.Int64(
		"verify",
		0,
		"re-check groups for connectivity at this overlap in bp, 0 to skip",
	)
	style = flag.String(
		"style",
		"",
		"report style: detailed, summary or listing",
	)
	csvOut = flag.String(
		"csv",
		"",
		"export records to this CSV file",
	)
	xlsxOut = flag.String(
		"xlsx",
		"",
		"export records and group summary to this XLSX file",
	)
	logFile = flag.String(
		"log",
		"",
		"also write logs to this file",
	)
	logLevel = flag.String(
		"log-level",
		"",
		"debug, info, warn or error",
	)
	logFormat = flag.String(
		"log-format",
		"",
		"text or json",
	)
	metricsFile = flag.String(
		"metrics",
		"",
		"write prometheus metrics to this file after the run",
	)
)

func main() {
	version.LogVersion()
	flag.Parse()
	if *input == "" {
		flag.PrintDefaults()
		log.Fatal("-i is required")
	}

	cfg := loadConfig()
	level := simpleUtil.HandleError(logging.ParseLevel(cfg.Log.Level))
	logger, cleanup, err := logging.Setup(cfg.Log.File, level, logging.Format(cfg.Log.Format))
	simpleUtil.CheckErr(err)
	defer cleanup()
	slog.SetDefault(logger)

	batch := simpleUtil.HandleError(ingest.ReadFile(*input))
	stats := segment.Summarize(batch.Segments)
	slog.Info("segments loaded",
		"file", *input,
		"segments", stats.TotalSegments,
		"duplicates", batch.Duplicates,
		"matches", stats.UniqueMatches,
		"chromosomes", stats.ChromosomesCovered,
		"total_cm", stats.TotalCentimorgans,
	)

	ec := simpleUtil.HandleError(cfg.Engine())
	reg := prometheus.NewRegistry()
	eng := engine.New(
		engine.WithLogger(logger),
		engine.WithMetrics(metrics.New(reg)),
		engine.WithProgress(func(p schedule.Progress) {
			slog.Info("progress", "chromosome", p.Chromosome, "done", p.Done, "total", p.Total)
		}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := eng.BuildGroups(ctx, batch.Segments, ec)
	simpleUtil.CheckErr(err)
	for _, f := range res.Failures {
		slog.Error("chromosome skipped after failure", "chromosome", f.Chromosome, "err", f.Err)
	}

	groups := res.Groups
	if *verifyBP > 0 {
		groups = simpleUtil.HandleError(eng.VerifyGroups(groups, *verifyBP, ec.MinGroupSize))
		slog.Info("groups verified", "threshold_bp", *verifyBP, "kept", len(groups), "was", len(res.Groups))
	}

	writeReport(cfg, groups, ec.MinCM)
	writeExports(cfg, groups)

	if *metricsFile != "" {
		simpleUtil.CheckErr(prometheus.WriteToTextfile(*metricsFile, reg))
	}
}

// loadConfig reads -c (if any) and applies explicitly set flags on top.
func loadConfig() config.Config {
	cfg := config.Default()
	if *confFile != "" {
		cfg = simpleUtil.HandleError(config.Load(*confFile))
	}

	a := &cfg.Analysis
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "overlap":
			a.MinOverlapBP = *minOverlap
		case "size":
			a.MinGroupSize = *minSize
		case "policy":
			a.Policy = *policy
		case "strict-above":
			a.StrictAbove = *strictAbove
		case "min-cm":
			a.MinCM = *minCM
		case "max-cm":
			a.MaxCM = *maxCM
		case "workers":
			a.Workers = *workers
		case "strategy":
			a.Strategy = *strategy
		case "index":
			a.Index = *index
		case "style":
			cfg.Report.Style = *style
		case "csv":
			cfg.Report.CSV = *csvOut
		case "xlsx":
			cfg.Report.XLSX = *xlsxOut
		case "log":
			cfg.Log.File = *logFile
		case "log-level":
			cfg.Log.Level = *logLevel
		case "log-format":
			cfg.Log.Format = *logFormat
		}
	})
	simpleUtil.CheckErr(cfg.Validate())
	return cfg
}

func writeReport(cfg config.Config, groups []group.Group, minCM float64) {
	st := simpleUtil.HandleError(report.ParseStyle(cfg.Report.Style))
	text := report.Render(groups, st, report.WithCMFilterNote(minCM))
	if *output == "" {
		fmtUtil.Fprintf(os.Stdout, "%s\n", text)
		return
	}
	out := osUtil.Create(*output)
	defer simpleUtil.DeferClose(out)
	fmtUtil.Fprintf(out, "%s\n", text)
	slog.Info("report written", "file", *output, "style", st.String(), "groups", len(groups))
}

func writeExports(cfg config.Config, groups []group.Group) {
	if cfg.Report.CSV == "" && cfg.Report.XLSX == "" {
		return
	}
	records := report.ExportRecords(groups)
	if cfg.Report.CSV != "" {
		f := osUtil.Create(cfg.Report.CSV)
		simpleUtil.CheckErr(report.WriteCSV(f, records))
		simpleUtil.CheckErr(f.Close())
		slog.Info("csv exported", "file", cfg.Report.CSV, "records", len(records))
	}
	if cfg.Report.XLSX != "" {
		f := osUtil.Create(cfg.Report.XLSX)
		simpleUtil.CheckErr(report.WriteXLSX(f, records, groups))
		simpleUtil.CheckErr(f.Close())
		slog.Info("xlsx exported", "file", cfg.Report.XLSX, "records", len(records), "groups", len(groups))
	}
}
