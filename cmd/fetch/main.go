// Command fetch downloads price history for one ticker and prints or charts it.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"pricehistory/internal/app/di"
	"pricehistory/internal/feature/chart"
	"pricehistory/internal/feature/pricehistory/domain"
	"pricehistory/internal/feature/pricehistory/domain/entity"
	"pricehistory/internal/feature/pricehistory/usecase"
	"pricehistory/internal/platform/config"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "fetch",
		Usage:     "download historical candles for one ticker",
		Writer:    out,
		ArgsUsage: "[ticker]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ticker", Value: "TSLA", Usage: "ticker symbol (also accepted as the first argument)"},
			&cli.StringFlag{Name: "period-type", Usage: "day, month, year or ytd"},
			&cli.IntFlag{Name: "period", Usage: "number of periods"},
			&cli.StringFlag{Name: "frequency-type", Value: entity.DefaultFrequencyType, Usage: "minute, daily, weekly or monthly"},
			&cli.IntFlag{Name: "frequency", Value: entity.DefaultFrequency, Usage: "frequency units per candle"},
			&cli.StringFlag{Name: "start", Usage: "window start, YYYY-MM-DD or epoch milliseconds"},
			&cli.StringFlag{Name: "end", Usage: "window end, YYYY-MM-DD or epoch milliseconds"},
			&cli.StringFlag{Name: "extended-hours", Value: entity.FormatFlag(entity.DefaultExtendedHours), Usage: "include pre/post market candles"},
			&cli.StringFlag{Name: "api-key", EnvVars: []string{"TDA_API_KEY"}, Usage: "API key"},
			&cli.StringFlag{Name: "key-file", Value: "apikey.txt", Usage: "file holding the API key, used when --api-key is empty"},
			&cli.StringFlag{Name: "base-url", Usage: "market data base URL"},
			&cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "request timeout"},
			&cli.StringFlag{Name: "chart", Value: "none", Usage: "none, candles, line or tui"},
			&cli.IntFlag{Name: "width", Value: 120, Usage: "chart width in cells"},
			&cli.IntFlag{Name: "height", Value: 24, Usage: "chart height in cells"},
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})))

	ticker := c.String("ticker")
	if c.Args().Present() {
		ticker = c.Args().First()
	}

	params, err := paramsFromFlags(c)
	if err != nil {
		return err
	}

	keyFile := c.String("key-file")
	if c.String("api-key") != "" {
		keyFile = ""
	}
	market, err := di.NewMarket(config.MarketConfig{
		APIKey:     c.String("api-key"),
		APIKeyFile: keyFile,
		BaseURL:    c.String("base-url"),
		Timeout:    c.Duration("timeout"),
	})
	if err != nil {
		return err
	}

	table, err := usecase.NewPriceHistoryUsecase(market).LoadHistory(c.Context, ticker, params)
	if err != nil {
		if code, ok := domain.StatusCode(err); ok {
			fmt.Fprintln(c.App.Writer, code)
		}
		return err
	}

	size := chart.Size{Width: c.Int("width"), Height: c.Int("height")}
	switch c.String("chart") {
	case "none":
		return printTable(c.App.Writer, table)
	case "candles":
		_, err = fmt.Fprint(c.App.Writer, chart.Candlesticks(ticker, table, size))
	case "line":
		_, err = fmt.Fprint(c.App.Writer, chart.Line(ticker+" high", table, size))
	case "tui":
		err = chart.Run(ticker, table, chart.ModeCandles)
	default:
		err = fmt.Errorf("unknown chart %q", c.String("chart"))
	}
	return err
}

func paramsFromFlags(c *cli.Context) (entity.RequestParams, error) {
	p := entity.RequestParams{
		PeriodType:    c.String("period-type"),
		Period:        c.Int("period"),
		FrequencyType: c.String("frequency-type"),
		Frequency:     c.Int("frequency"),
	}

	var err error
	if p.StartDate, err = parseDate(c.String("start")); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDate(c.String("end")); err != nil {
		return p, err
	}

	ext, err := entity.ParseFlag(c.String("extended-hours"))
	if err != nil {
		return p, err
	}
	p.ExtendedHours = &ext
	return p, nil
}

// parseDate accepts epoch milliseconds or a YYYY-MM-DD date at UTC midnight.
// An empty string yields 0 (unset).
func parseDate(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return 0, fmt.Errorf("%w: date %q is neither YYYY-MM-DD nor epoch milliseconds", domain.ErrBadParameters, s)
	}
	return t.UnixMilli(), nil
}

func printTable(w io.Writer, table entity.CandleTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, col := range table.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw, "\t")

	for _, cd := range table.Candles {
		for i, col := range table.Columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			v, _ := cd.Value(col)
			fmt.Fprint(tw, formatCell(v))
		}
		fmt.Fprintln(tw, "\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d rows\n", table.Len())
	return err
}

func formatCell(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.DateTime)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
