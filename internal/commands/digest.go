package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/finwire/newsdesk/internal/app"
	"github.com/finwire/newsdesk/internal/config"
	"github.com/finwire/newsdesk/internal/modules/dashboard"
	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/finwire/newsdesk/internal/pkg/nativelog"
	"github.com/finwire/newsdesk/internal/pkg/termrender"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	countFlag   int
	keywordFlag string
	lengthFlag  string
	styleFlag   string
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print an enriched news digest",
	Long: `Fetch the latest headlines once and print each article with its
entities, sentiment and summary.

Lengths: ` + strings.Join(summary.Labels(), ", "),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDigest(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	digestCmd.Flags().IntVarP(&countFlag, "count", "n", 0, "Number of articles (default from config)")
	digestCmd.Flags().StringVarP(&keywordFlag, "keyword", "k", "", "Only keep articles whose title or description contains this keyword")
	digestCmd.Flags().StringVarP(&lengthFlag, "length", "l", "", "Summary length (default from config)")
	digestCmd.Flags().StringVar(&styleFlag, "style", "dark", "Markdown style: dark, light, notty, ascii")
}

type feeder interface {
	Options() dashboard.Options
	Feed(ctx context.Context, sess *session.Session, q dashboard.FeedQuery) dashboard.FeedResult
}

// terminalEnv bundles what the terminal commands share: services, a throwaway session and a renderer.
type terminalEnv struct {
	cfg      *config.AppConfig
	services *app.Services
	session  *session.Session
	md       *termrender.Renderer
	logger   *zap.Logger
}

func newTerminalEnv(out io.Writer) (*terminalEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.CheckSecrets(); err != nil {
		var missing *config.MissingSecretError
		if errors.As(err, &missing) {
			fmt.Fprintln(out, termrender.Warning(missing.Error()))
		}
		return nil, err
	}

	logger, err := nativelog.NewFileLogger(cfg.LogDirPath(), cfg.LogLevel)
	if err != nil {
		logger = zap.NewNop()
	}

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		return nil, err
	}
	md, err := termrender.New(termrender.Options{Width: termrender.TerminalWidth(), Style: styleFlag})
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}

	manager := session.NewManager(session.MemoryBackend{}, cfg.Session.TTL, logger)
	return &terminalEnv{cfg: cfg, services: services, session: manager.Create(), md: md, logger: logger}, nil
}

func runDigest(ctx context.Context, out io.Writer) error {
	env, err := newTerminalEnv(out)
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	q, err := digestQuery(env.services.Dashboard.Options(), countFlag, keywordFlag, lengthFlag)
	if err != nil {
		return err
	}
	return printDigest(ctx, out, env.services.Dashboard, env.session, q, env.md)
}

// digestQuery applies option defaults and rejects values the dashboard form would not offer.
func digestQuery(opts dashboard.Options, count int, keyword, length string) (dashboard.FeedQuery, error) {
	if count == 0 {
		count = opts.DefaultCount
	}
	if count < opts.MinCount || count > opts.MaxCount {
		return dashboard.FeedQuery{}, fmt.Errorf("count must be between %d and %d", opts.MinCount, opts.MaxCount)
	}
	if length == "" {
		length = opts.DefaultLength
	}
	v, err := summary.ParseVerbosity(length)
	if err != nil {
		return dashboard.FeedQuery{}, err
	}
	return dashboard.FeedQuery{Count: count, Keyword: strings.TrimSpace(keyword), Verbosity: v}, nil
}

func printDigest(ctx context.Context, out io.Writer, f feeder, sess *session.Session, q dashboard.FeedQuery, md *termrender.Renderer) error {
	res := f.Feed(ctx, sess, q)
	if res.Warning != "" {
		fmt.Fprintln(out, termrender.Warning(res.Warning))
	}
	if res.Message != "" {
		fmt.Fprintln(out, termrender.Dim(res.Message))
		return nil
	}

	for _, item := range res.Items {
		fmt.Fprintf(out, "%s\n", termrender.Title(fmt.Sprintf("%d. %s", item.Index, item.Title)))
		if len(item.Entities) > 0 {
			fmt.Fprintln(out, termrender.Entities(item.Entities))
		}
		fmt.Fprintf(out, "Sentiment: %s\n", termrender.Sentiment(item.Sentiment.Display, item.Sentiment.Color))
		fmt.Fprintln(out, md.Markdown(item.Summary))
		fmt.Fprintln(out, termrender.Dim(fmt.Sprintf("%s · %s", item.Source, item.URL)))
		fmt.Fprintln(out)
	}
	return nil
}
