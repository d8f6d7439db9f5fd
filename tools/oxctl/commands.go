package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/patrickwarner/oxclient/internal/catalog"
	"github.com/patrickwarner/oxclient/internal/models"
	"github.com/patrickwarner/oxclient/internal/oxapi"
	"github.com/patrickwarner/oxclient/internal/reporting"
)

func runLogon(ctx context.Context, a *app, _ []string) error {
	if err := a.open(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "session open for %s at %s\n", a.creds.Username, a.endpoint)
	return nil
}

func runLogoff(ctx context.Context, a *app, _ []string) error {
	if err := a.open(ctx); err != nil {
		return err
	}
	if err := a.sessionManager(ctx).Close(ctx, a.client, a.creds); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged off")
	return nil
}

func runGet(ctx context.Context, a *app, args []string) error {
	kind, id, err := parseEntityRef(args)
	if err != nil {
		return err
	}
	if err := a.open(ctx); err != nil {
		return err
	}
	rec, err := a.client.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	return a.printJSON(rec.ToArray())
}

func runList(ctx context.Context, a *app, args []string) error {
	kind, parent, parentID, err := parseListArgs(args)
	if err != nil {
		return err
	}
	if err := a.open(ctx); err != nil {
		return err
	}
	recs, err := a.client.List(ctx, kind, parent, parentID)
	if err != nil {
		return err
	}
	rows := make([]map[string]any, len(recs))
	for i, r := range recs {
		rows[i] = r.ToArray()
	}
	return a.printJSON(rows)
}

func runStats(ctx context.Context, a *app, args []string) error {
	q, err := parseStatsFlags("stats", args, a.out)
	if err != nil {
		return err
	}
	if err := a.open(ctx); err != nil {
		return err
	}
	rows, err := a.client.Statistics(ctx, q.kind, q.breakdown, q.id, q.rng)
	if err != nil {
		return err
	}
	return a.printJSON(rows)
}

func runExport(ctx context.Context, a *app, args []string) error {
	q, err := parseStatsFlags("export", args, a.out)
	if err != nil {
		return err
	}
	if q.breakdown != oxapi.ByDay {
		return fmt.Errorf("export only supports the %s breakdown", oxapi.ByDay)
	}
	w, err := a.clickhouse(ctx)
	if err != nil {
		return err
	}
	if err := a.open(ctx); err != nil {
		return err
	}

	rows, err := a.client.Statistics(ctx, q.kind, oxapi.ByDay, q.id, q.rng)
	if err != nil {
		return err
	}
	daily, err := reporting.DailyFromRows(rows)
	if err != nil {
		return err
	}
	n, err := w.ExportDaily(ctx, q.kind, q.id, daily)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "exported %d days\n\n", n)
	printSummary(a.out, reporting.Summarize(q.kind, q.id, daily), 5)
	return nil
}

func runReport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(a.out)
	kindName := fs.String("kind", string(oxapi.KindCampaign), "Entity kind")
	id := fs.Int("id", 0, "Entity ID to report on")
	days := fs.Int("days", 7, "Number of days to include in report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	kind, err := oxapi.ParseKind(*kindName)
	if err != nil {
		return err
	}
	if *id <= 0 || *days <= 0 {
		return errors.New("-id and -days must be positive")
	}

	w, err := a.clickhouse(ctx)
	if err != nil {
		return err
	}
	to := models.CalendarDate(time.Now())
	from := to.AddDate(0, 0, -(*days - 1))
	daily, err := w.QueryDaily(ctx, kind, *id, from, to)
	if err != nil {
		return err
	}
	printSummary(a.out, reporting.Summarize(kind, *id, daily), 5)
	return nil
}

func runSync(ctx context.Context, a *app, _ []string) error {
	pg, err := a.postgres(ctx)
	if err != nil {
		return err
	}
	if err := a.open(ctx); err != nil {
		return err
	}
	res, err := catalog.NewSyncer(a.client, pg, a.endpoint, a.logger, a.metrics).Sync(ctx)
	if err != nil {
		return err
	}
	printSyncResult(a.out, res)
	return nil
}

func runTags(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.SetOutput(a.out)
	zoneID := fs.Int("zone", 0, "Zone ID")
	codeType := fs.String("type", oxapi.TagAdJS, "Invocation code type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *zoneID <= 0 {
		return errors.New("-zone is required")
	}
	if err := a.open(ctx); err != nil {
		return err
	}
	tags, err := a.client.GenerateTags(ctx, *zoneID, *codeType, nil)
	if err != nil {
		return err
	}
	if s, ok := tags.(string); ok {
		fmt.Fprintln(a.out, s)
		return nil
	}
	return a.printJSON(tags)
}

func parseEntityRef(args []string) (oxapi.Kind, int, error) {
	if len(args) != 2 {
		return "", 0, errors.New("expected <kind> <id>")
	}
	kind, err := oxapi.ParseKind(args[0])
	if err != nil {
		return "", 0, err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id <= 0 {
		return "", 0, fmt.Errorf("invalid id %q", args[1])
	}
	return kind, id, nil
}

func parseListArgs(args []string) (kind, parent oxapi.Kind, parentID int, err error) {
	switch len(args) {
	case 1:
		kind, err = oxapi.ParseKind(args[0])
		return kind, "", 0, err
	case 3:
		kind, err = oxapi.ParseKind(args[0])
		if err != nil {
			return "", "", 0, err
		}
		parent, parentID, err = parseEntityRef(args[1:])
		return kind, parent, parentID, err
	}
	return "", "", 0, errors.New("expected <kind> [<parent-kind> <parent-id>]")
}

type statsQuery struct {
	kind      oxapi.Kind
	breakdown oxapi.Breakdown
	id        int
	rng       oxapi.StatisticsRange
}

func parseStatsFlags(name string, args []string, out io.Writer) (statsQuery, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	kindName := fs.String("kind", "", "Entity kind")
	id := fs.Int("id", 0, "Entity ID")
	by := fs.String("by", string(oxapi.ByDay), "Breakdown")
	from := fs.String("from", "", "First day (YYYY-MM-DD), default 1970-01-01")
	to := fs.String("to", "", "Last day (YYYY-MM-DD), default now")
	managerTZ := fs.Bool("manager-tz", false, "Use the manager's timezone")
	if err := fs.Parse(args); err != nil {
		return statsQuery{}, err
	}

	var q statsQuery
	var err error
	if q.kind, err = oxapi.ParseKind(*kindName); err != nil {
		return statsQuery{}, err
	}
	q.breakdown = oxapi.Breakdown(*by)
	if _, err := oxapi.StatisticsProcedure(q.kind, q.breakdown); err != nil {
		return statsQuery{}, err
	}
	if *id <= 0 {
		return statsQuery{}, errors.New("-id is required")
	}
	q.id = *id
	q.rng.UseManagerTimezone = *managerTZ
	if *from != "" {
		if q.rng.Start, err = time.Parse(models.DayLayout, *from); err != nil {
			return statsQuery{}, fmt.Errorf("-from: %w", err)
		}
	}
	if *to != "" {
		if q.rng.End, err = time.Parse(models.DayLayout, *to); err != nil {
			return statsQuery{}, fmt.Errorf("-to: %w", err)
		}
	}
	return q, nil
}
